package ast

import "github.com/scriptlex/rbparse/internal/token"

// If covers both `if`/`unless` forms (Unless bool) and the one-line
// statement-modifier form (ThenTok, ElsifClauses, ElseTok, EndTok all
// zero-value).
type If struct {
	BaseNode
	KeywordTok token.Span
	Unless     bool
	Cond       Node
	ThenTok    token.Span
	Then       Node
	Elsifs     []ElsifClause
	ElseTok    token.Span
	Else       Node
	EndTok     token.Span
}

type ElsifClause struct {
	KeywordTok token.Span
	Cond       Node
	ThenTok    token.Span
	Then       Node
}

// Ternary is `cond ? a : b`.
type Ternary struct {
	BaseNode
	Cond     Node
	QTok     token.Span
	Then     Node
	ColonTok token.Span
	Else     Node
}

// While / Until cover both the block form and the statement-modifier
// form (DoTok zero-value in the modifier form); DoWhile marks the
// `begin...end while cond` post-condition variant.
type While struct {
	BaseNode
	KeywordTok token.Span
	Until      bool
	Cond       Node
	DoTok      token.Span
	Body       Node
	EndTok     token.Span
	DoWhile    bool
}

// For is `for x in xs ... end` (also `for x, y in pairs`).
type For struct {
	BaseNode
	ForTok token.Span
	Vars   []Node
	InTok  token.Span
	Iter   Node
	DoTok  token.Span
	Body   Node
	EndTok token.Span
}

// Case is both `case expr; when ...` and `case expr; in ...` (pattern
// matching); exactly one of Whens/Patterns is populated, never both.
type Case struct {
	BaseNode
	CaseTok token.Span
	Subject Node
	Whens   []WhenClause
	Patterns []InClause
	ElseTok  token.Span
	Else     Node
	EndTok   token.Span
}

type WhenClause struct {
	KeywordTok token.Span
	Conds      []Node
	ThenTok    token.Span
	Body       Node
}

type InClause struct {
	KeywordTok token.Span
	Pattern    Node
	GuardTok   token.Span // "if" or "unless"
	Guard      Node
	ThenTok    token.Span
	Body       Node
}

// Break, Next, Redo, Retry carry an optional value (Break/Next only).
type Break struct {
	BaseNode
	KeywordTok token.Span
	Value      Node
}

type Next struct {
	BaseNode
	KeywordTok token.Span
	Value      Node
}

type Redo struct {
	BaseNode
	KeywordTok token.Span
}

type Retry struct {
	BaseNode
	KeywordTok token.Span
}

// Return, Yield carry zero or more arguments.
type Return struct {
	BaseNode
	KeywordTok token.Span
	Args       []Node
}

type Yield struct {
	BaseNode
	KeywordTok token.Span
	BeginTok   token.Span
	Args       []Node
	EndTok     token.Span
}

// And, Or, Not cover both symbolic (&&, ||, !) and keyword (and, or,
// not) spellings; Keyword records which was used since the two forms
// differ in precedence but not in AST shape.
type And struct {
	BaseNode
	Left, Right Node
	OpTok       token.Span
	Keyword     bool
}

type Or struct {
	BaseNode
	Left, Right Node
	OpTok       token.Span
	Keyword     bool
}

type Not struct {
	BaseNode
	OpTok   token.Span
	Keyword bool
	Value   Node
}

// Defined is `defined?(expr)` / `defined? expr`.
type Defined struct {
	BaseNode
	KeywordTok token.Span
	Value      Node
}

// BeginBlock / EndBlock are the top-level `BEGIN {}` / `END {}` forms
// (§15 supplemented feature).
type BeginBlock struct {
	BaseNode
	KeywordTok token.Span
	Body       Node
}

type EndBlock struct {
	BaseNode
	KeywordTok token.Span
	Body       Node
}
