package ast

import "github.com/scriptlex/rbparse/internal/token"

// Ident is a bare local-variable-or-method-call identifier in read
// position; the parser does not disambiguate local-var-vs-zero-arity-
// send here (that's a semantic concern spec.md scopes out). The builder's
// `accessible` returns the Ident unchanged; a bare identifier becomes a
// Send only when an argument list or block follows it directly.
type Ident struct {
	BaseNode
	Name string
}

type IVar struct {
	BaseNode
	Name string
}

type CVar struct {
	BaseNode
	Name string
}

type GVar struct {
	BaseNode
	Name string
}

type Const struct {
	BaseNode
	Name string
}

// ConstPath is Scope::Name, including the leading-colon ::Name form
// (Scope == nil).
type ConstPath struct {
	BaseNode
	Scope    Node
	ColonTok token.Span
	Name     string
	NameTok  token.Span
}

type NthRef struct {
	BaseNode
	Number int
}

type BackRef struct {
	BaseNode
	Name string // "&", "`", "'", "+"
}

// NumberedParam is a numbered block parameter (_1, _2, ... or the
// special `it`) — §15 supplemented feature.
type NumberedParam struct {
	BaseNode
	Number int // 0 for the bare `it` form
}

// Assign is `lhs = rhs` for any single assignable target (Ident, IVar,
// CVar, GVar, Const, ConstPath, Send with an index/attr tail).
type Assign struct {
	BaseNode
	Target  Node
	EqTok   token.Span
	Value   Node
}

// OpAssign is `lhs OP= rhs` (+=, -=, ||=, ...); Op is the base operator
// kind's textual spelling ("+", "||", ...).
type OpAssign struct {
	BaseNode
	Target Node
	Op     string
	OpTok  token.Span
	Value  Node
}

// MultiAssign is the parallel-assignment form `a, b = 1, 2` / `a, *b = xs`.
type MultiAssign struct {
	BaseNode
	Targets []Node // Mlhs entries
	EqTok   token.Span
	Values  []Node
}

// Mlhs is a parenthesized or bare multiple-assignment left-hand side,
// built by the tri-valued MLHS recognizer (definitely-MLHS / maybe-LHS /
// not-LHS) in parser/mlhs.go.
type Mlhs struct {
	BaseNode
	Items []Node // Ident/IVar/.../SplatArg/*Mlhs (nested destructuring)
}
