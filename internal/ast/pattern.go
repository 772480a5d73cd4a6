package ast

import "github.com/scriptlex/rbparse/internal/token"

// ArrayPattern is `[a, *b, c]` or `Const[a, b]` (Const non-nil) in a
// `case/in` pattern.
type ArrayPattern struct {
	BaseNode
	Const    Node
	BeginTok token.Span
	Elements []Node
	EndTok   token.Span
}

// FindPattern is `[*, a, b, *]`, the two-splat "find" pattern variant of
// ArrayPattern; kept as its own node since it has exactly two splats in
// fixed lead/trail position rather than an arbitrary element list.
type FindPattern struct {
	BaseNode
	Const     Node
	BeginTok  token.Span
	PreSplat  Node
	Elements  []Node
	PostSplat Node
	EndTok    token.Span
}

// HashPattern is `{a:, b: Integer}` or `Const[a:, b:]` in a pattern.
type HashPattern struct {
	BaseNode
	Const    Node
	BeginTok token.Span
	Pairs    []HashPatternPair
	Rest     Node // **rest, **nil (Name == "" marks **nil), or nil
	EndTok   token.Span
}

type HashPatternPair struct {
	KeyTok token.Span
	Key    string
	Value  Node // nil for the `key:` shorthand binding `key`
}

// PatternRest marks a `*` rest binding inside an array or find pattern's
// element list (Name == "" for an unnamed rest); a hash pattern's `**`
// rest is a DoubleSplatParam instead.
type PatternRest struct {
	BaseNode
	StarTok token.Span
	Name    string
}

// ConstPattern is a bare constant used as a pattern (matches via ===).
type ConstPattern struct {
	BaseNode
	Value Node // *Const or *ConstPath
}

// AltPattern is `pat1 | pat2 | ...`.
type AltPattern struct {
	BaseNode
	Alternatives []Node
}

// AsPattern is `pattern => name`, binding the matched value to name.
type AsPattern struct {
	BaseNode
	Pattern  Node
	AssocTok token.Span
	Name     string
}

// BindPattern is a bare identifier in pattern position, binding the
// matched value.
type BindPattern struct {
	BaseNode
	Name string
}

// PinPattern is `^expr` / `^(expr)`, matching via equality against an
// already-bound value or arbitrary expression.
type PinPattern struct {
	BaseNode
	CaretTok token.Span
	Value    Node
}

// ValuePattern wraps a literal or range used as a pattern, matched via
// `===` against the case subject.
type ValuePattern struct {
	BaseNode
	Value Node // any literal/range usable as a `===` pattern
}
