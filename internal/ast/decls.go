package ast

import "github.com/scriptlex/rbparse/internal/token"

// MethodDef is `def name(params) ... end`, including the singleton form
// `def self.name` / `def recv.name` (Receiver non-nil) and the endless
// form `def name(params) = expr` (EndTok zero-value, Body is a single
// expression wrapped in Statements).
type MethodDef struct {
	BaseNode
	KeywordTok token.Span
	Receiver   Node
	DotTok     token.Span
	Name       string
	NameTok    token.Span
	Params     *ParamList
	EqTok      token.Span // set only for the endless-method form
	Body       Node
	EndTok     token.Span
}

// ParamList is a method/block/lambda parameter list.
type ParamList struct {
	BaseNode
	BeginTok token.Span
	Params   []Node
	EndTok   token.Span
}

// Param is a required positional parameter, optionally destructured
// (Pattern non-nil for `def f((a, b))`).
type Param struct {
	BaseNode
	Name    string
	Pattern Node
}

// OptParam is `name = default`.
type OptParam struct {
	BaseNode
	Name     string
	EqTok    token.Span
	Default  Node
}

// SplatParam is `*name` (Name == "" for the bare `*`).
type SplatParam struct {
	BaseNode
	StarTok token.Span
	Name    string
}

// DoubleSplatParam is `**name` (Name == "" for bare `**`, NoKwargs true
// for the `**nil` "accept no more kwargs" marker).
type DoubleSplatParam struct {
	BaseNode
	StarTok  token.Span
	Name     string
	NoKwargs bool
}

// KwParam is `name:` (required keyword) or `name: default` (optional).
type KwParam struct {
	BaseNode
	Name     string
	ColonTok token.Span
	Default  Node // nil when required
}

// BlockParam is `&name` (Name == "" for the bare `&`).
type BlockParam struct {
	BaseNode
	AmpTok token.Span
	Name   string
}

// ClassDef is `class Name < Super ... end`; SingletonExpr is set instead
// of Name/Super for the `class << self` singleton-class form.
type ClassDef struct {
	BaseNode
	KeywordTok    token.Span
	Name          Node // *Const or *ConstPath
	LtTok         token.Span
	Super         Node
	ShiftTok      token.Span
	SingletonExpr Node
	Body          Node
	EndTok        token.Span
}

// ModuleDef is `module Name ... end`.
type ModuleDef struct {
	BaseNode
	KeywordTok token.Span
	Name       Node
	Body       Node
	EndTok     token.Span
}

// Alias is `alias new old` (both bare method names or symbols).
type Alias struct {
	BaseNode
	KeywordTok token.Span
	New        Node
	Old        Node
}

// Undef is `undef name1, name2`.
type Undef struct {
	BaseNode
	KeywordTok token.Span
	Names      []Node
}
