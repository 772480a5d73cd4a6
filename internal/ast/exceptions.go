package ast

import "github.com/scriptlex/rbparse/internal/token"

// Begin is a `begin ... rescue ... else ... ensure ... end` block, or
// any subset of its clauses; it also serves as the implicit body-rescue
// form a `def` attaches directly (KeywordTok zero-value in that case).
type Begin struct {
	BaseNode
	KeywordTok token.Span
	Body       Node
	Rescues    []RescueClause
	ElseTok    token.Span
	Else       Node
	EnsureTok  token.Span
	Ensure     Node
	EndTok     token.Span
}

// RescueClause is one `rescue ExcType => name` clause; Types may be
// empty (bare rescue), and Name is nil when no `=> var` was given.
type RescueClause struct {
	KeywordTok token.Span
	Types      []Node
	AssocTok   token.Span
	Name       Node
	ThenTok    token.Span
	Body       Node
}
