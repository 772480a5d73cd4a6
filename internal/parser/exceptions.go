package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseBegin parses `begin ... rescue ... else ... ensure ... end`.
func (p *Parser) parseBegin() (ast.Node, *ParseError) {
	kw := p.take()
	body, err := p.parseBodyWithRescue(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	if b, ok := body.(*ast.Begin); ok {
		b.KeywordTok = kw.Span
		b.EndTok = end.Span
		b.Sp = spanUnion(kw.Span, end.Span)
		return b, nil
	}
	return &ast.Begin{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)}, KeywordTok: kw.Span, Body: body, EndTok: end.Span}, nil
}

// parseBodyWithRescue parses a statement sequence up to endKind, then
// any rescue/else/ensure clauses attached directly after it (used both
// by `begin...end` and by a `def`'s implicit body-rescue form, which is
// why it returns the plain Statements unwrapped when no clause follows).
func (p *Parser) parseBodyWithRescue(endKind token.Kind) (ast.Node, *ParseError) {
	body, err := p.parseStatementsUntil(token.KW_RESCUE, token.KW_ELSE, token.KW_ENSURE, endKind)
	if err != nil {
		return nil, err
	}

	var rescues []ast.RescueClause
	for p.is(token.KW_RESCUE) {
		rc, err := p.parseRescueClause()
		if err != nil {
			return nil, err
		}
		rescues = append(rescues, rc)
	}

	var elseTok token.Token
	var elseBody ast.Node
	if p.is(token.KW_ELSE) {
		elseTok = p.take()
		elseBody, err = p.parseStatementsUntil(token.KW_ENSURE, endKind)
		if err != nil {
			return nil, err
		}
	}

	var ensureTok token.Token
	var ensureBody ast.Node
	if p.is(token.KW_ENSURE) {
		ensureTok = p.take()
		ensureBody, err = p.parseStatementsUntil(endKind)
		if err != nil {
			return nil, err
		}
	}

	if len(rescues) == 0 && elseBody == nil && ensureBody == nil {
		return body, nil
	}
	return &ast.Begin{
		BaseNode: ast.BaseNode{Sp: nodeSpan(body)},
		Body:     body, Rescues: rescues,
		ElseTok: elseTok.Span, Else: elseBody,
		EnsureTok: ensureTok.Span, Ensure: ensureBody,
	}, nil
}

// rescueTypeTerminators are the tokens that can follow a rescue clause's
// exception-type list: the "=> name" binder, a body opener, or the end
// of the clause itself.
var rescueTypeTerminators = []token.Kind{
	token.ASSOC, token.KW_THEN, token.NL, token.SEMICOLON,
	token.KW_RESCUE, token.KW_ELSE, token.KW_ENSURE, token.KW_END,
}

func rescueTypeItem() Rule[ast.Node] {
	return RuleOf(
		func(p *Parser) bool { return !p.isAny(rescueTypeTerminators...) },
		func(p *Parser) (ast.Node, *ParseError) { return p.parseExpr(15) },
	)
}

func rescueTypeSep(p *Parser) bool {
	if !p.is(token.COMMA) {
		return false
	}
	p.take()
	return true
}

// parseRescueClause parses `rescue [Type, ...] [=> name] [then] body`. The
// type list and the optional "=> name" binder are run through AllOf so a
// missing type list (bare `rescue => e`) still reports as a lookahead-style
// non-match rather than a hard failure of the whole clause.
func (p *Parser) parseRescueClause() (ast.RescueClause, *ParseError) {
	kw := p.take()

	var types []ast.Node
	var assoc token.Token
	var name ast.Node
	err := AllOf(p, "rescue-clause",
		func(p *Parser) *ParseError {
			t, err := SeparatedBy(p, rescueTypeItem(), rescueTypeSep)
			types = t
			return err
		},
		func(p *Parser) *ParseError {
			if !p.is(token.ASSOC) {
				return nil
			}
			assoc = p.take()
			n, err := p.expect(token.IDENT, false)
			if err != nil {
				return err
			}
			name = &ast.Ident{BaseNode: ast.BaseNode{Sp: n.Span}, Name: n.Text}
			return nil
		},
	)
	if err != nil {
		return ast.RescueClause{}, err
	}

	var thenTok token.Token
	if p.is(token.KW_THEN) {
		thenTok = p.take()
	}

	body, err := p.parseStatementsUntil(token.KW_RESCUE, token.KW_ELSE, token.KW_ENSURE, token.KW_END)
	if err != nil {
		return ast.RescueClause{}, err
	}

	return ast.RescueClause{KeywordTok: kw.Span, Types: types, AssocTok: assoc.Span, Name: name, ThenTok: thenTok.Span, Body: body}, nil
}
