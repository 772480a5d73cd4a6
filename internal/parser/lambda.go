package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseBlock parses a `{ |params| body }` or `do |params| body end`
// block attached to a preceding call.
func (p *Parser) parseBlock() (ast.Node, *ParseError) {
	braces := p.is(token.LBRACE)
	beg := p.take()

	var params *ast.ParamList
	if p.is(token.PIPE) {
		pl, err := p.parseBlockParams()
		if err != nil {
			return nil, err
		}
		params = pl
	}

	endKind := token.RBRACE
	if !braces {
		endKind = token.KW_END
	}
	body, err := p.parseStatementsUntil(endKind)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(endKind, false)
	if err != nil {
		return nil, err
	}
	return &ast.BlockNode{
		BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)},
		BeginTok: beg.Span, Params: params, Body: body, EndTok: end.Span, Braces: braces,
	}, nil
}

// parseBlockParams parses `|a, b = 1, *c, d:, &e|`.
func (p *Parser) parseBlockParams() (*ast.ParamList, *ParseError) {
	beg, err := p.expect(token.PIPE, false)
	if err != nil {
		return nil, err
	}
	var params []ast.Node
	for !p.is(token.PIPE) {
		param, err := p.parseOneParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	end, err := p.expect(token.PIPE, false)
	if err != nil {
		return nil, err
	}
	return &ast.ParamList{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Params: params, EndTok: end.Span}, nil
}

// parseLambdaLiteral parses `->(params) { body }` / `->(params) do body end`.
func (p *Parser) parseLambdaLiteral() (ast.Node, *ParseError) {
	arrow := p.take()

	var params *ast.ParamList
	if p.is(token.LPAREN) {
		pl, err := p.parseParenParams()
		if err != nil {
			return nil, err
		}
		params = pl
	} else if p.is(token.IDENT) {
		pl, err := p.parseBareParamList(token.LBRACE, token.KW_DO)
		if err != nil {
			return nil, err
		}
		params = pl
	}

	braces := p.is(token.LBRACE)
	if !p.isAny(token.LBRACE, token.KW_DO) {
		return nil, NewTokenError("{ or do", p.current(), false)
	}
	p.take()
	endKind := token.RBRACE
	if !braces {
		endKind = token.KW_END
	}
	body, err := p.parseStatementsUntil(endKind)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(endKind, false)
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{
		BaseNode: ast.BaseNode{Sp: spanUnion(arrow.Span, end.Span)},
		ArrowTok: arrow.Span, Params: params, Body: body, EndTok: end.Span, Braces: braces,
	}, nil
}
