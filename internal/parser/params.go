package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseParenParams parses a fully parenthesized parameter list, used by
// `def`, `lambda ->()`, and any call site that requires explicit parens.
func (p *Parser) parseParenParams() (*ast.ParamList, *ParseError) {
	beg, err := p.expect(token.LPAREN, false)
	if err != nil {
		return nil, err
	}
	var params []ast.Node
	for !p.is(token.RPAREN) {
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
	end, err := p.expect(token.RPAREN, false)
	if err != nil {
		return nil, err
	}
	return &ast.ParamList{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Params: params, EndTok: end.Span}, nil
}

// parseBareParamList parses a comma-separated parameter list with no
// enclosing delimiter, stopping at any of the given terminator kinds
// (used by the one-identifier-param lambda shorthand `->x { }`).
func (p *Parser) parseBareParamList(terminators ...token.Kind) (*ast.ParamList, *ParseError) {
	start := p.current().Span
	var params []ast.Node
	for !p.isAny(terminators...) {
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
	sp := start
	if len(params) > 0 {
		sp = spanUnion(start, nodeSpan(params[len(params)-1]))
	}
	return &ast.ParamList{BaseNode: ast.BaseNode{Sp: sp}, Params: params}, nil
}

// parseOneParam parses a single parameter of any form: required,
// optional, splat, double-splat, keyword, keyword-optional, or block.
func (p *Parser) parseOneParam() (ast.Node, *ParseError) {
	switch {
	case p.is(token.STAR_ARG) || p.is(token.STAR):
		star := p.take()
		name := ""
		var nameTok token.Token
		if p.is(token.IDENT) {
			nameTok = p.take()
			name = nameTok.Text
		}
		return &ast.SplatParam{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nameTok.Span)}, StarTok: star.Span, Name: name}, nil

	case p.is(token.DSTAR_ARG) || p.is(token.DSTAR):
		star := p.take()
		if p.is(token.KW_NIL) {
			nilTok := p.take()
			return &ast.DoubleSplatParam{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nilTok.Span)}, StarTok: star.Span, NoKwargs: true}, nil
		}
		name := ""
		var nameTok token.Token
		if p.is(token.IDENT) {
			nameTok = p.take()
			name = nameTok.Text
		}
		return &ast.DoubleSplatParam{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nameTok.Span)}, StarTok: star.Span, Name: name}, nil

	case p.is(token.AMP) || p.is(token.AMPER):
		amp := p.take()
		name := ""
		var nameTok token.Token
		if p.is(token.IDENT) {
			nameTok = p.take()
			name = nameTok.Text
		}
		return &ast.BlockParam{BaseNode: ast.BaseNode{Sp: spanUnion(amp.Span, nameTok.Span)}, AmpTok: amp.Span, Name: name}, nil

	case p.is(token.DOT3):
		dots := p.take()
		return &ast.ForwardedArgs{BaseNode: ast.BaseNode{Sp: dots.Span}}, nil

	case p.is(token.LABEL):
		label := p.take()
		if p.isAny(token.COMMA, token.RPAREN, token.PIPE) {
			return &ast.KwParam{BaseNode: ast.BaseNode{Sp: label.Span}, Name: label.Text, ColonTok: label.Span}, nil
		}
		def, err := p.parseExpr(6)
		if err != nil {
			return nil, err
		}
		return &ast.KwParam{BaseNode: ast.BaseNode{Sp: spanUnion(label.Span, nodeSpan(def))}, Name: label.Text, ColonTok: label.Span, Default: def}, nil

	case p.is(token.LPAREN):
		// Destructured positional parameter `(a, b)`.
		beg := p.take()
		var items []ast.Node
		for !p.is(token.RPAREN) {
			item, err := p.parseOneParam()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.is(token.COMMA) {
				p.take()
				continue
			}
			break
		}
		end, err := p.expect(token.RPAREN, false)
		if err != nil {
			return nil, err
		}
		pattern := &ast.Mlhs{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, Items: items}
		return &ast.Param{BaseNode: pattern.BaseNode, Pattern: pattern}, nil

	default:
		name, err := p.expect(token.IDENT, false)
		if err != nil {
			return nil, err
		}
		if p.is(token.EQL) {
			p.take()
			def, err := p.parseExpr(6)
			if err != nil {
				return nil, err
			}
			return &ast.OptParam{BaseNode: ast.BaseNode{Sp: spanUnion(name.Span, nodeSpan(def))}, Name: name.Text, Default: def}, nil
		}
		return &ast.Param{BaseNode: ast.BaseNode{Sp: name.Span}, Name: name.Text}, nil
	}
}
