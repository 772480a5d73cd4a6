package parser

import (
	"fmt"

	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseStringLike drives any *_BEG-opened literal (STRING_BEG,
// XSTRING_BEG, REGEXP_BEG, WORDS_BEG, SYMBOLS_BEG, SYMBEG) to its
// closing token, collecting STRING_CONTENT runs and interpolated
// expressions (STRING_DBEG ... STRING_DEND, or the compound STRING_DVAR
// + IVAR/CVAR/GVAR form) into Parts.
func (p *Parser) parseStringLike() ([]ast.Node, token.Token, *ParseError) {
	var parts []ast.Node
	for {
		switch {
		case p.isAny(token.STRING_END):
			end := p.take()
			return parts, end, nil

		case p.is(token.STRING_CONTENT):
			t := p.take()
			parts = append(parts, &ast.StringContent{BaseNode: ast.BaseNode{Sp: t.Span}, Value: t.Text})

		case p.is(token.STRING_DBEG):
			p.take()
			p.requireExpr()
			expr, err := p.parseExpr(minBindingPower)
			if err != nil {
				return parts, token.Token{}, err
			}
			if _, err := p.expect(token.STRING_DEND, false); err != nil {
				return parts, token.Token{}, err
			}
			parts = append(parts, expr)

		case p.is(token.STRING_DVAR):
			p.take()
			varTok := p.take()
			parts = append(parts, varRefNode(varTok))

		default:
			return parts, token.Token{}, NewTokenError("string content or terminator", p.current(), false)
		}
	}
}

func varRefNode(t token.Token) ast.Node {
	sp := ast.BaseNode{Sp: t.Span}
	switch t.Kind {
	case token.IVAR:
		return &ast.IVar{BaseNode: sp, Name: t.Text}
	case token.CVAR:
		return &ast.CVar{BaseNode: sp, Name: t.Text}
	default:
		return &ast.GVar{BaseNode: sp, Name: t.Text}
	}
}

func (p *Parser) parseStringLiteral() (ast.Node, *ParseError) {
	beg := p.take()
	parts, end, err := p.parseStringLike()
	if err != nil {
		return nil, err
	}
	switch beg.Kind {
	case token.XSTRING_BEG:
		return &ast.XString{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Parts: parts, EndTok: end.Span}, nil
	case token.REGEXP_BEG:
		return &ast.Regexp{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Parts: parts, EndTok: end.Span, Options: end.Text}, nil
	case token.SYMBEG:
		return &ast.DSymbol{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, Parts: parts}, nil
	default:
		return &ast.StringLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Parts: parts, EndTok: end.Span}, nil
	}
}

func (p *Parser) parseWordOrSymbolArray() (ast.Node, *ParseError) {
	beg := p.take()
	var elements []ast.Node
	for p.is(token.STRING_CONTENT) {
		t := p.take()
		elements = append(elements, &ast.StringContent{BaseNode: ast.BaseNode{Sp: t.Span}, Value: t.Text})
	}
	end, err := p.expect(token.STRING_END, false)
	if err != nil {
		return nil, err
	}
	sp := ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}
	if beg.Kind == token.SYMBOLS_BEG {
		return &ast.SymbolArray{BaseNode: sp, BeginTok: beg.Span, Elements: elements, EndTok: end.Span}, nil
	}
	return &ast.WordArray{BaseNode: sp, BeginTok: beg.Span, Elements: elements, EndTok: end.Span}, nil
}

func (p *Parser) parseSymbolLiteral() (ast.Node, *ParseError) {
	colon := p.take()
	name, err := p.expect(token.IDENT, false)
	if err != nil {
		name, err = p.expect(token.CONSTANT, false)
	}
	if err != nil {
		return nil, err
	}
	part := &ast.StringContent{BaseNode: ast.BaseNode{Sp: name.Span}, Value: name.Text}
	return &ast.Symbol{BaseNode: ast.BaseNode{Sp: spanUnion(colon.Span, name.Span)}, ColonTok: colon.Span, Parts: []ast.Node{part}}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Node, *ParseError) {
	beg := p.take()
	p.requireExpr()
	var elements []ast.Node
	for !p.is(token.RBRACK) {
		el, err := p.parseArgElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.is(token.COMMA) {
			p.take()
			p.requireExpr()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACK, false)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Elements: elements, EndTok: end.Span}, nil
}

// parseArgElement parses one call-argument/array-element position: a
// splat, double-splat, block-pass, or plain expression.
func (p *Parser) parseArgElement() (ast.Node, *ParseError) {
	switch {
	case p.is(token.STAR_ARG):
		star := p.take()
		val, err := p.parseExpr(31)
		if err != nil {
			return nil, err
		}
		return &ast.SplatArg{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nodeSpan(val))}, StarTok: star.Span, Value: val}, nil
	case p.is(token.DSTAR_ARG):
		star := p.take()
		val, err := p.parseExpr(31)
		if err != nil {
			return nil, err
		}
		return &ast.DoubleSplatArg{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nodeSpan(val))}, StarTok: star.Span, Value: val}, nil
	case p.is(token.AMPER):
		amp := p.take()
		val, err := p.parseExpr(31)
		if err != nil {
			return nil, err
		}
		return &ast.BlockPass{BaseNode: ast.BaseNode{Sp: spanUnion(amp.Span, nodeSpan(val))}, AmpTok: amp.Span, Value: val}, nil
	case p.is(token.LABEL):
		return p.parseHashPairLabelFirst()
	default:
		val, err := p.parseExpr(minBindingPower)
		if err != nil {
			return nil, err
		}
		if p.is(token.ASSOC) {
			assoc := p.take()
			v, err := p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
			return associate(val, assoc, token.Token{}, v), nil
		}
		return val, nil
	}
}

func (p *Parser) parseHashPairLabelFirst() (ast.Node, *ParseError) {
	label := p.take()
	val, err := p.parseExpr(minBindingPower)
	if err != nil {
		return nil, err
	}
	key := &ast.StringContent{BaseNode: ast.BaseNode{Sp: label.Span}, Value: label.Text}
	return associate(key, token.Token{}, label, val), nil
}

func (p *Parser) parseHashLiteral() (ast.Node, *ParseError) {
	beg := p.take()
	p.requireExpr()
	var pairs []ast.Node
	for !p.is(token.RBRACE) {
		el, err := p.parseArgElement()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, el)
		if p.is(token.COMMA) {
			p.take()
			p.requireExpr()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE, false)
	if err != nil {
		return nil, err
	}
	p.checkDuplicateKeys(pairs)
	return &ast.HashLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, BeginTok: beg.Span, Pairs: pairs, EndTok: end.Span}, nil
}

// checkDuplicateKeys warns on repeated statically-literal keys within a
// single hash literal. Keys that require evaluation to compare (method
// calls, interpolated strings) are left alone — this only catches the
// same mistake rubocop's Lint/DuplicateHashKey flags.
func (p *Parser) checkDuplicateKeys(pairs []ast.Node) {
	seen := make(map[string]token.Span)
	for _, el := range pairs {
		pair, ok := el.(*ast.HashPair)
		if !ok {
			continue
		}
		text, ok := hashKeyText(pair.Key)
		if !ok {
			continue
		}
		if first, dup := seen[text]; dup {
			p.addWarning(SeverityWarning, pair.Span(), fmt.Sprintf("duplicate hash key (first seen at %s)", first))
			continue
		}
		seen[text] = pair.Span()
	}
}
