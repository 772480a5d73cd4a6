package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parsePattern parses one top-level `case/in` pattern, including the
// `pat => name` binding suffix and `pat1 | pat2` alternation, which both
// bind looser than any single pattern shape.
func (p *Parser) parsePattern() (ast.Node, *ParseError) {
	first, err := p.parsePatternAlt()
	if err != nil {
		return nil, err
	}
	if p.is(token.ASSOC) {
		assoc := p.take()
		name, err := p.expect(token.IDENT, false)
		if err != nil {
			return nil, err
		}
		return &ast.AsPattern{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(first), assoc.Span, name.Span)}, Pattern: first, AssocTok: assoc.Span, Name: name.Text}, nil
	}
	return first, nil
}

func (p *Parser) parsePatternAlt() (ast.Node, *ParseError) {
	first, err := p.parsePatternPrimary()
	if err != nil {
		return nil, err
	}
	if !p.is(token.PIPE) {
		return first, nil
	}
	alts := []ast.Node{first}
	for p.is(token.PIPE) {
		p.take()
		next, err := p.parsePatternPrimary()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	return &ast.AltPattern{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(alts[0]), nodeSpan(alts[len(alts)-1]))}, Alternatives: alts}, nil
}

// parsePatternPrimary parses a single pattern shape: array, find, hash,
// const, pin, bind, or a plain value pattern (any literal/range).
func (p *Parser) parsePatternPrimary() (ast.Node, *ParseError) {
	switch {
	case p.is(token.LBRACK):
		return p.parseArrayPattern(nil)

	case p.is(token.LBRACE):
		return p.parseHashPattern(nil)

	case p.is(token.CARET):
		caret := p.take()
		if p.is(token.LPAREN) {
			p.take()
			val, err := p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RPAREN, false)
			if err != nil {
				return nil, err
			}
			return &ast.PinPattern{BaseNode: ast.BaseNode{Sp: spanUnion(caret.Span, end.Span)}, CaretTok: caret.Span, Value: val}, nil
		}
		val, err := p.parseExpr(37)
		if err != nil {
			return nil, err
		}
		return &ast.PinPattern{BaseNode: ast.BaseNode{Sp: spanUnion(caret.Span, nodeSpan(val))}, CaretTok: caret.Span, Value: val}, nil

	case p.isAny(token.STAR, token.STAR_ARG):
		star := p.take()
		name := ""
		var nameTok token.Token
		if p.is(token.IDENT) {
			nameTok = p.take()
			name = nameTok.Text
		}
		return &ast.PatternRest{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nameTok.Span)}, StarTok: star.Span, Name: name}, nil

	case p.is(token.IDENT):
		name := p.take()
		return &ast.BindPattern{BaseNode: ast.BaseNode{Sp: name.Span}, Name: name.Text}, nil

	case p.is(token.CONSTANT):
		constPath, err := p.parseConstPath()
		if err != nil {
			return nil, err
		}
		if p.is(token.LBRACK) {
			return p.parseArrayPattern(constPath)
		}
		if p.is(token.LPAREN) {
			p.take()
			pat, err := p.parseArrayOrHashPatternBody(constPath, token.RPAREN)
			if err != nil {
				return nil, err
			}
			return pat, nil
		}
		return &ast.ConstPattern{BaseNode: ast.BaseNode{Sp: nodeSpan(constPath)}, Value: constPath}, nil

	default:
		val, err := p.parseExpr(15)
		if err != nil {
			return nil, err
		}
		return &ast.ValuePattern{BaseNode: ast.BaseNode{Sp: nodeSpan(val)}, Value: val}, nil
	}
}

// parseArrayOrHashPatternBody disambiguates `Const(a, b)` (array-shaped)
// from `Const(a:, b:)` (hash-shaped) once the opening delimiter has
// already been consumed by the caller, since both share the same "(" /
// ")" bracketing when a Const precedes them.
func (p *Parser) parseArrayOrHashPatternBody(constNode ast.Node, closeKind token.Kind) (ast.Node, *ParseError) {
	if p.is(token.LABEL) {
		return p.parseHashPatternPairs(constNode, token.Token{}, closeKind)
	}
	return p.parseArrayPatternElements(constNode, token.Token{}, closeKind)
}

func (p *Parser) parseArrayPattern(constNode ast.Node) (ast.Node, *ParseError) {
	beg := p.take()
	return p.parseArrayPatternElements(constNode, beg, token.RBRACK)
}

func (p *Parser) parseArrayPatternElements(constNode ast.Node, beg token.Token, closeKind token.Kind) (ast.Node, *ParseError) {
	var pre []ast.Node
	var preSplat, postSplat ast.Node
	var post []ast.Node
	seenSplat := 0

	for !p.is(closeKind) {
		el, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if rest, ok := el.(*ast.PatternRest); ok {
			seenSplat++
			if seenSplat == 1 {
				preSplat = rest
			} else {
				postSplat = rest
			}
		} else if seenSplat == 0 {
			pre = append(pre, el)
		} else {
			post = append(post, el)
		}
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	end, err := p.expect(closeKind, false)
	if err != nil {
		return nil, err
	}
	sp := spanUnion(nodeSpan(constNode), beg.Span, end.Span)

	if seenSplat == 2 {
		return &ast.FindPattern{BaseNode: ast.BaseNode{Sp: sp}, Const: constNode, BeginTok: beg.Span, PreSplat: preSplat, Elements: post, PostSplat: postSplat, EndTok: end.Span}, nil
	}
	elements := pre
	if preSplat != nil {
		elements = append(append(elements, preSplat), post...)
	}
	return &ast.ArrayPattern{BaseNode: ast.BaseNode{Sp: sp}, Const: constNode, BeginTok: beg.Span, Elements: elements, EndTok: end.Span}, nil
}

func (p *Parser) parseHashPattern(constNode ast.Node) (ast.Node, *ParseError) {
	beg := p.take()
	return p.parseHashPatternPairs(constNode, beg, token.RBRACE)
}

func (p *Parser) parseHashPatternPairs(constNode ast.Node, beg token.Token, closeKind token.Kind) (ast.Node, *ParseError) {
	var pairs []ast.HashPatternPair
	var rest ast.Node
	for !p.is(closeKind) {
		if p.isAny(token.DSTAR, token.DSTAR_ARG) {
			star := p.take()
			if p.is(token.KW_NIL) {
				nilTok := p.take()
				rest = &ast.DoubleSplatParam{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nilTok.Span)}, StarTok: star.Span, NoKwargs: true}
			} else {
				name := ""
				var nameTok token.Token
				if p.is(token.IDENT) {
					nameTok = p.take()
					name = nameTok.Text
				}
				rest = &ast.DoubleSplatParam{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nameTok.Span)}, StarTok: star.Span, Name: name}
			}
			if p.is(token.COMMA) {
				p.take()
				continue
			}
			break
		}
		label, err := p.expect(token.LABEL, false)
		if err != nil {
			return nil, err
		}
		var val ast.Node
		if !p.isAny(token.COMMA, closeKind) {
			val, err = p.parsePattern()
			if err != nil {
				return nil, err
			}
		}
		pairs = append(pairs, ast.HashPatternPair{KeyTok: label.Span, Key: label.Text, Value: val})
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	end, err := p.expect(closeKind, false)
	if err != nil {
		return nil, err
	}
	sp := spanUnion(nodeSpan(constNode), beg.Span, end.Span)
	return &ast.HashPattern{BaseNode: ast.BaseNode{Sp: sp}, Const: constNode, BeginTok: beg.Span, Pairs: pairs, Rest: rest, EndTok: end.Span}, nil
}
