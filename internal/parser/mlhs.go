package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// mlhsVerdict is the tri-valued outcome of checking whether an
// already-parsed expression can serve as one element of a multiple-
// assignment left-hand side: definitely (a bare name, splat, or nested
// parenthesized group), maybe (anything assignable's normal single-target
// form also covers, e.g. an attribute/index target), or never (a literal,
// operator expression, or anything else that can't receive a value).
type mlhsVerdict int

const (
	mlhsNever mlhsVerdict = iota
	mlhsMaybe
	mlhsDefinite
)

func classifyMlhsElement(n ast.Node) mlhsVerdict {
	switch v := n.(type) {
	case *ast.Ident, *ast.IVar, *ast.CVar, *ast.GVar, *ast.Const, *ast.ConstPath, *ast.Mlhs:
		return mlhsDefinite
	case *ast.SplatArg:
		return mlhsDefinite
	case *ast.Send:
		if v.Receiver != nil && len(v.Args) == 0 && v.Block == nil {
			return mlhsMaybe
		}
		return mlhsNever
	case *ast.Index:
		return mlhsMaybe
	default:
		return mlhsNever
	}
}

// parseMlhsItem parses one bare MLHS element: a splat, a parenthesized
// nested group (recursing into Mlhs), or a plain assignable primary
// (ident/ivar/cvar/gvar/const path, optionally with a trailing attribute
// or index tail).
func (p *Parser) parseMlhsItem() (ast.Node, *ParseError) {
	if p.isAny(token.STAR, token.STAR_ARG) {
		star := p.take()
		if p.isAny(token.COMMA, token.EQL) {
			return &ast.SplatArg{BaseNode: ast.BaseNode{Sp: star.Span}, StarTok: star.Span}, nil
		}
		val, err := p.parseMlhsItem()
		if err != nil {
			return nil, err
		}
		return &ast.SplatArg{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nodeSpan(val))}, StarTok: star.Span, Value: val}, nil
	}

	if p.is(token.LPAREN) {
		beg := p.take()
		items, err := p.parseMlhsItemList(token.RPAREN)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RPAREN, false)
		if err != nil {
			return nil, err
		}
		return &ast.Mlhs{BaseNode: ast.BaseNode{Sp: spanUnion(beg.Span, end.Span)}, Items: items}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tail, err := p.parseCallTail(primary)
	if err != nil {
		return nil, err
	}
	if classifyMlhsElement(tail) == mlhsNever {
		return nil, NewTokenError("assignment target", p.current(), false)
	}
	return assignable(tail), nil
}

func (p *Parser) parseMlhsItemList(terminators ...token.Kind) ([]ast.Node, *ParseError) {
	var items []ast.Node
	for !p.isAny(terminators...) {
		item, err := p.parseMlhsItem()
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
	return items, nil
}

// parseMultiAssignFrom builds a MultiAssign once the first MLHS target
// has already been parsed as a plain expression and a following comma
// reveals this is parallel assignment rather than a single-target one;
// first is reinterpreted as the opening Mlhs element.
func (p *Parser) parseMultiAssignFrom(first ast.Node) (ast.Node, *ParseError) {
	targets := []ast.Node{assignable(first)}
	for p.is(token.COMMA) {
		p.take()
		if p.is(token.EQL) {
			break
		}
		item, err := p.parseMlhsItem()
		if err != nil {
			return nil, err
		}
		targets = append(targets, item)
	}
	eq, err := p.expect(token.EQL, false)
	if err != nil {
		return nil, err
	}
	p.requireExpr()
	var values []ast.Node
	for {
		v, err := p.parseArgElement()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	sp := spanUnion(nodeSpan(targets[0]), eq.Span, nodeSpan(values[len(values)-1]))
	return &ast.MultiAssign{BaseNode: ast.BaseNode{Sp: sp}, Targets: targets, EqTok: eq.Span, Values: values}, nil
}
