package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseIf parses `if cond then body elsif ... else ... end` and the
// `unless` form (identical shape, Unless true).
func (p *Parser) parseIf() (ast.Node, *ParseError) {
	kw := p.take()
	unless := kw.Kind == token.KW_UNLESS

	cond, err := p.parseExpr(minBindingPower)
	if err != nil {
		return nil, err
	}
	if p.isAny(token.KW_THEN, token.SEMICOLON) {
		p.take()
	}
	then, err := p.parseStatementsUntil(token.KW_ELSIF, token.KW_ELSE, token.KW_END)
	if err != nil {
		return nil, err
	}

	var elsifs []ast.ElsifClause
	for p.is(token.KW_ELSIF) {
		ekw := p.take()
		econd, err := p.parseExpr(minBindingPower)
		if err != nil {
			return nil, err
		}
		var ethen token.Token
		if p.isAny(token.KW_THEN, token.SEMICOLON) {
			ethen = p.take()
		}
		ebody, err := p.parseStatementsUntil(token.KW_ELSIF, token.KW_ELSE, token.KW_END)
		if err != nil {
			return nil, err
		}
		elsifs = append(elsifs, ast.ElsifClause{KeywordTok: ekw.Span, Cond: econd, ThenTok: ethen.Span, Then: ebody})
	}

	var elseTok token.Token
	var elseBody ast.Node
	if p.is(token.KW_ELSE) {
		elseTok = p.take()
		elseBody, err = p.parseStatementsUntil(token.KW_END)
		if err != nil {
			return nil, err
		}
	}

	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return buildIf(kw, unless, cond, then, elsifs, elseTok, elseBody, end), nil
}

// parseTernary completes `cond ? then : else` once cond and the `?` have
// already been recognized by the Pratt loop (level 11/10 in precedence.go).
func (p *Parser) parseTernary(cond ast.Node, qTok token.Token) (ast.Node, *ParseError) {
	then, err := p.parseExpr(11)
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(token.COLON, false)
	if err != nil {
		return nil, err
	}
	els, err := p.parseExpr(10)
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{
		BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(cond), qTok.Span, nodeSpan(then), colon.Span, nodeSpan(els))},
		Cond:     cond, QTok: qTok.Span, Then: then, ColonTok: colon.Span, Else: els,
	}, nil
}

// parseWhile parses the block form `while cond [do] body end` and the
// `until` form.
func (p *Parser) parseWhile() (ast.Node, *ParseError) {
	kw := p.take()
	until := kw.Kind == token.KW_UNTIL

	cond, err := p.parseExpr(minBindingPower)
	if err != nil {
		return nil, err
	}
	var doTok token.Token
	if p.isAny(token.KW_DO, token.SEMICOLON) {
		doTok = p.take()
	}
	body, err := p.parseStatementsUntil(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.While{
		BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)},
		KeywordTok: kw.Span, Until: until, Cond: cond, DoTok: doTok.Span, Body: body, EndTok: end.Span,
	}, nil
}

// parseModifierWhile builds the one-line statement-modifier form
// `body while cond` / `body until cond`, including the `begin...end
// while cond` post-condition variant (DoWhile true) per spec's note that
// a begin/end body modified by while/until always executes at least once.
func parseModifierWhile(body ast.Node, kw token.Token, cond ast.Node) ast.Node {
	_, isBegin := body.(*ast.Begin)
	return &ast.While{
		BaseNode:   ast.BaseNode{Sp: spanUnion(nodeSpan(body), kw.Span, nodeSpan(cond))},
		KeywordTok: kw.Span, Until: kw.Kind == token.KW_UNTIL, Cond: cond, Body: body, DoWhile: isBegin,
	}
}

// parseFor parses `for x[, y] in iter [do] body end`.
func (p *Parser) parseFor() (ast.Node, *ParseError) {
	forTok := p.take()
	var vars []ast.Node
	for {
		name, err := p.expect(token.IDENT, false)
		if err != nil {
			return nil, err
		}
		vars = append(vars, &ast.Ident{BaseNode: ast.BaseNode{Sp: name.Span}, Name: name.Text})
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	inTok, err := p.expect(token.KW_IN, false)
	if err != nil {
		return nil, err
	}
	iter, err := p.parseExpr(minBindingPower)
	if err != nil {
		return nil, err
	}
	var doTok token.Token
	if p.isAny(token.KW_DO, token.SEMICOLON) {
		doTok = p.take()
	}
	body, err := p.parseStatementsUntil(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.For{
		BaseNode: ast.BaseNode{Sp: spanUnion(forTok.Span, end.Span)},
		ForTok: forTok.Span, Vars: vars, InTok: inTok.Span, Iter: iter, DoTok: doTok.Span, Body: body, EndTok: end.Span,
	}, nil
}

// parseCase parses both `case expr; when ...; end` and the pattern-
// matching `case expr; in ...; end` form, dispatching on which keyword
// follows the subject.
func (p *Parser) parseCase() (ast.Node, *ParseError) {
	caseTok := p.take()
	var subject ast.Node
	if !p.isAny(token.NL, token.SEMICOLON, token.KW_WHEN, token.KW_IN) {
		var err *ParseError
		subject, err = p.parseExpr(minBindingPower)
		if err != nil {
			return nil, err
		}
	}
	p.skipTerminators()

	if p.is(token.KW_IN) {
		return p.parseCaseIn(caseTok, subject)
	}

	var whens []ast.WhenClause
	for p.is(token.KW_WHEN) {
		wkw := p.take()
		var conds []ast.Node
		for {
			c, err := p.parseArgElement()
			if err != nil {
				return nil, err
			}
			conds = append(conds, c)
			if p.is(token.COMMA) {
				p.take()
				continue
			}
			break
		}
		var thenTok token.Token
		if p.isAny(token.KW_THEN, token.SEMICOLON) {
			thenTok = p.take()
		}
		body, err := p.parseStatementsUntil(token.KW_WHEN, token.KW_ELSE, token.KW_END)
		if err != nil {
			return nil, err
		}
		whens = append(whens, ast.WhenClause{KeywordTok: wkw.Span, Conds: conds, ThenTok: thenTok.Span, Body: body})
	}

	var elseTok token.Token
	var elseBody ast.Node
	if p.is(token.KW_ELSE) {
		elseTok = p.take()
		var err *ParseError
		elseBody, err = p.parseStatementsUntil(token.KW_END)
		if err != nil {
			return nil, err
		}
	}

	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.Case{
		BaseNode: ast.BaseNode{Sp: spanUnion(caseTok.Span, end.Span)},
		CaseTok: caseTok.Span, Subject: subject, Whens: whens, ElseTok: elseTok.Span, Else: elseBody, EndTok: end.Span,
	}, nil
}

func (p *Parser) parseCaseIn(caseTok token.Token, subject ast.Node) (ast.Node, *ParseError) {
	var clauses []ast.InClause
	for p.is(token.KW_IN) {
		ikw := p.take()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		var guardTok token.Token
		var guard ast.Node
		if p.isAny(token.KW_IF, token.KW_UNLESS) {
			guardTok = p.take()
			guard, err = p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
		}
		var thenTok token.Token
		if p.isAny(token.KW_THEN, token.SEMICOLON) {
			thenTok = p.take()
		}
		body, err := p.parseStatementsUntil(token.KW_IN, token.KW_ELSE, token.KW_END)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.InClause{KeywordTok: ikw.Span, Pattern: pat, GuardTok: guardTok.Span, Guard: guard, ThenTok: thenTok.Span, Body: body})
	}

	var elseTok token.Token
	var elseBody ast.Node
	if p.is(token.KW_ELSE) {
		elseTok = p.take()
		var err *ParseError
		elseBody, err = p.parseStatementsUntil(token.KW_END)
		if err != nil {
			return nil, err
		}
	}

	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.Case{
		BaseNode: ast.BaseNode{Sp: spanUnion(caseTok.Span, end.Span)},
		CaseTok: caseTok.Span, Subject: subject, Patterns: clauses, ElseTok: elseTok.Span, Else: elseBody, EndTok: end.Span,
	}, nil
}

func (p *Parser) parseJumpArgs(terminators ...token.Kind) []ast.Node {
	if p.isAny(terminators...) || p.isAny(token.NL, token.SEMICOLON, token.EOF) {
		return nil
	}
	var args []ast.Node
	for {
		el, err := p.parseArgElement()
		if err != nil {
			return args
		}
		args = append(args, el)
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	return args
}

func (p *Parser) parseBreak() (ast.Node, *ParseError) {
	kw := p.take()
	args := p.parseJumpArgs()
	var val ast.Node
	if len(args) == 1 {
		val = args[0]
	} else if len(args) > 1 {
		val = &ast.ArrayLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(args[0]), nodeSpan(args[len(args)-1]))}, Elements: args}
	}
	sp := kw.Span
	if val != nil {
		sp = spanUnion(kw.Span, nodeSpan(val))
	}
	return &ast.Break{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Value: val}, nil
}

func (p *Parser) parseNext() (ast.Node, *ParseError) {
	kw := p.take()
	args := p.parseJumpArgs()
	var val ast.Node
	if len(args) == 1 {
		val = args[0]
	} else if len(args) > 1 {
		val = &ast.ArrayLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(args[0]), nodeSpan(args[len(args)-1]))}, Elements: args}
	}
	sp := kw.Span
	if val != nil {
		sp = spanUnion(kw.Span, nodeSpan(val))
	}
	return &ast.Next{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Value: val}, nil
}

func (p *Parser) parseRedo() (ast.Node, *ParseError) {
	kw := p.take()
	return &ast.Redo{BaseNode: ast.BaseNode{Sp: kw.Span}, KeywordTok: kw.Span}, nil
}

func (p *Parser) parseRetry() (ast.Node, *ParseError) {
	kw := p.take()
	return &ast.Retry{BaseNode: ast.BaseNode{Sp: kw.Span}, KeywordTok: kw.Span}, nil
}

func (p *Parser) parseReturn() (ast.Node, *ParseError) {
	kw := p.take()
	args := p.parseJumpArgs()
	sp := kw.Span
	if len(args) > 0 {
		sp = spanUnion(kw.Span, nodeSpan(args[len(args)-1]))
	}
	return &ast.Return{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Args: args}, nil
}

func (p *Parser) parseYield() (ast.Node, *ParseError) {
	kw := p.take()
	if p.is(token.LPAREN) && !p.lex.SawWhitespace() {
		beg := p.take()
		p.requireExpr()
		var args []ast.Node
		for !p.is(token.RPAREN) {
			el, err := p.parseArgElement()
			if err != nil {
				return nil, err
			}
			args = append(args, el)
			if p.is(token.COMMA) {
				p.take()
				p.requireExpr()
				continue
			}
			break
		}
		end, err := p.expect(token.RPAREN, false)
		if err != nil {
			return nil, err
		}
		return &ast.Yield{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)}, KeywordTok: kw.Span, BeginTok: beg.Span, Args: args, EndTok: end.Span}, nil
	}
	args := p.parseJumpArgs()
	sp := kw.Span
	if len(args) > 0 {
		sp = spanUnion(kw.Span, nodeSpan(args[len(args)-1]))
	}
	return &ast.Yield{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Args: args}, nil
}

func (p *Parser) parseDefined() (ast.Node, *ParseError) {
	kw := p.take()
	parenthesized := p.is(token.LPAREN) && !p.lex.SawWhitespace()
	var beg token.Token
	if parenthesized {
		beg = p.take()
	}
	p.requireExpr()
	val, err := p.parseExpr(9)
	if err != nil {
		return nil, err
	}
	sp := spanUnion(kw.Span, nodeSpan(val))
	if parenthesized {
		end, err := p.expect(token.RPAREN, false)
		if err != nil {
			return nil, err
		}
		sp = spanUnion(beg.Span, end.Span)
	}
	return &ast.Defined{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Value: val}, nil
}

// parseBeginBlock parses the top-level `BEGIN { ... }` form.
func (p *Parser) parseBeginBlock() (ast.Node, *ParseError) {
	kw := p.take()
	body, bsp, err := Between(p, token.LBRACE, token.RBRACE, func(p *Parser) (ast.Node, *ParseError) {
		return p.parseStatementsUntil(token.RBRACE)
	})
	if err != nil {
		return nil, err
	}
	return &ast.BeginBlock{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, bsp.Close)}, KeywordTok: kw.Span, Body: body}, nil
}

// parseEndBlock parses the top-level `END { ... }` form.
func (p *Parser) parseEndBlock() (ast.Node, *ParseError) {
	kw := p.take()
	body, bsp, err := Between(p, token.LBRACE, token.RBRACE, func(p *Parser) (ast.Node, *ParseError) {
		return p.parseStatementsUntil(token.RBRACE)
	})
	if err != nil {
		return nil, err
	}
	return &ast.EndBlock{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, bsp.Close)}, KeywordTok: kw.Span, Body: body}, nil
}
