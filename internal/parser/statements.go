package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// ParseProgram is the grammar's top-level entry point: a statement
// sequence running to EOF.
func (p *Parser) ParseProgram() (ast.Node, *ParseError) {
	body, err := p.parseStatementsUntil(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF, false); err != nil {
		return nil, err
	}
	stmts, _ := body.(*ast.Statements)
	var list []ast.Node
	if stmts != nil {
		list = stmts.Body
	}
	return &ast.Program{BaseNode: ast.BaseNode{Sp: nodeSpan(body)}, Statements: list}, nil
}

// parseStatementsUntil parses a statement sequence, skipping leading and
// separating NL/";" terminators, stopping as soon as the current token
// matches any of endKinds.
func (p *Parser) parseStatementsUntil(endKinds ...token.Kind) (ast.Node, *ParseError) {
	start := p.current().Span
	var body []ast.Node
	p.skipTerminators()
	for !p.isAny(endKinds...) && !p.is(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if !p.isAny(token.NL, token.SEMICOLON) {
			break
		}
		p.skipTerminators()
	}
	sp := start
	if len(body) > 0 {
		sp = spanUnion(nodeSpan(body[0]), nodeSpan(body[len(body)-1]))
	}
	return &ast.Statements{BaseNode: ast.BaseNode{Sp: sp}, Body: body}, nil
}

func (p *Parser) skipTerminators() {
	for p.isAny(token.NL, token.SEMICOLON) {
		p.take()
	}
}

// parseStatement parses one top-level statement: an expression, possibly
// followed by a trailing statement-modifier (if/unless/while/until/
// rescue).
func (p *Parser) parseStatement() (ast.Node, *ParseError) {
	expr, err := p.parseExprStatement()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isAny(token.KW_IF, token.KW_UNLESS):
			kw := p.take()
			cond, err := p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
			expr = buildIf(kw, kw.Kind == token.KW_UNLESS, cond, wrapStatements(expr), nil, token.Token{}, nil, token.Token{})
		case p.isAny(token.KW_WHILE, token.KW_UNTIL):
			kw := p.take()
			cond, err := p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
			expr = parseModifierWhile(expr, kw, cond)
		case p.is(token.KW_RESCUE):
			kw := p.take()
			handler, err := p.parseExpr(minBindingPower)
			if err != nil {
				return nil, err
			}
			expr = &ast.Begin{
				BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(expr), nodeSpan(handler))},
				Body:     wrapStatements(expr),
				Rescues:  []ast.RescueClause{{KeywordTok: kw.Span, Body: wrapStatements(handler)}},
			}
		default:
			return expr, nil
		}
	}
}

func wrapStatements(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	return &ast.Statements{BaseNode: ast.BaseNode{Sp: nodeSpan(n)}, Body: []ast.Node{n}}
}

// parseExprStatement parses one expression at statement level: a single
// assignable target followed by "," opens the multiple-assignment path.
func (p *Parser) parseExprStatement() (ast.Node, *ParseError) {
	expr, err := p.parseExpr(minBindingPower)
	if err != nil {
		return nil, err
	}
	if p.is(token.COMMA) && classifyMlhsElement(expr) != mlhsNever {
		return p.parseMultiAssignFrom(expr)
	}
	return expr, nil
}

// parseExpr is the Pratt loop: parse a prefix/primary expression, then
// repeatedly fold in infix/postfix operators whose left binding power
// exceeds minBP.
func (p *Parser) parseExpr(minBP int) (ast.Node, *ParseError) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		bp, ok := infixBindingPower(tok.Kind)
		if !ok || bp.left < minBP {
			return left, nil
		}

		switch tok.Kind {
		case token.EQL:
			p.take()
			p.requireExpr()
			value, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = buildAssign(assignable(left), tok, value)

		case token.OP_ASGN:
			p.take()
			p.requireExpr()
			value, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = buildOpAssign(assignable(left), tok, value)

		case token.QMARK:
			p.take()
			p.requireExpr()
			left, err = p.parseTernary(left, tok)
			if err != nil {
				return nil, err
			}

		case token.KW_AND, token.ANDOP:
			p.take()
			p.requireExpr()
			right, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = &ast.And{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(left), tok.Span, nodeSpan(right))}, Left: left, Right: right, OpTok: tok.Span, Keyword: tok.Kind == token.KW_AND}

		case token.KW_OR, token.OROP:
			p.take()
			p.requireExpr()
			right, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = &ast.Or{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(left), tok.Span, nodeSpan(right))}, Left: left, Right: right, OpTok: tok.Span, Keyword: tok.Kind == token.KW_OR}

		case token.MATCH, token.NMATCH:
			p.take()
			p.requireExpr()
			right, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = &ast.Match{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(left), tok.Span, nodeSpan(right))}, Left: left, Op: tok.Text, OpTok: tok.Span, Right: right, Negate: tok.Kind == token.NMATCH}

		case token.DOT2, token.DOT3:
			p.take()
			var high ast.Node
			if !p.isAny(token.NL, token.SEMICOLON, token.RPAREN, token.RBRACK, token.RBRACE, token.COMMA, token.EOF, token.KW_THEN, token.KW_DO) {
				p.requireExpr()
				high, err = p.parseExpr(bp.right)
				if err != nil {
					return nil, err
				}
			}
			left = &ast.Range{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(left), tok.Span, nodeSpan(high))}, Low: left, OpTok: tok.Span, Exclude: tok.Kind == token.DOT3, High: high}

		case token.DOT, token.ANDDOT:
			left, err = p.parseCallTail(left)
			if err != nil {
				return nil, err
			}

		case token.COLON2:
			left, err = p.parseCallTail(left)
			if err != nil {
				return nil, err
			}

		case token.LBRACK:
			if p.lex.SawWhitespace() {
				left, err = p.resolveBracketAfterWhitespace(left)
				if err != nil {
					return nil, err
				}
				return left, nil
			}
			left, err = p.parseCallTail(left)
			if err != nil {
				return nil, err
			}

		default:
			p.take()
			p.requireExpr()
			right, err := p.parseExpr(bp.right)
			if err != nil {
				return nil, err
			}
			left = buildBinaryOp(left, tok, right)
		}
	}
}

// parsePrefix parses a prefix-operator expression or falls through to a
// bare primary: unary -/+/~/!, `not`, `defined?`.
func (p *Parser) parsePrefix() (ast.Node, *ParseError) {
	switch {
	case p.isAny(token.UMINUS, token.MINUS):
		op := p.take()
		p.requireExpr()
		val, err := p.parseExpr(33)
		if err != nil {
			return nil, err
		}
		return buildUnaryOp(op, val), nil

	case p.isAny(token.UPLUS, token.PLUS):
		op := p.take()
		p.requireExpr()
		val, err := p.parseExpr(37)
		if err != nil {
			return nil, err
		}
		return buildUnaryOp(op, val), nil

	case p.is(token.TILDE):
		op := p.take()
		p.requireExpr()
		val, err := p.parseExpr(37)
		if err != nil {
			return nil, err
		}
		return buildUnaryOp(op, val), nil

	case p.is(token.BANG):
		op := p.take()
		p.requireExpr()
		val, err := p.parseExpr(37)
		if err != nil {
			return nil, err
		}
		return &ast.Not{BaseNode: ast.BaseNode{Sp: spanUnion(op.Span, nodeSpan(val))}, OpTok: op.Span, Value: val}, nil

	case p.is(token.KW_NOT):
		op := p.take()
		p.requireExpr()
		val, err := p.parseExpr(5)
		if err != nil {
			return nil, err
		}
		return &ast.Not{BaseNode: ast.BaseNode{Sp: spanUnion(op.Span, nodeSpan(val))}, OpTok: op.Span, Keyword: true, Value: val}, nil

	case p.is(token.KW_DEFINED):
		return p.parseDefined()

	case p.isAny(token.STAR, token.STAR_ARG):
		star := p.take()
		p.requireExpr()
		val, err := p.parseExpr(31)
		if err != nil {
			return nil, err
		}
		return &ast.SplatArg{BaseNode: ast.BaseNode{Sp: spanUnion(star.Span, nodeSpan(val))}, StarTok: star.Span, Value: val}, nil

	default:
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return p.parseCallTail(primary)
	}
}

// parsePrimary dispatches on the current token to produce one atomic
// expression: a literal, a variable/constant reference, a
// parenthesized/array/hash literal, a lambda,
// or a keyword-led compound form (if/case/while/def/class/...).
func (p *Parser) parsePrimary() (ast.Node, *ParseError) {
	t := p.current()
	switch {
	case t.Kind == token.INTEGER:
		p.take()
		return &ast.IntLiteral{BaseNode: ast.BaseNode{Sp: t.Span}, Text: t.Text}, nil
	case t.Kind == token.FLOAT:
		p.take()
		return &ast.FloatLiteral{BaseNode: ast.BaseNode{Sp: t.Span}, Text: t.Text}, nil
	case t.Kind == token.RATIONAL:
		p.take()
		return &ast.RationalLiteral{BaseNode: ast.BaseNode{Sp: t.Span}, Text: t.Text}, nil
	case t.Kind == token.IMAGINARY:
		p.take()
		return &ast.ImaginaryLiteral{BaseNode: ast.BaseNode{Sp: t.Span}, Text: t.Text}, nil

	case t.Kind == token.STRING_BEG || t.Kind == token.XSTRING_BEG || t.Kind == token.REGEXP_BEG || t.Kind == token.SYMBEG:
		return p.parseAdjacentStrings()
	case t.Kind == token.WORDS_BEG || t.Kind == token.SYMBOLS_BEG:
		return p.parseWordOrSymbolArray()
	case t.Kind == token.COLON:
		return p.parseSymbolLiteral()
	case t.Kind == token.CHAR:
		p.take()
		return &ast.CharLiteral{BaseNode: ast.BaseNode{Sp: t.Span}, Value: t.Text}, nil

	case t.Kind == token.LBRACK:
		return p.parseArrayLiteral()
	case t.Kind == token.LBRACE:
		return p.parseHashLiteral()
	case t.Kind == token.ARROW:
		return p.parseLambdaLiteral()

	case t.Kind == token.LPAREN:
		p.take()
		p.requireExpr()
		if p.is(token.RPAREN) {
			end := p.take()
			return &ast.NilLiteral{BaseNode: ast.BaseNode{Sp: spanUnion(t.Span, end.Span)}}, nil
		}
		inner, err := p.parseStatementsUntil(token.RPAREN)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RPAREN, false)
		if err != nil {
			return nil, err
		}
		if s, ok := inner.(*ast.Statements); ok && len(s.Body) == 1 {
			return s.Body[0], nil
		}
		inner.(*ast.Statements).Sp = spanUnion(t.Span, end.Span)
		return inner, nil

	case t.Kind == token.IDENT:
		p.take()
		if num, ok := numberedParamOf(t.Text); ok {
			return &ast.NumberedParam{BaseNode: ast.BaseNode{Sp: t.Span}, Number: num}, nil
		}
		id := &ast.Ident{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}
		return p.parseBareIdentAsCall(id), nil
	case t.Kind == token.FID:
		p.take()
		id := &ast.Ident{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}
		return p.parseBareIdentAsCall(id), nil
	case t.Kind == token.CONSTANT:
		return p.parseConstPath()
	case t.Kind == token.IVAR:
		p.take()
		return &ast.IVar{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}, nil
	case t.Kind == token.CVAR:
		p.take()
		return &ast.CVar{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}, nil
	case t.Kind == token.GVAR:
		p.take()
		return &ast.GVar{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}, nil
	case t.Kind == token.NTH_REF:
		p.take()
		return &ast.NthRef{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.BACK_REF:
		p.take()
		return &ast.BackRef{BaseNode: ast.BaseNode{Sp: t.Span}, Name: t.Text}, nil

	case t.Kind == token.KW_SELF:
		p.take()
		return &ast.SelfExpr{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_NIL:
		p.take()
		return &ast.NilLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_TRUE:
		p.take()
		return &ast.TrueLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_FALSE:
		p.take()
		return &ast.FalseLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_FILE:
		p.take()
		return &ast.FileLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_LINE:
		p.take()
		return &ast.LineLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_DIR:
		p.take()
		return &ast.DirLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_METHOD_KW:
		p.take()
		return &ast.MethodLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil
	case t.Kind == token.KW_ENCODING:
		p.take()
		return &ast.EncodingLiteral{BaseNode: ast.BaseNode{Sp: t.Span}}, nil

	case t.Kind == token.KW_SUPER:
		return p.parseSuper()

	case t.Kind == token.KW_IF, t.Kind == token.KW_UNLESS:
		return p.parseIf()
	case t.Kind == token.KW_WHILE, t.Kind == token.KW_UNTIL:
		return p.parseWhile()
	case t.Kind == token.KW_FOR:
		return p.parseFor()
	case t.Kind == token.KW_CASE:
		return p.parseCase()
	case t.Kind == token.KW_BEGIN:
		return p.parseBegin()
	case t.Kind == token.KW_DEF:
		return p.parseMethodDef()
	case t.Kind == token.KW_CLASS:
		return p.parseClassDef()
	case t.Kind == token.KW_MODULE:
		return p.parseModuleDef()
	case t.Kind == token.KW_ALIAS:
		return p.parseAlias()
	case t.Kind == token.KW_UNDEF:
		return p.parseUndef()
	case t.Kind == token.KW_BREAK:
		return p.parseBreak()
	case t.Kind == token.KW_NEXT:
		return p.parseNext()
	case t.Kind == token.KW_REDO:
		return p.parseRedo()
	case t.Kind == token.KW_RETRY:
		return p.parseRetry()
	case t.Kind == token.KW_RETURN:
		return p.parseReturn()
	case t.Kind == token.KW_YIELD:
		return p.parseYield()
	case t.Kind == token.KW_BEGIN_UPPER:
		return p.parseBeginBlock()
	case t.Kind == token.KW_END_UPPER:
		return p.parseEndBlock()
	case t.Kind == token.KW_LAMBDA, t.Kind == token.KW_PROC:
		return p.parseProcCall()

	default:
		return nil, NewTokenError("expression", t, false)
	}
}

// parseAdjacentStrings parses one string/regexp/xstring/dsymbol literal
// and then folds in any immediately adjacent string literals (Ruby's
// "a" "b" compile-time string-literal concatenation).
func (p *Parser) parseAdjacentStrings() (ast.Node, *ParseError) {
	first, err := p.parseStringLiteral()
	if err != nil {
		return nil, err
	}
	lit, ok := first.(*ast.StringLiteral)
	if !ok {
		return first, nil
	}
	for p.is(token.STRING_BEG) {
		next, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		nlit, ok := next.(*ast.StringLiteral)
		if !ok {
			break
		}
		lit = &ast.StringLiteral{
			BaseNode: ast.BaseNode{Sp: spanUnion(lit.Sp, nlit.Sp)},
			BeginTok: lit.BeginTok, Parts: append(append([]ast.Node{}, lit.Parts...), nlit.Parts...), EndTok: nlit.EndTok,
		}
	}
	return lit, nil
}

// parseSuper parses bare `super`, `super(args)`, and `super args` (the
// zsuper form with no parens/args forwards the enclosing method's
// arguments implicitly, represented identically to bare `super` since
// that forwarding is a semantic concern).
func (p *Parser) parseSuper() (ast.Node, *ParseError) {
	kw := p.take()
	send := &ast.Send{BaseNode: ast.BaseNode{Sp: kw.Span}, Name: "super", NameTok: kw.Span}
	if p.is(token.LPAREN) && !p.lex.SawWhitespace() {
		return p.attachArgsAndBlock(send), nil
	}
	if !p.isAny(token.NL, token.SEMICOLON, token.EOF, token.DOT, token.KW_DO, token.LBRACE) && !infixOnly(p.current().Kind) {
		args := p.parseJumpArgs()
		if len(args) > 0 {
			send.Args = args
			send.Sp = spanUnion(send.Sp, nodeSpan(args[len(args)-1]))
		}
	}
	if p.isAny(token.LBRACE, token.KW_DO) {
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		send.Block = blk
		send.Sp = spanUnion(send.Sp, nodeSpan(blk))
	}
	return send, nil
}

func infixOnly(k token.Kind) bool {
	_, ok := infixBindingPower(k)
	return ok
}

// parseProcCall parses `lambda { ... }` / `proc { ... }` as an ordinary
// zero-receiver call rather than a distinct node shape, since both are
// plain Kernel methods and not reserved syntax — spelled as keywords here
// only because the lexer reserves them per spec.md's keyword catalogue.
func (p *Parser) parseProcCall() (ast.Node, *ParseError) {
	kw := p.take()
	send := &ast.Send{BaseNode: ast.BaseNode{Sp: kw.Span}, Name: kw.Text, NameTok: kw.Span}
	return p.attachArgsAndBlock(send), nil
}

func numberedParamOf(name string) (int, bool) {
	if name == "it" {
		return 0, true
	}
	if len(name) == 2 && name[0] == '_' && name[1] >= '1' && name[1] <= '9' {
		return int(name[1] - '0'), true
	}
	return 0, false
}
