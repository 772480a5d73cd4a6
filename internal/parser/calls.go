package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseCallTail attaches zero or more postfix call-tail operations to
// recv: ".method"/"&.method"/"::CONST", an optional parenthesized
// argument list, an optional "[args]" index, and an optional block.
// Index/attribute chains fold left so `a.b.c` builds as
// Send(Send(a,b),c).
func (p *Parser) parseCallTail(recv ast.Node) (ast.Node, *ParseError) {
	for {
		switch {
		case p.is(token.DOT) || p.is(token.ANDDOT):
			safeNav := p.is(token.ANDDOT)
			dot := p.take()
			name, err := p.expectMethodName()
			if err != nil {
				return nil, err
			}
			send := &ast.Send{Receiver: recv, DotTok: dot.Span, SafeNav: safeNav, Name: name.Text, NameTok: name.Span}
			send.Sp = spanUnion(nodeSpan(recv), dot.Span, name.Span)
			recv = p.attachArgsAndBlock(send)

		case p.is(token.COLON2):
			colon := p.take()
			if p.is(token.CONSTANT) {
				name := p.take()
				recv = &ast.ConstPath{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(recv), colon.Span, name.Span)}, Scope: recv, ColonTok: colon.Span, Name: name.Text, NameTok: name.Span}
				continue
			}
			name, err := p.expectMethodName()
			if err != nil {
				return nil, err
			}
			send := &ast.Send{Receiver: recv, DotTok: colon.Span, Name: name.Text, NameTok: name.Span}
			send.Sp = spanUnion(nodeSpan(recv), colon.Span, name.Span)
			recv = p.attachArgsAndBlock(send)

		case p.is(token.LBRACK) && !p.lex.SawWhitespace():
			beg := p.take()
			p.requireExpr()
			var args []ast.Node
			for !p.is(token.RBRACK) {
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
			end, err := p.expect(token.RBRACK, false)
			if err != nil {
				return nil, err
			}
			idx := &ast.Index{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(recv), beg.Span, end.Span)}, Receiver: recv, BeginTok: beg.Span, Args: args, EndTok: end.Span}
			if p.is(token.EQL) {
				eq := p.take()
				val, err := p.parseExpr(6)
				if err != nil {
					return nil, err
				}
				recv = &ast.IndexAssign{BaseNode: ast.BaseNode{Sp: spanUnion(idx.Sp, eq.Span, nodeSpan(val))}, Target: idx, EqTok: eq.Span, Value: val}
				continue
			}
			recv = idx

		case p.isAny(token.LBRACE, token.KW_DO):
			if send, ok := recv.(*ast.Send); ok && send.Block == nil {
				blk, err := p.parseBlock()
				if err != nil {
					return nil, err
				}
				send.Block = blk
				send.Sp = spanUnion(send.Sp, nodeSpan(blk))
				continue
			}
			return recv, nil

		default:
			return recv, nil
		}
	}
}

// expectMethodName accepts any identifier-family token (ident/fid/
// constant/keyword-used-as-method-name/operator) as a method name,
// since Ruby allows e.g. `obj.class`, `obj.+`, `obj.[]`.
func (p *Parser) expectMethodName() (token.Token, *ParseError) {
	t := p.current()
	if t.Kind.IsIdentifier() || t.Kind.IsKeyword() || t.Kind.IsPunctuation() {
		return p.take(), nil
	}
	return token.Token{}, NewTokenError("method name", t, false)
}

// attachArgsAndBlock parses an optional parenthesized or bare command
// argument list and an optional trailing block for a freshly built Send
// whose receiver/name are already set.
func (p *Parser) attachArgsAndBlock(send *ast.Send) ast.Node {
	if p.is(token.LPAREN) && !p.lex.SawWhitespace() {
		beg := p.take()
		p.requireExpr()
		var args []ast.Node
		for !p.is(token.RPAREN) {
			el, err := p.parseArgElement()
			if err != nil {
				return send
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
		if err == nil {
			send.BeginTok, send.Args, send.EndTok = beg.Span, args, end.Span
			send.Sp = spanUnion(send.Sp, beg.Span, end.Span)
		}
	}
	if p.isAny(token.LBRACE, token.KW_DO) {
		blk, err := p.parseBlock()
		if err == nil {
			send.Block = blk
			send.Sp = spanUnion(send.Sp, nodeSpan(blk))
		}
	}
	return send
}

// commandArrayArgRule is the "yes, this bracket belongs to me" half of
// resolveBracketAfterWhitespace's OneOf: it reads the bracketed literal as
// id's sole argument.
func commandArrayArgRule(id *ast.Ident) Rule[ast.Node] {
	return RuleOf(
		func(p *Parser) bool { return p.is(token.LBRACK) },
		func(p *Parser) (ast.Node, *ParseError) {
			arg, err := p.parseArrayLiteral()
			if err != nil {
				return nil, err
			}
			send := &ast.Send{BaseNode: id.BaseNode, Name: id.Name, NameTok: id.Sp, Args: []ast.Node{arg}}
			send.Sp = spanUnion(id.Sp, nodeSpan(arg))
			return send, nil
		},
	)
}

// leaveUnappliedRule is resolveBracketAfterWhitespace's fallback: if the
// command-argument reading doesn't pan out, hand id back untouched and
// leave the bracket for whatever comes next to deal with.
func leaveUnappliedRule(id *ast.Ident) Rule[ast.Node] {
	return RuleOf(
		func(p *Parser) bool { return true },
		func(p *Parser) (ast.Node, *ParseError) { return id, nil },
	)
}

// resolveBracketAfterWhitespace decides what a whitespace-led "ident
// [...]" means. The lexer has already ruled out a tight index (that's the
// no-whitespace "[" case parseCallTail handles); nothing can legally
// follow a bare identifier on the same line without a separator, so a
// space then "[" can only be id's paren-less argument list, e.g. `puts
// [1, 2]` reads as `puts([1, 2])`, never as two adjacent expressions.
// Routed through OneOf/Checkpoint (rather than applied unconditionally)
// so a malformed bracket or a future second alternative backs the cursor
// out cleanly instead of leaving it mid-consumption.
func (p *Parser) resolveBracketAfterWhitespace(left ast.Node) (ast.Node, *ParseError) {
	id, ok := left.(*ast.Ident)
	if !ok {
		return left, nil
	}
	return OneOf[ast.Node](p, commandArrayArgRule(id), leaveUnappliedRule(id))
}

// parseBareIdentAsCall turns a bare Ident into a zero-receiver Send when
// it's immediately followed by a parenthesized argument list or a block,
// per accessible()'s read-position disambiguation note.
func (p *Parser) parseBareIdentAsCall(id *ast.Ident) ast.Node {
	send := &ast.Send{BaseNode: id.BaseNode, Name: id.Name, NameTok: id.Sp}
	if !p.isAny(token.LPAREN, token.LBRACE, token.KW_DO) {
		return id
	}
	return p.attachArgsAndBlock(send)
}
