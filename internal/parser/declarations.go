package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/token"
)

// parseMethodDef parses `def name(params) ... end`, the singleton form
// `def self.name`/`def recv.name`, and the endless form
// `def name(params) = expr`.
func (p *Parser) parseMethodDef() (ast.Node, *ParseError) {
	kw := p.take()

	var receiver ast.Node
	var dotTok token.Token
	nameTok, err := p.expectMethodName()
	if err != nil {
		return nil, err
	}
	if p.isAny(token.DOT, token.COLON2) {
		dotTok = p.take()
		receiver = simpleNameNode(nameTok)
		nameTok, err = p.expectMethodName()
		if err != nil {
			return nil, err
		}
	}

	var params *ast.ParamList
	if p.is(token.LPAREN) {
		params, err = p.parseParenParams()
		if err != nil {
			return nil, err
		}
	} else if !p.isAny(token.NL, token.SEMICOLON, token.EQL) {
		params, err = p.parseBareParamList(token.NL, token.SEMICOLON, token.EQL)
		if err != nil {
			return nil, err
		}
	}

	if p.is(token.EQL) {
		eq := p.take()
		expr, err := p.parseExpr(minBindingPower)
		if err != nil {
			return nil, err
		}
		body := &ast.Statements{BaseNode: ast.BaseNode{Sp: nodeSpan(expr)}, Body: []ast.Node{expr}}
		return &ast.MethodDef{
			BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, nodeSpan(expr))},
			KeywordTok: kw.Span, Receiver: receiver, DotTok: dotTok.Span,
			Name: nameTok.Text, NameTok: nameTok.Span, Params: params, EqTok: eq.Span, Body: body,
		}, nil
	}

	body, err := p.parseBodyWithRescue(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.MethodDef{
		BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)},
		KeywordTok: kw.Span, Receiver: receiver, DotTok: dotTok.Span,
		Name: nameTok.Text, NameTok: nameTok.Span, Params: params, Body: body, EndTok: end.Span,
	}, nil
}

func simpleNameNode(t token.Token) ast.Node {
	sp := ast.BaseNode{Sp: t.Span}
	if t.Kind == token.KW_SELF {
		return &ast.SelfExpr{BaseNode: sp}
	}
	if t.Kind == token.CONSTANT {
		return &ast.Const{BaseNode: sp, Name: t.Text}
	}
	return &ast.Ident{BaseNode: sp, Name: t.Text}
}

// parseClassDef parses `class Name < Super ... end` and the singleton
// form `class << self ... end`.
func (p *Parser) parseClassDef() (ast.Node, *ParseError) {
	kw := p.take()

	if p.is(token.LSHFT) {
		p.take()
		expr, err := p.parseExpr(minBindingPower)
		if err != nil {
			return nil, err
		}
		body, err := p.parseStatementsUntil(token.KW_END)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.KW_END, false)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDef{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)}, KeywordTok: kw.Span, SingletonExpr: expr, Body: body, EndTok: end.Span}, nil
	}

	name, err := p.parseConstPath()
	if err != nil {
		return nil, err
	}

	var ltTok token.Token
	var super ast.Node
	if p.is(token.LT) {
		ltTok = p.take()
		super, err = p.parseExpr(29)
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseStatementsUntil(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDef{
		BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)},
		KeywordTok: kw.Span, Name: name, LtTok: ltTok.Span, Super: super, Body: body, EndTok: end.Span,
	}, nil
}

func (p *Parser) parseModuleDef() (ast.Node, *ParseError) {
	kw := p.take()
	name, err := p.parseConstPath()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(token.KW_END)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KW_END, false)
	if err != nil {
		return nil, err
	}
	return &ast.ModuleDef{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, end.Span)}, KeywordTok: kw.Span, Name: name, Body: body, EndTok: end.Span}, nil
}

// parseConstPath parses `::Const`, `Const`, or `Scope::Const` chains.
func (p *Parser) parseConstPath() (ast.Node, *ParseError) {
	var node ast.Node
	if p.is(token.COLON2) {
		colon := p.take()
		name, err := p.expect(token.CONSTANT, false)
		if err != nil {
			return nil, err
		}
		node = &ast.ConstPath{BaseNode: ast.BaseNode{Sp: spanUnion(colon.Span, name.Span)}, ColonTok: colon.Span, Name: name.Text, NameTok: name.Span}
	} else {
		name, err := p.expect(token.CONSTANT, false)
		if err != nil {
			return nil, err
		}
		node = &ast.Const{BaseNode: ast.BaseNode{Sp: name.Span}, Name: name.Text}
	}
	for p.is(token.COLON2) {
		colon := p.take()
		name, err := p.expect(token.CONSTANT, false)
		if err != nil {
			return nil, err
		}
		node = &ast.ConstPath{BaseNode: ast.BaseNode{Sp: spanUnion(nodeSpan(node), colon.Span, name.Span)}, Scope: node, ColonTok: colon.Span, Name: name.Text, NameTok: name.Span}
	}
	return node, nil
}

func (p *Parser) parseAlias() (ast.Node, *ParseError) {
	kw := p.take()
	newName, err := p.parseAliasName()
	if err != nil {
		return nil, err
	}
	oldName, err := p.parseAliasName()
	if err != nil {
		return nil, err
	}
	return &ast.Alias{BaseNode: ast.BaseNode{Sp: spanUnion(kw.Span, nodeSpan(oldName))}, KeywordTok: kw.Span, New: newName, Old: oldName}, nil
}

func (p *Parser) parseAliasName() (ast.Node, *ParseError) {
	if p.is(token.SYMBEG) || p.is(token.COLON) {
		return p.parseSymbolLiteral()
	}
	name, err := p.expectMethodName()
	if err != nil {
		return nil, err
	}
	return &ast.Ident{BaseNode: ast.BaseNode{Sp: name.Span}, Name: name.Text}, nil
}

func (p *Parser) parseUndef() (ast.Node, *ParseError) {
	kw := p.take()
	var names []ast.Node
	for {
		name, err := p.parseAliasName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.is(token.COMMA) {
			p.take()
			continue
		}
		break
	}
	sp := kw.Span
	if len(names) > 0 {
		sp = spanUnion(kw.Span, nodeSpan(names[len(names)-1]))
	}
	return &ast.Undef{BaseNode: ast.BaseNode{Sp: sp}, KeywordTok: kw.Span, Names: names}, nil
}
