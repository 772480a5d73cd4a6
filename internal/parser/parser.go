// Package parser implements the Pratt-style recursive-descent recognizer:
// a combinator layer (Rule/OneOf/AllOf/SeparatedBy/AtLeastOnce/Maybe) on
// top of a token cursor backed by the lexer's checkpointable token log.
package parser

import (
	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/lexer"
	"github.com/scriptlex/rbparse/internal/source"
	"github.com/scriptlex/rbparse/internal/token"
)

// Option configures a Parser at construction.
type Option func(*Parser)

// WithFilename sets the filename recorded in diagnostics and passed
// through to the lexer.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// WithTrace records a trace flag on the Parser. Nothing in the parser
// reads the flag, so it produces no trace output.
func WithTrace(trace bool) Option {
	return func(p *Parser) { p.trace = trace }
}

// Parser holds the lexer plus the one piece of transient, one-shot state
// the grammar needs to push through token fetches: newExprRequired (gates
// heredoc-opener and unary-operator recognition).
type Parser struct {
	lex      *lexer.Lexer
	filename string
	trace    bool

	newExprRequired bool

	warnings []Warning
}

// Warnings returns the non-fatal diagnostics collected while parsing
// (e.g. duplicate hash-literal keys), in the order they were raised.
func (p *Parser) Warnings() []Warning { return p.warnings }

func (p *Parser) addWarning(sev Severity, span token.Span, msg string) {
	p.warnings = append(p.warnings, Warning{Severity: sev, Message: msg, Span: span})
}

// New constructs a Parser over raw source bytes.
func New(input []byte, opts ...Option) *Parser {
	p := &Parser{filename: "(unknown)", newExprRequired: true}
	for _, opt := range opts {
		opt(p)
	}
	buf := source.New(p.filename, input)
	p.lex = lexer.New(buf, lexer.WithFilename(p.filename))
	p.lex.SetNewExprRequired(true)
	return p
}

// Parse is the package-level entry point: lex and parse input in one
// call, returning the program root, any collected warnings, or the
// first structured ParseError.
func Parse(input []byte, opts ...Option) (ast.Node, []Warning, *ParseError) {
	p := New(input, opts...)
	program, err := p.ParseProgram()
	return program, p.Warnings(), err
}

// current returns the token at the cursor without consuming it.
func (p *Parser) current() token.Token { return p.lex.CurrentToken() }

// take consumes and returns the current token, clearing the one-shot
// newExprRequired flag (most tokens start a non-expression context;
// rules that need the flag re-arm it explicitly, e.g. after "(" or a
// binary operator).
func (p *Parser) take() token.Token {
	t := p.lex.TakeToken()
	p.newExprRequired = false
	p.lex.SetNewExprRequired(false)
	return t
}

// requireExpr arms newExprRequired for the next token fetch, used after
// tokens that can only be followed by the start of an expression.
func (p *Parser) requireExpr() {
	p.newExprRequired = true
	p.lex.SetNewExprRequired(true)
}

// is reports whether the current token has kind k.
func (p *Parser) is(k token.Kind) bool { return p.current().Kind == k }

// isAny reports whether the current token matches any of ks.
func (p *Parser) isAny(ks ...token.Kind) bool { return p.current().IsAny(ks...) }

// expect consumes the current token if it has kind k, returning a
// TokenMismatch error otherwise. lookahead controls whether the error is
// tagged as a speculative-lookahead failure or a required one.
func (p *Parser) expect(k token.Kind, lookahead bool) (token.Token, *ParseError) {
	if p.is(k) {
		return p.take(), nil
	}
	return token.Token{}, NewTokenError(k.String(), p.current(), lookahead)
}

// mustExpect consumes kind k or returns a required (non-lookahead)
// TokenMismatch error; convenience for AllOf-style call chains that
// already know they're past the point of no return.
func (p *Parser) mustExpect(k token.Kind) (token.Token, *ParseError) {
	return p.expect(k, false)
}

func spanUnion(spans ...token.Span) token.Span {
	var result token.Span
	for _, s := range spans {
		result = result.Union(s)
	}
	return result
}

func nodeSpan(n ast.Node) token.Span {
	if n == nil {
		return token.Span{}
	}
	return n.Span()
}
