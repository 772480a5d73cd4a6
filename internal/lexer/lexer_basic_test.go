package lexer

import (
	"testing"

	"github.com/scriptlex/rbparse/internal/source"
	"github.com/scriptlex/rbparse/internal/token"
)

func newLexer(input string) *Lexer {
	return New(source.New("<test>", []byte(input)))
}

// take advances the lexer and arms newExprRequired for the following
// token, mirroring how the parser's take()/requireExpr() pair drives
// the lexer's one piece of externally-owned state. Plain TakeToken
// calls would leave newExprRequired at its initial true forever, since
// the lexer never flips it on its own.
func take(l *Lexer, requireNext bool) token.Token {
	t := l.TakeToken()
	l.SetNewExprRequired(requireNext)
	return t
}

func TestNextTokenBasic(t *testing.T) {
	input := "x = 1 + 2\n"

	tests := []struct {
		expectedKind token.Kind
		expectedText string
		requireNext  bool
	}{
		{token.IDENT, "x", false},
		{token.EQL, "=", true},
		{token.INTEGER, "1", false},
		{token.PLUS, "+", true},
		{token.INTEGER, "2", false},
		{token.NL, "\n", false},
		{token.EOF, "", false},
	}

	l := newLexer(input)
	for i, tt := range tests {
		tok := take(l, tt.requireNext)
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (text=%q)", i, tt.expectedKind, tok.Kind, tok.Text)
		}
		if tt.expectedKind != token.NL && tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.expectedText, tok.Text)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "def end class module self super yield return break next redo retry " +
		"if unless then elsif else while until for in do case when begin rescue ensure " +
		"and or not true false nil defined? lambda proc alias undef"

	expected := []token.Kind{
		token.KW_DEF, token.KW_END, token.KW_CLASS, token.KW_MODULE, token.KW_SELF,
		token.KW_SUPER, token.KW_YIELD, token.KW_RETURN, token.KW_BREAK, token.KW_NEXT,
		token.KW_REDO, token.KW_RETRY, token.KW_IF, token.KW_UNLESS, token.KW_THEN,
		token.KW_ELSIF, token.KW_ELSE, token.KW_WHILE, token.KW_UNTIL, token.KW_FOR,
		token.KW_IN, token.KW_DO, token.KW_CASE, token.KW_WHEN, token.KW_BEGIN,
		token.KW_RESCUE, token.KW_ENSURE, token.KW_AND, token.KW_OR, token.KW_NOT,
		token.KW_TRUE, token.KW_FALSE, token.KW_NIL, token.KW_DEFINED, token.KW_LAMBDA,
		token.KW_PROC, token.KW_ALIAS, token.KW_UNDEF,
		token.EOF,
	}

	l := newLexer(input)
	for i, want := range expected {
		tok := l.TakeToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (text=%q)", i, want, tok.Kind, tok.Text)
		}
	}
}

func TestIdentifierVariants(t *testing.T) {
	input := "foo Bar @ivar @@cvar $global foo?"

	tests := []struct {
		kind token.Kind
		text string
	}{
		{token.IDENT, "foo"},
		{token.CONSTANT, "Bar"},
		{token.IVAR, "@ivar"},
		{token.CVAR, "@@cvar"},
		{token.GVAR, "$global"},
		{token.FID, "foo?"},
		{token.EOF, ""},
	}

	l := newLexer(input)
	for i, tt := range tests {
		tok := l.TakeToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (text=%q)", i, tt.kind, tok.Kind, tok.Text)
		}
		if tok.Text != tt.text {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.text, tok.Text)
		}
	}
}

func TestStringInterpolation(t *testing.T) {
	input := `"hello #{name}"`

	var kinds []token.Kind
	l := newLexer(input)
	for {
		tok := l.TakeToken()
		kinds = append(kinds, tok.Kind)
		if tok.IsEOF() {
			break
		}
	}

	expected := []token.Kind{
		token.STRING_BEG,
		token.STRING_CONTENT,
		token.STRING_DBEG,
		token.IDENT,
		token.STRING_DEND,
		token.STRING_END,
		token.EOF,
	}

	if len(kinds) != len(expected) {
		t.Fatalf("token count mismatch: expected %d, got %d (%v)", len(expected), len(kinds), kinds)
	}
	for i, want := range expected {
		if kinds[i] != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, want, kinds[i])
		}
	}
}

func TestNumberedAndOperators(t *testing.T) {
	input := "a <=> b && c || d ** 2 ..3"

	tests := []struct {
		kind        token.Kind
		requireNext bool
	}{
		{token.IDENT, false},
		{token.CMP, true},
		{token.IDENT, false},
		{token.ANDOP, true},
		{token.IDENT, false},
		{token.OROP, true},
		{token.IDENT, false}, // newExprRequired=false here, so "**" binds as a binary power op
		{token.DSTAR, true},
		{token.INTEGER, false},
		{token.DOT2, true},
		{token.INTEGER, false},
		{token.EOF, false},
	}

	l := newLexer(input)
	for i, tt := range tests {
		tok := take(l, tt.requireNext)
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (text=%q)", i, tt.kind, tok.Kind, tok.Text)
		}
	}
}

func TestCurrentTokenDoesNotAdvance(t *testing.T) {
	l := newLexer("foo bar")
	first := l.CurrentToken()
	second := l.CurrentToken()
	if first.Kind != second.Kind || first.Text != second.Text {
		t.Fatalf("CurrentToken is not idempotent: %+v vs %+v", first, second)
	}
	taken := l.TakeToken()
	if taken.Text != "foo" {
		t.Fatalf("expected first token foo, got %q", taken.Text)
	}
	next := l.TakeToken()
	if next.Text != "bar" {
		t.Fatalf("expected second token bar, got %q", next.Text)
	}
}
