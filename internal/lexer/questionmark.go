package lexer

import "github.com/scriptlex/rbparse/internal/token"

// scanQuestionMark resolves a bare "?" into either a tCHAR literal (when
// followed by a single valid character, or one of the escape-literal
// forms) or a standalone tEH when it can't form a character literal
// (e.g. followed by an identifier byte, meaning "?" is the ternary/
// predicate-suffix punctuation instead).
func (l *Lexer) scanQuestionMark() token.Token {
	start := l.buf.Pos()
	l.buf.SkipByte() // consume '?'

	b, ok := l.buf.Current()
	if !ok {
		return token.Token{Kind: token.EH, Text: "?", Span: spanAt(l.filename, start, l.buf.Pos())}
	}

	// "?" followed by an identifier byte and then another identifier
	// byte is not a char literal (it's the start of a method call like
	// `foo?bar`, which the grammar rejects elsewhere) — a single
	// identifier byte not followed by a second one is the one-letter
	// char literal `?a`.
	if isIdentByte(b) && !isCharLiteralBoundary(l, l.buf.Pos()+1) {
		return token.Token{Kind: token.EH, Text: "?", Span: spanAt(l.filename, start, l.buf.Pos())}
	}

	reader := NewCharReader(l.filename)
	result := reader.Poll(l, l.curlyNest)
	return result.Tok
}

// isCharLiteralBoundary reports whether pos is NOT the start of a second
// identifier byte, i.e. whether exactly one identifier byte follows the
// "?".
func isCharLiteralBoundary(l *Lexer, pos int) bool {
	b, ok := l.buf.ByteAt(pos)
	return !ok || !isIdentByte(b)
}
