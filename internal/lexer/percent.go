package lexer

import "github.com/scriptlex/rbparse/internal/token"

// scanPercentLiteral resolves "%" into either the modulo/percent-assign
// operator or a percent-literal opener (%q %Q %w %W %i %I %x %r %s),
// pushing the matching literal reader and emitting the corresponding
// *_BEG token.
func (l *Lexer) scanPercentLiteral() token.Token {
	start := l.buf.Pos()
	l.buf.SkipByte() // consume '%'

	if b, ok := l.buf.Current(); ok && b == '=' {
		l.buf.SkipByte()
		return token.Token{Kind: token.OP_ASGN, Text: "%=", Span: spanAt(l.filename, start, l.buf.Pos()),
			Payload: token.OpAssignPayload{Base: token.PERCENT}}
	}

	selector, ok := l.buf.Current()
	kind := byte('Q')
	if ok && isPercentSelector(selector) {
		kind = selector
		l.buf.SkipByte()
	}

	open, ok := l.buf.Current()
	if !ok {
		return token.Token{Kind: token.PERCENT, Text: "%", Span: spanAt(l.filename, start, l.buf.Pos())}
	}
	l.buf.SkipByte()

	beg := spanAt(l.filename, start, l.buf.Pos())
	switch kind {
	case 'q':
		l.PushLiteral(NewPlainStringReader(open, l.filename))
		return token.Token{Kind: token.STRING_BEG, Span: beg}
	case 'Q':
		l.PushLiteral(NewInterpolatedStringReader(open, l.filename, false))
		return token.Token{Kind: token.STRING_BEG, Span: beg}
	case 'w':
		l.PushLiteral(NewWordArrayReader(open, l.filename, false))
		return token.Token{Kind: token.WORDS_BEG, Span: beg}
	case 'W':
		l.PushLiteral(NewWordArrayReader(open, l.filename, true))
		return token.Token{Kind: token.WORDS_BEG, Span: beg}
	case 'i':
		l.PushLiteral(NewSymbolArrayReader(open, l.filename, false))
		return token.Token{Kind: token.SYMBOLS_BEG, Span: beg}
	case 'I':
		l.PushLiteral(NewSymbolArrayReader(open, l.filename, true))
		return token.Token{Kind: token.SYMBOLS_BEG, Span: beg}
	case 'x':
		l.PushLiteral(NewInterpolatedStringReader(open, l.filename, false))
		return token.Token{Kind: token.XSTRING_BEG, Span: beg}
	case 'r':
		l.PushLiteral(NewRegexpReader(open, l.filename))
		return token.Token{Kind: token.REGEXP_BEG, Span: beg}
	case 's':
		l.PushLiteral(NewSymbolReader(open, l.filename))
		return token.Token{Kind: token.SYMBEG, Span: beg}
	default:
		l.PushLiteral(NewInterpolatedStringReader(open, l.filename, false))
		return token.Token{Kind: token.STRING_BEG, Span: beg}
	}
}

func isPercentSelector(b byte) bool {
	switch b {
	case 'q', 'Q', 'w', 'W', 'i', 'I', 'x', 'r', 's':
		return true
	}
	return false
}

// scanStringOpener handles the plain quote-character openers: '"' and
// '`' are interpolated (the latter as an xstring), '\'' is plain.
func (l *Lexer) scanStringOpener(quote byte, interpolate bool, isXString bool) token.Token {
	start := l.buf.Pos()
	l.buf.SkipByte()
	beg := spanAt(l.filename, start, l.buf.Pos())
	if !interpolate {
		l.PushLiteral(NewPlainStringReader(quote, l.filename))
		return token.Token{Kind: token.STRING_BEG, Span: beg}
	}
	l.PushLiteral(NewInterpolatedStringReader(quote, l.filename, false))
	if isXString {
		return token.Token{Kind: token.XSTRING_BEG, Span: beg}
	}
	return token.Token{Kind: token.STRING_BEG, Span: beg}
}
