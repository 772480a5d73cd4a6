package lexer

import "github.com/scriptlex/rbparse/internal/token"

const specialGlobals = "~*$?!@/\\;,.=:<>\""

// scanGlobalVar scans a $-prefixed token: the fixed set of special
// single-punctuation globals, back-references ($&, $`, $', $+), numbered
// references ($1, $2, ...), $-X, $_ and $_ident, or a plain $identifier.
func (l *Lexer) scanGlobalVar() token.Token {
	start := l.buf.Pos()
	l.buf.SkipByte() // consume '$'

	b, ok := l.buf.Current()
	if !ok {
		return l.finishSigil(start, token.GVAR)
	}

	switch b {
	case '&', '`', '\'', '+':
		l.buf.SkipByte()
		return l.finishSigil(start, token.BACK_REF)
	case '-':
		l.buf.SkipByte()
		if n := l.UTF8CharAtShim(l.buf.Pos()); n > 0 {
			l.buf.SetPos(l.buf.Pos() + n)
		}
		return l.finishSigil(start, token.GVAR)
	}

	if isDigit(b) {
		for {
			c, ok := l.buf.Current()
			if !ok || !isDigit(c) {
				break
			}
			l.buf.SkipByte()
		}
		return l.finishSigil(start, token.NTH_REF)
	}

	for i := 0; i < len(specialGlobals); i++ {
		if b == specialGlobals[i] {
			l.buf.SkipByte()
			return l.finishSigil(start, token.GVAR)
		}
	}

	for {
		c, ok := l.buf.Current()
		if !ok || !isIdentByte(c) {
			break
		}
		l.buf.SkipByte()
	}
	return l.finishSigil(start, token.GVAR)
}

// scanInstanceOrClassVar scans @ident or @@ident. An empty or digit-led
// payload is still tokenized (as IVAR/CVAR with empty/invalid text); the
// spec reserves a diagnostic for this case that is currently suppressed.
func (l *Lexer) scanInstanceOrClassVar() token.Token {
	start := l.buf.Pos()
	l.buf.SkipByte() // consume '@'
	kind := token.IVAR
	if b, ok := l.buf.Current(); ok && b == '@' {
		l.buf.SkipByte()
		kind = token.CVAR
	}
	for {
		c, ok := l.buf.Current()
		if !ok || !isIdentByte(c) {
			break
		}
		l.buf.SkipByte()
	}
	return l.finishSigil(start, kind)
}

func (l *Lexer) finishSigil(start int, kind token.Kind) token.Token {
	text, _ := l.buf.Slice(start, l.buf.Pos())
	return token.Token{Kind: kind, Text: string(text), Span: token.Span{Filename: l.filename, Start: start, End: l.buf.Pos()}}
}
