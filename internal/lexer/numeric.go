package lexer

import "github.com/scriptlex/rbparse/internal/token"

// scanNumber implements the numeric state machine: an integer prefix
// (hex/bin/octal/decimal) followed by an optional float/rational/
// imaginary suffix. Underscore digit separators are validated but the
// token carries only its span — callers re-slice the buffer and strip
// underscores when they need the value.
func (l *Lexer) scanNumber() token.Token {
	start := l.buf.Pos()
	kind := token.INTEGER

	if b, ok := l.buf.Current(); ok && b == '0' {
		if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); ok {
			switch n {
			case 'x', 'X':
				l.buf.SkipByte()
				l.buf.SkipByte()
				l.scanDigitRun(isHexDigit)
				return l.finishNumber(start, kind)
			case 'b', 'B':
				l.buf.SkipByte()
				l.buf.SkipByte()
				l.scanDigitRun(isBinDigit)
				return l.finishNumber(start, kind)
			case 'o', 'O':
				l.buf.SkipByte()
				l.buf.SkipByte()
				l.scanDigitRun(isOctalDigit)
				return l.finishNumber(start, kind)
			}
			if isOctalDigit(n) {
				l.buf.SkipByte()
				l.scanDigitRun(isOctalDigit)
				return l.finishNumber(start, kind)
			}
		}
	}

	l.scanDigitRun(isDigit)

	if b, ok := l.buf.Current(); ok && b == '.' {
		if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); ok && isDigit(n) {
			kind = token.FLOAT
			l.buf.SkipByte()
			l.scanDigitRun(isDigit)
		}
	}

	if b, ok := l.buf.Current(); ok && (b == 'e' || b == 'E') {
		savedPos := l.buf.Pos()
		l.buf.SkipByte()
		if s, ok := l.buf.Current(); ok && (s == '+' || s == '-') {
			l.buf.SkipByte()
		}
		if d, ok := l.buf.Current(); ok && isDigit(d) {
			kind = token.FLOAT
			l.scanDigitRun(isDigit)
		} else {
			l.buf.SetPos(savedPos)
		}
	}

	if b, ok := l.buf.Current(); ok && b == 'r' {
		if !l.buf.Lookahead(l.buf.Pos(), "ri") {
			kind = token.RATIONAL
			l.buf.SkipByte()
		}
	}
	if b, ok := l.buf.Current(); ok && b == 'i' {
		kind = token.IMAGINARY
		l.buf.SkipByte()
	}

	return l.finishNumber(start, kind)
}

func isBinDigit(b byte) bool { return b == '0' || b == '1' }

// scanDigitRun consumes digits matching pred plus underscore separators.
// Two consecutive underscores terminate the run; a trailing underscore is
// left unconsumed by backing up one byte before returning.
func (l *Lexer) scanDigitRun(pred func(byte) bool) {
	lastWasUnderscore := false
	for {
		b, ok := l.buf.Current()
		if !ok {
			if lastWasUnderscore {
				l.buf.SetPos(l.buf.Pos() - 1)
			}
			return
		}
		if b == '_' {
			if lastWasUnderscore {
				l.buf.SetPos(l.buf.Pos() - 1)
				return
			}
			lastWasUnderscore = true
			l.buf.SkipByte()
			continue
		}
		if !pred(b) {
			if lastWasUnderscore {
				l.buf.SetPos(l.buf.Pos() - 1)
			}
			return
		}
		lastWasUnderscore = false
		l.buf.SkipByte()
	}
}

func (l *Lexer) finishNumber(start int, kind token.Kind) token.Token {
	text, _ := l.buf.Slice(start, l.buf.Pos())
	return token.Token{Kind: kind, Text: string(text), Span: token.Span{Filename: l.filename, Start: start, End: l.buf.Pos()}}
}
