package lexer

import "github.com/scriptlex/rbparse/internal/token"

// skipTriviaOnce consumes one run of whitespace, one comment, or one
// embedded =begin/=end block, returning true if it consumed anything (so
// the caller loops until trivia is exhausted). Significant newlines are
// left in place for the caller to turn into tNL; comments are folded away
// unless preserveComments is set, in which case they are pushed straight
// onto l.pending as COMMENT / EMBEDDED_COMMENT_START tokens.
func (l *Lexer) skipTriviaOnce() bool {
	b, ok := l.buf.Current()
	if !ok {
		return false
	}

	switch {
	case b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r':
		l.sawWhitespace = true
		l.buf.SkipByte()
		return true

	case b == '\\':
		if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); ok && n == '\n' {
			l.buf.SkipByte()
			l.buf.SkipByte()
			l.sawWhitespace = true
			return true
		}
		return false

	case b == '#':
		start := l.buf.Pos()
		for {
			c, ok := l.buf.Current()
			if !ok || c == '\n' {
				break
			}
			l.buf.SkipByte()
		}
		if l.preserveComments {
			text, _ := l.buf.Slice(start, l.buf.Pos())
			l.pending = append(l.pending, token.Token{
				Kind: token.COMMENT, Text: string(text),
				Span: token.Span{Filename: l.filename, Start: start, End: l.buf.Pos()},
			})
		}
		return true

	case l.lineStart && l.buf.Lookahead(l.buf.Pos(), "=begin"):
		start := l.buf.Pos()
		for {
			if l.buf.Lookahead(l.buf.Pos(), "=end") {
				for {
					c, ok := l.buf.Current()
					l.buf.SkipByte()
					if !ok || c == '\n' {
						break
					}
				}
				break
			}
			if _, ok := l.buf.Current(); !ok {
				break
			}
			l.buf.SkipByte()
		}
		if l.preserveComments {
			text, _ := l.buf.Slice(start, l.buf.Pos())
			l.pending = append(l.pending, token.Token{
				Kind: token.EMBEDDED_COMMENT_START, Text: string(text),
				Span: token.Span{Filename: l.filename, Start: start, End: l.buf.Pos()},
			})
		}
		return true
	}

	return false
}
