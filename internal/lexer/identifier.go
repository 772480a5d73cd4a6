package lexer

import "github.com/scriptlex/rbparse/internal/token"

// scanIdentifier consumes an identifier and classifies it: reserved
// word, constant (leading uppercase), label (trailing single colon),
// setter/predicate/bang suffix, or plain local/method identifier.
func (l *Lexer) scanIdentifier() token.Token {
	start := l.buf.Pos()
	firstByte, _ := l.buf.Current()

	for {
		b, ok := l.buf.Current()
		if !ok {
			break
		}
		if b < 0x80 {
			if !isIdentByte(b) {
				break
			}
			l.buf.SkipByte()
			continue
		}
		c := l.UTF8CharAtShim(l.buf.Pos())
		if c <= 0 {
			break
		}
		l.buf.SetPos(l.buf.Pos() + c)
	}

	bangOrQuestion := false
	if b, ok := l.buf.Current(); ok && (b == '!' || b == '?') {
		if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); !ok || n != '=' {
			l.buf.SkipByte()
			bangOrQuestion = true
		} else if b == '?' {
			// defined? is the one reserved word that keeps its '?' even
			// though it's followed by other punctuation downstream; the
			// keyword table is consulted with the '?' included below.
			l.buf.SkipByte()
			bangOrQuestion = true
		}
	}

	setter := false
	if !bangOrQuestion {
		if b, ok := l.buf.Current(); ok && b == '=' {
			if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); !ok || (n != '~' && n != '=' && n != '>') {
				l.buf.SkipByte()
				setter = true
			}
		}
	}

	text, _ := l.buf.Slice(start, l.buf.Pos())
	name := string(text)

	if kw, ok := token.LookupKeyword(name); ok {
		return token.Token{Kind: kw, Text: name, Span: token.Span{Filename: l.filename, Start: start, End: l.buf.Pos()}}
	}

	label := false
	if !bangOrQuestion && !setter {
		if b, ok := l.buf.Current(); ok && b == ':' {
			if n, ok := l.buf.ByteAt(l.buf.Pos() + 1); !ok || n != ':' {
				l.buf.SkipByte()
				label = true
			}
		}
	}

	kind := token.IDENT
	switch {
	case label:
		kind = token.LABEL
	case bangOrQuestion:
		kind = token.FID
	case isUpperLead(firstByte):
		kind = token.CONSTANT
	}

	end := l.buf.Pos()
	if label {
		// The label token's text/span excludes the trailing colon.
		end--
	}
	finalText, _ := l.buf.Slice(start, end)
	return token.Token{Kind: kind, Text: string(finalText), Span: token.Span{Filename: l.filename, Start: start, End: end}}
}

func isUpperLead(b byte) bool { return b >= 'A' && b <= 'Z' }

// UTF8CharAtShim classifies the UTF-8 run at pos and returns its byte
// length, or 0 when invalid/EOF (both report Len == 0) — used by the
// identifier scanner to advance by whole runes on high-bit bytes.
func (l *Lexer) UTF8CharAtShim(pos int) int {
	return l.buf.UTF8CharAt(pos).Len
}
