package lexer

import "unicode/utf8"

// decodeEscape resolves the escape sequence starting just after the
// backslash at buf.Pos(). It returns the decoded bytes to append to the
// unescaped side-buffer and the number of source bytes consumed
// (excluding the backslash itself, which the caller has already skipped).
// ok is false when the bytes at pos don't form a recognised escape, in
// which case the caller falls back to copying the escaped byte verbatim.
//
// On success the buffer is left just past the escape.
//
// Recognised forms: \uXXXX, \u{HHHH HHHH ...}, \xHH, octal \nnn (which
// covers \0), and the single-byte forms (\n \t \s \r \a \b \e \f \v) that
// Ruby string literals special-case. The \C-x / \M-x / \c x meta/control
// forms are not decoded: the letter after the backslash is returned as
// itself and the rest of the form is left as ordinary content.
func decodeEscape(buf bufferView) (decoded []byte, consumed int, ok bool) {
	start := buf.Pos()
	defer func() {
		if ok && buf.Pos() == start {
			buf.SkipByte()
		}
	}()
	c, present := buf.Current()
	if !present {
		return nil, 0, false
	}

	switch c {
	case 'n':
		return []byte{'\n'}, 1, true
	case 't':
		return []byte{'\t'}, 1, true
	case 'r':
		return []byte{'\r'}, 1, true
	case 's':
		return []byte{' '}, 1, true
	case 'a':
		return []byte{7}, 1, true
	case 'b':
		return []byte{8}, 1, true
	case 'e':
		return []byte{27}, 1, true
	case 'f':
		return []byte{12}, 1, true
	case 'v':
		return []byte{11}, 1, true
	case 'u':
		return decodeUnicodeEscape(buf)
	case 'x':
		return decodeHexEscape(buf)
	}

	if isOctalDigit(c) {
		return decodeOctalEscape(buf)
	}

	// Any other escaped byte (\\, \", \', \#, ...) means "the escaped
	// byte itself, literally".
	return []byte{c}, 1, true
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// decodeUnicodeEscape handles \uXXXX and \u{HHHH HHHH ...}, the latter
// accepting one or more space-separated codepoints per original_source's
// literal scanner.
func decodeUnicodeEscape(buf bufferView) ([]byte, int, bool) {
	start := buf.Pos()
	buf.SkipByte() // consume 'u'
	consumed := 1

	if b, ok := buf.Current(); ok && b == '{' {
		buf.SkipByte()
		consumed++
		var out []byte
		for {
			for {
				b, ok := buf.Current()
				if !ok || b != ' ' {
					break
				}
				buf.SkipByte()
				consumed++
			}
			b, ok := buf.Current()
			if !ok || b == '}' {
				break
			}
			cp, n, good := readHexRun(buf, 1, 6)
			if !good {
				buf.SetPos(start)
				return nil, 0, false
			}
			consumed += n
			var tmp [utf8.UTFMax]byte
			w := utf8.EncodeRune(tmp[:], rune(cp))
			out = append(out, tmp[:w]...)
		}
		if b, ok := buf.Current(); ok && b == '}' {
			buf.SkipByte()
			consumed++
		}
		return out, consumed, true
	}

	cp, n, good := readHexRun(buf, 4, 4)
	if !good {
		buf.SetPos(start)
		return nil, 0, false
	}
	consumed += n
	var tmp [utf8.UTFMax]byte
	w := utf8.EncodeRune(tmp[:], rune(cp))
	return tmp[:w], consumed, true
}

// readHexRun reads between min and max hex digits starting at the
// buffer's current position, returning the decoded value and digit count.
func readHexRun(buf bufferView, min, max int) (value int, n int, ok bool) {
	for n < max {
		b, present := buf.Current()
		if !present || !isHexDigit(b) {
			break
		}
		value = value*16 + hexVal(b)
		buf.SkipByte()
		n++
	}
	return value, n, n >= min
}

func decodeHexEscape(buf bufferView) ([]byte, int, bool) {
	start := buf.Pos()
	buf.SkipByte() // consume 'x'
	value, n, ok := readHexRun(buf, 1, 2)
	if !ok {
		buf.SetPos(start)
		return nil, 0, false
	}
	return []byte{byte(value)}, 1 + n, true
}

func decodeOctalEscape(buf bufferView) ([]byte, int, bool) {
	value, n := 0, 0
	for n < 3 {
		b, present := buf.Current()
		if !present || !isOctalDigit(b) {
			break
		}
		value = value*8 + int(b-'0')
		buf.SkipByte()
		n++
	}
	return []byte{byte(value)}, n, n > 0
}
