package lexer

import "github.com/scriptlex/rbparse/internal/token"

// pauseState is embedded by every LiteralReader to provide the
// paused/pauseCurlyDepth bookkeeping the interface requires.
type pauseState struct {
	paused    bool
	pauseDepth int
}

func (p *pauseState) Paused() bool         { return p.paused }
func (p *pauseState) SetPaused(v bool)     { p.paused = v }
func (p *pauseState) PauseCurlyDepth() int { return p.pauseDepth }

func (p *pauseState) beginPause(depth int) {
	p.paused = true
	p.pauseDepth = depth
}

// delimiter describes the matched open/close byte pair a reader scans
// between, plus the nesting depth for delimiters where the opener and
// closer differ ("(", "[", "{", "<" nest; a quote character does not).
type delimiter struct {
	open, close byte
	nests       bool
	depth       int
}

func newDelimiter(open byte) delimiter {
	close, nests := matchingCloser(open)
	return delimiter{open: open, close: close, nests: nests}
}

func matchingCloser(open byte) (close byte, nests bool) {
	switch open {
	case '(':
		return ')', true
	case '[':
		return ']', true
	case '{':
		return '}', true
	case '<':
		return '>', true
	default:
		return open, false
	}
}

// scanInterpolationMarker checks for "#{", "#@", "#@@", "#$" at the
// buffer's current position. found is true and kind ('{', '@' or '$')
// identifies which, leaving the buffer just past "#{", or on the sigil
// after '#' for the '@'/'$' forms; on no match the buffer is left
// untouched.
func scanInterpolationMarker(buf bufferView) (kind byte, found bool) {
	pos := buf.Pos()
	b, ok := buf.Current()
	if !ok || b != '#' {
		return 0, false
	}
	next, ok := buf.ByteAt(pos + 1)
	if !ok {
		return 0, false
	}
	switch next {
	case '{':
		buf.SetPos(pos + 2)
		return '{', true
	case '@', '$':
		buf.SetPos(pos + 1)
		return next, true
	}
	return 0, false
}

// scanBareVarAfterSigil reads the identifier text following a raw "#@",
// "#@@" or "#$" marker, used to build the compound tSTRING_DVAR +
// tIVAR/tCVAR/tGVAR token pair.
func scanBareVarAfterSigil(buf bufferView, filename string) (token.Token, bool) {
	start := buf.Pos()
	kind := token.IVAR
	b, _ := buf.Current()
	switch b {
	case '@':
		buf.SkipByte()
		if n, ok := buf.Current(); ok && n == '@' {
			buf.SkipByte()
			kind = token.CVAR
		}
	case '$':
		buf.SkipByte()
		kind = token.GVAR
	}
	idStart := buf.Pos()
	for {
		c, ok := buf.Current()
		if !ok || !isIdentByte(c) {
			break
		}
		buf.SkipByte()
	}
	if buf.Pos() == idStart {
		buf.SetPos(start)
		return token.Token{}, false
	}
	text, _ := buf.Slice(idStart, buf.Pos())
	return token.Token{
		Kind: kind,
		Text: string(text),
		Span: token.Span{Filename: filename, Start: start, End: buf.Pos()},
	}, true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b >= 0x80
}

// --- PlainStringReader -----------------------------------------------

// PlainStringReader scans single-quoted and %q{}-style literals: no
// interpolation, only backslash-close, backslash-open and
// backslash-backslash escapes.
type PlainStringReader struct {
	pauseState
	delim    delimiter
	filename string
}

func NewPlainStringReader(open byte, filename string) *PlainStringReader {
	return &PlainStringReader{delim: newDelimiter(open), filename: filename}
}

func (r *PlainStringReader) Poll(buf bufferView, _ int) PollResult {
	start := buf.Pos()
	lo, _ := buf.AppendUnescaped(nil)
	sawEscape := false

	for {
		b, ok := buf.Current()
		if !ok {
			return PollResult{Kind: PollEOF, Tok: token.Token{Kind: token.EOF, Span: spanAt(r.filename, start, buf.Pos())}}
		}
		if r.delim.nests && b == r.delim.open {
			r.delim.depth++
			buf.SkipByte()
			appendRaw(buf, &sawEscape, b)
			continue
		}
		if b == r.delim.close {
			if r.delim.depth > 0 {
				r.delim.depth--
				buf.SkipByte()
				appendRaw(buf, &sawEscape, b)
				continue
			}
			break
		}
		if b == '\\' {
			buf.SkipByte()
			if n, ok := buf.Current(); ok && (n == r.delim.close || n == '\\' || n == r.delim.open) {
				buf.SkipByte()
				buf.AppendUnescaped([]byte{n})
				sawEscape = true
				continue
			}
			buf.AppendUnescaped([]byte{'\\'})
			sawEscape = true
			continue
		}
		buf.SkipByte()
		appendRaw(buf, &sawEscape, b)
	}

	hi := bufUnescapedHigh(buf)
	end := buf.Pos()
	if end > start {
		return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, end, sawEscape, lo, hi)}
	}
	buf.SkipByte() // consume closer
	return PollResult{Kind: PollStringEnd, Tok: token.Token{Kind: token.STRING_END, Span: spanAt(r.filename, end, buf.Pos())}}
}

func appendRaw(buf bufferView, sawEscape *bool, b byte) {
	buf.AppendUnescaped([]byte{b})
}

func bufUnescapedHigh(buf bufferView) int {
	_, hi := buf.AppendUnescaped(nil)
	return hi
}

func spanAt(filename string, start, end int) token.Span {
	return token.Span{Filename: filename, Start: start, End: end}
}

func contentToken(filename string, start, end int, _ bool, lo, hi int) token.Token {
	return token.Token{
		Kind: token.STRING_CONTENT,
		Span: spanAt(filename, start, end),
		Payload: stringContentPayload{unescapedLo: lo, unescapedHi: hi},
	}
}

// stringContentPayload lets the parser recover the unescaped bytes for a
// STRING_CONTENT token through buffer.UnescapedSlice(lo, hi), without
// forcing the reader to materialize a Go string eagerly.
type stringContentPayload struct {
	unescapedLo, unescapedHi int
}

// --- InterpolatedStringReader -----------------------------------------

// InterpolatedStringReader scans "...", %Q{}, %x{}, `...`, %r{}, and the
// %s{} dsym form: full escape catalogue plus #{}, #@x, #@@x, #$x.
type InterpolatedStringReader struct {
	pauseState
	delim    delimiter
	filename string
	isRegexp bool
}

func NewInterpolatedStringReader(open byte, filename string, isRegexp bool) *InterpolatedStringReader {
	return &InterpolatedStringReader{delim: newDelimiter(open), filename: filename, isRegexp: isRegexp}
}

func (r *InterpolatedStringReader) Poll(buf bufferView, curlyNest int) PollResult {
	if r.paused {
		// The lexer clears paused itself when it emits the matching
		// STRING_DEND (a '}' met while curlyNest+1 == r.pauseDepth);
		// Poll is not re-entered while paused.
		r.SetPaused(false)
	}

	start := buf.Pos()
	lo, _ := buf.AppendUnescaped(nil)

	for {
		b, ok := buf.Current()
		if !ok {
			return PollResult{Kind: PollEOF, Tok: token.Token{Kind: token.EOF, Span: spanAt(r.filename, start, buf.Pos())}}
		}

		if r.delim.nests && b == r.delim.open {
			r.delim.depth++
			buf.SkipByte()
			buf.AppendUnescaped([]byte{b})
			continue
		}
		if b == r.delim.close {
			if r.delim.depth > 0 {
				r.delim.depth--
				buf.SkipByte()
				buf.AppendUnescaped([]byte{b})
				continue
			}
			break
		}

		if b == '#' {
			markerPos := buf.Pos()
			if kind, found := scanInterpolationMarker(buf); found {
				hi := bufUnescapedHigh(buf)
				if kind == '{' {
					if markerPos > start {
						buf.SetPos(markerPos)
						return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, markerPos, true, lo, hi)}
					}
					r.beginPause(curlyNest + 1)
					return PollResult{Kind: PollInterpolation, Tok: token.Token{
						Kind: token.STRING_DBEG,
						Span: spanAt(r.filename, markerPos, buf.Pos()),
					}}
				}
				varTok, ok := scanBareVarAfterSigil(buf, r.filename)
				if ok {
					if markerPos > start {
						buf.SetPos(markerPos)
						return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, markerPos, true, lo, hi)}
					}
					return PollResult{
						Kind: PollInterpolationVar,
						Tok: token.Token{Kind: token.STRING_DVAR, Span: spanAt(r.filename, markerPos, markerPos+1)},
						ExtraTok: varTok,
					}
				}
				buf.SetPos(markerPos)
			}
		}

		if b == '\\' {
			buf.SkipByte()
			decoded, _, ok := decodeEscape(buf)
			if ok {
				buf.AppendUnescaped(decoded)
				continue
			}
			buf.AppendUnescaped([]byte{'\\'})
			continue
		}

		buf.SkipByte()
		buf.AppendUnescaped([]byte{b})
	}

	hi := bufUnescapedHigh(buf)
	end := buf.Pos()
	if end > start {
		return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, end, true, lo, hi)}
	}
	buf.SkipByte()
	return PollResult{Kind: PollStringEnd, Tok: endToken(r, start, buf, token.Token{})}
}

func endToken(r *InterpolatedStringReader, start int, buf bufferView, content token.Token) token.Token {
	if r.isRegexp {
		return regexpEndToken(r.filename, buf)
	}
	return token.Token{Kind: token.STRING_END, Span: spanAt(r.filename, start, buf.Pos())}
}

func regexpEndToken(filename string, buf bufferView) token.Token {
	start := buf.Pos()
	opts := map[byte]bool{}
	for {
		b, ok := buf.Current()
		if !ok || !isRegexpOptByte(b) {
			break
		}
		opts[b] = true
		buf.SkipByte()
	}
	text := sortedOptString(opts)
	return token.Token{Kind: token.STRING_END, Text: text, Span: spanAt(filename, start, buf.Pos())}
}

func isRegexpOptByte(b byte) bool {
	switch b {
	case 'o', 'n', 'e', 's', 'u', 'i', 'x', 'm':
		return true
	}
	return false
}

func sortedOptString(opts map[byte]bool) string {
	const order = "eimnosux"
	out := make([]byte, 0, len(opts))
	for i := 0; i < len(order); i++ {
		if opts[order[i]] {
			out = append(out, order[i])
		}
	}
	return string(out)
}

// --- SymbolReader -------------------------------------------------------

// SymbolReader scans a dynamic symbol literal (%s{...}); identical body
// rules to an interpolated string, closing with STRING_END like one. The
// SYMBEG opener is what marks the literal as a symbol.
type SymbolReader struct {
	*InterpolatedStringReader
}

func NewSymbolReader(open byte, filename string) *SymbolReader {
	return &SymbolReader{InterpolatedStringReader: NewInterpolatedStringReader(open, filename, false)}
}

// --- WordArrayReader / SymbolArrayReader --------------------------------

// WordArrayReader scans %w{...} / %W{...}: whitespace-separated runs,
// each becoming its own STRING_CONTENT token; escapes are decoded only
// in the %W (interpolating) form, and "#{...}" is not recognised in
// either form: it stays part of the word.
type WordArrayReader struct {
	pauseState
	delim         delimiter
	filename      string
	interpolate   bool
	emittedAnyRun bool
}

func NewWordArrayReader(open byte, filename string, interpolate bool) *WordArrayReader {
	return &WordArrayReader{delim: newDelimiter(open), filename: filename, interpolate: interpolate}
}

func (r *WordArrayReader) Poll(buf bufferView, curlyNest int) PollResult {
	// Skip leading whitespace between words.
	for {
		b, ok := buf.Current()
		if !ok {
			return PollResult{Kind: PollEOF, Tok: token.Token{Kind: token.EOF}}
		}
		if r.delim.close == b && r.delim.depth == 0 {
			buf.SkipByte()
			return PollResult{Kind: PollStringEnd, Tok: token.Token{Kind: token.STRING_END, Span: spanAt(r.filename, buf.Pos()-1, buf.Pos())}}
		}
		if isSpaceByte(b) {
			buf.SkipByte()
			continue
		}
		break
	}

	start := buf.Pos()
	lo, _ := buf.AppendUnescaped(nil)
	for {
		b, ok := buf.Current()
		if !ok {
			break
		}
		if isSpaceByte(b) || (b == r.delim.close && r.delim.depth == 0) {
			break
		}
		if r.delim.nests && b == r.delim.open {
			r.delim.depth++
			buf.SkipByte()
			buf.AppendUnescaped([]byte{b})
			continue
		}
		if b == r.delim.close && r.delim.depth > 0 {
			r.delim.depth--
			buf.SkipByte()
			buf.AppendUnescaped([]byte{b})
			continue
		}
		if r.interpolate && b == '\\' {
			buf.SkipByte()
			decoded, _, ok := decodeEscape(buf)
			if ok {
				buf.AppendUnescaped(decoded)
				continue
			}
			buf.AppendUnescaped([]byte{'\\'})
			continue
		}
		buf.SkipByte()
		buf.AppendUnescaped([]byte{b})
	}
	hi := bufUnescapedHigh(buf)
	return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, buf.Pos(), true, lo, hi)}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// SymbolArrayReader scans %i{...} / %I{...}: identical to WordArrayReader,
// runs included (each is a STRING_CONTENT token); only the SYMBOLS_BEG
// opener marks them as symbols.
type SymbolArrayReader struct {
	*WordArrayReader
}

func NewSymbolArrayReader(open byte, filename string, interpolate bool) *SymbolArrayReader {
	return &SymbolArrayReader{WordArrayReader: NewWordArrayReader(open, filename, interpolate)}
}

// --- RegexpReader --------------------------------------------------------

// RegexpReader is an InterpolatedStringReader configured for /.../  and
// %r{...} bodies, distinguished only by the trailing option-letter scan
// performed when the literal closes.
type RegexpReader struct {
	*InterpolatedStringReader
}

func NewRegexpReader(open byte, filename string) *RegexpReader {
	return &RegexpReader{InterpolatedStringReader: NewInterpolatedStringReader(open, filename, true)}
}

// --- HeredocReader -------------------------------------------------------

// HeredocIndent selects whether a heredoc's terminator line may be
// indented. Body lines are returned as written in every mode; no dedent
// is applied, not even for the squiggly form.
type HeredocIndent int

const (
	HeredocIndentNone   HeredocIndent = iota // <<TAG
	HeredocIndentLeading                     // <<-TAG: terminator may be indented
	HeredocIndentSquiggly                     // <<~TAG: terminator may be indented; body kept as written
)

// HeredocReader defers content scanning: the opener only records the tag
// and mode, and the body is read starting at the next line, ending when a
// line consisting solely of the tag (allowing for the indent mode) is
// found.
type HeredocReader struct {
	pauseState
	Tag         string
	Interpolate bool
	Indent      HeredocIndent
	filename    string
	started     bool
}

func NewHeredocReader(tag string, interpolate bool, indent HeredocIndent, filename string) *HeredocReader {
	return &HeredocReader{Tag: tag, Interpolate: interpolate, Indent: indent, filename: filename}
}

func (r *HeredocReader) Poll(buf bufferView, curlyNest int) PollResult {
	start := buf.Pos()
	lo, _ := buf.AppendUnescaped(nil)

	for {
		lineStart := buf.Pos()
		if r.atTerminator(buf, lineStart) {
			hi := bufUnescapedHigh(buf)
			tok := contentToken(r.filename, start, lineStart, true, lo, hi)
			r.consumeTerminatorLine(buf)
			return PollResult{Kind: PollStringEnd, Tok: tok, ExtraTok: tokenAfterContent(r.filename, tok)}
		}

		for {
			b, ok := buf.Current()
			if !ok {
				return PollResult{Kind: PollEOF, Tok: token.Token{Kind: token.EOF, Span: spanAt(r.filename, start, buf.Pos())}}
			}
			if b == '\n' {
				buf.SkipByte()
				buf.AppendUnescaped([]byte{'\n'})
				break
			}
			if r.Interpolate && b == '#' {
				markerPos := buf.Pos()
				if kind, found := scanInterpolationMarker(buf); found {
					hi := bufUnescapedHigh(buf)
					if kind == '{' {
						if markerPos > start {
							buf.SetPos(markerPos)
							return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, markerPos, true, lo, hi)}
						}
						r.beginPause(curlyNest + 1)
						return PollResult{Kind: PollInterpolation, Tok: token.Token{Kind: token.STRING_DBEG, Span: spanAt(r.filename, markerPos, buf.Pos())}}
					}
					if varTok, ok := scanBareVarAfterSigil(buf, r.filename); ok {
						if markerPos > start {
							buf.SetPos(markerPos)
							return PollResult{Kind: PollEmitToken, Tok: contentToken(r.filename, start, markerPos, true, lo, hi)}
						}
						return PollResult{Kind: PollInterpolationVar,
							Tok:      token.Token{Kind: token.STRING_DVAR, Span: spanAt(r.filename, markerPos, markerPos+1)},
							ExtraTok: varTok,
						}
					}
					buf.SetPos(markerPos)
				}
			}
			if r.Interpolate && b == '\\' {
				buf.SkipByte()
				decoded, _, ok := decodeEscape(buf)
				if ok {
					buf.AppendUnescaped(decoded)
					continue
				}
				buf.AppendUnescaped([]byte{'\\'})
				continue
			}
			buf.SkipByte()
			buf.AppendUnescaped([]byte{b})
		}
	}
}

func tokenAfterContent(filename string, content token.Token) token.Token {
	return token.Token{Kind: token.STRING_END, Span: content.Span}
}

// atTerminator reports whether the line starting at lineStart is exactly
// the heredoc tag, allowing leading whitespace when Indent is not None.
func (r *HeredocReader) atTerminator(buf bufferView, lineStart int) bool {
	pos := lineStart
	if r.Indent != HeredocIndentNone {
		for {
			b, ok := buf.ByteAt(pos)
			if !ok || (b != ' ' && b != '\t') {
				break
			}
			pos++
		}
	}
	if !buf.Lookahead(pos, r.Tag) {
		return false
	}
	after := pos + len(r.Tag)
	b, ok := buf.ByteAt(after)
	return !ok || b == '\n' || b == '\r'
}

func (r *HeredocReader) consumeTerminatorLine(buf bufferView) {
	for {
		b, ok := buf.Current()
		if !ok || b == '\n' {
			if ok {
				buf.SkipByte()
			}
			return
		}
		buf.SkipByte()
	}
}

// --- CharReader ----------------------------------------------------------

// CharReader resolves a single ?x character literal (including its
// escape forms) in one shot; it is never pushed on the literal stack —
// scanQuestionMark polls it once directly.
type CharReader struct {
	pauseState
	filename string
}

func NewCharReader(filename string) *CharReader {
	return &CharReader{filename: filename}
}

func (r *CharReader) Poll(buf bufferView, _ int) PollResult {
	start := buf.Pos()
	b, ok := buf.Current()
	if !ok {
		return PollResult{Kind: PollEOF, Tok: token.Token{Kind: token.EOF}}
	}

	var decoded []byte
	if b == '\\' {
		buf.SkipByte()
		d, _, good := decodeEscape(buf)
		if !good {
			d = []byte{'\\'}
		}
		decoded = d
	} else {
		decoded = []byte{b}
		buf.SkipByte()
	}

	lo, hi := buf.AppendUnescaped(decoded)
	tok := token.Token{Kind: token.CHAR, Span: spanAt(r.filename, start, buf.Pos()),
		Payload: stringContentPayload{unescapedLo: lo, unescapedHi: hi}}
	return PollResult{Kind: PollStringEnd, Tok: tok}
}
