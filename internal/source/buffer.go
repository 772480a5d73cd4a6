// Package source holds the byte buffer the lexer scans: the raw input, a
// cursor into it, and the append-only side-buffer used to materialize
// unescaped string content that differs from the source bytes.
package source

// CharClass describes the result of classifying the UTF-8 sequence
// starting at a given buffer position.
type CharClass int

const (
	// CharInvalid means the lead byte (or one of its continuations) does
	// not form a valid UTF-8 sequence.
	CharInvalid CharClass = iota
	// CharEOF means the position is at or past the end of the buffer.
	CharEOF
	// CharValid means a full, valid UTF-8 sequence starts here.
	CharValid
)

// Char is the result of Buffer.UTF8CharAt: a classification plus, when
// CharValid, the byte length of the sequence.
type Char struct {
	Class CharClass
	Len   int
}

// Buffer is the lexer's view of the source: a flat byte slice plus a
// cursor, and a side-buffer that accumulates unescaped string content
// (content that must differ from the source bytes, e.g. after resolving
// a \uXXXX escape) so literal readers can hand the parser clean spans
// without mutating the original input.
//
// Buffer is deliberately byte-oriented rather than rune-oriented: token
// spans are byte offsets, and the lexer must be able to classify and skip
// invalid UTF-8 locally without the buffer itself failing.
type Buffer struct {
	Filename string

	data []byte
	pos  int

	unescaped []byte
}

// New constructs a Buffer over data. data is not copied; callers must not
// mutate it after construction.
func New(filename string, data []byte) *Buffer {
	return &Buffer{Filename: filename, data: data}
}

// Len returns the total number of bytes in the source.
func (b *Buffer) Len() int { return len(b.data) }

// Pos returns the current cursor position.
func (b *Buffer) Pos() int { return b.pos }

// SetPos moves the cursor to an absolute byte offset. Callers are
// responsible for only ever moving to offsets previously observed via
// Pos (typically through a Checkpoint), never to an arbitrary value.
func (b *Buffer) SetPos(pos int) { b.pos = pos }

// ByteAt returns the byte at i and true, or (0, false) when i is out of
// range.
func (b *Buffer) ByteAt(i int) (byte, bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// Current returns the byte at the cursor, or (0, false) at EOF.
func (b *Buffer) Current() (byte, bool) { return b.ByteAt(b.pos) }

// SkipByte advances the cursor by one byte. It is a no-op at EOF.
func (b *Buffer) SkipByte() {
	if b.pos < len(b.data) {
		b.pos++
	}
}

// Slice returns data[lo:hi] and true, or (nil, false) when the range is
// out of bounds.
func (b *Buffer) Slice(lo, hi int) ([]byte, bool) {
	if lo < 0 || hi > len(b.data) || lo > hi {
		return nil, false
	}
	return b.data[lo:hi], true
}

// Lookahead reports whether pattern occurs in the source starting at at.
func (b *Buffer) Lookahead(at int, pattern string) bool {
	end := at + len(pattern)
	if at < 0 || end > len(b.data) {
		return false
	}
	return string(b.data[at:end]) == pattern
}

// UTF8CharAt classifies the UTF-8 sequence starting at i: its expected
// continuation length is derived from the lead byte, and the span is
// validated to actually decode. Invalid and partial sequences are
// reported, never treated as a fatal condition — callers (the lexer)
// decide locally whether to skip a byte or emit a diagnostic.
func (b *Buffer) UTF8CharAt(i int) Char {
	lead, ok := b.ByteAt(i)
	if !ok {
		return Char{Class: CharEOF}
	}

	var want int
	switch {
	case lead < 0x80:
		return Char{Class: CharValid, Len: 1}
	case lead&0xE0 == 0xC0:
		want = 2
	case lead&0xF0 == 0xE0:
		want = 3
	case lead&0xF8 == 0xF0:
		want = 4
	default:
		return Char{Class: CharInvalid}
	}

	if i+want > len(b.data) {
		return Char{Class: CharInvalid}
	}
	for j := 1; j < want; j++ {
		if b.data[i+j]&0xC0 != 0x80 {
			return Char{Class: CharInvalid}
		}
	}
	return Char{Class: CharValid, Len: want}
}

// AppendUnescaped appends bytes to the side-buffer and returns the
// [lo, hi) range they now occupy within it.
func (b *Buffer) AppendUnescaped(bytes []byte) (lo, hi int) {
	lo = len(b.unescaped)
	b.unescaped = append(b.unescaped, bytes...)
	hi = len(b.unescaped)
	return lo, hi
}

// UnescapedSlice returns a slice of the side-buffer previously produced
// by AppendUnescaped.
func (b *Buffer) UnescapedSlice(lo, hi int) []byte {
	return b.unescaped[lo:hi]
}

// UnescapedLen reports the current size of the side-buffer, for
// Checkpoint bookkeeping (truncating it back on restore is not required
// since the side-buffer is append-only and never re-read past a stale
// high-water mark, but callers that want byte-identical replay may use
// this to detect growth).
func (b *Buffer) UnescapedLen() int { return len(b.unescaped) }
