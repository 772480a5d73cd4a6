package lexer

import "github.com/scriptlex/rbparse/internal/token"

// PollResult is the outcome of polling the active literal reader. Exactly
// one of the typed fields is meaningful, selected by Kind.
type PollResult struct {
	Kind PollKind
	Tok  token.Token
	// ExtraTok carries the second token of a compound result: the
	// tIVAR/tCVAR/tGVAR after a PollInterpolationVar's tSTRING_DVAR, or
	// the STRING_END a heredoc's PollStringEnd returns after its content.
	ExtraTok token.Token
}

// PollKind discriminates the variants a LiteralReader.Poll can return.
type PollKind int

const (
	// PollEmitToken: reader produced ordinary content, typically
	// STRING_CONTENT; the reader remains active.
	PollEmitToken PollKind = iota
	// PollStringEnd: the closing delimiter matched; the reader should be
	// popped from the stack.
	PollStringEnd
	// PollInterpolation: "#{" was found; the reader marks itself paused
	// and yields control to the ordinary dispatch loop until a matching
	// STRING_DEND closes the embedded expression.
	PollInterpolation
	// PollInterpolationVar: a raw "#@x" / "#@@x" / "#$x" was found; Tok is
	// STRING_DVAR and ExtraTok is the IVAR/CVAR/GVAR token.
	PollInterpolationVar
	// PollEOF: the literal was never closed; surfaces as EOF so the
	// parser can report a structured "unterminated literal" error.
	PollEOF
)

// LiteralReader is implemented by every specialised string/heredoc/regex
// scanner pushed onto the Lexer's literal stack. Readers are data-only:
// no closures, so a Checkpoint can restore the stack by truncation alone,
// without needing to re-run constructor logic.
type LiteralReader interface {
	// Poll is called by the lexer's main dispatch loop whenever this
	// reader is the top of the stack and not currently paused for an
	// interpolated expression. curlyNest is the parser's current brace
	// nesting depth, needed to recognise the matching STRING_DEND.
	Poll(buf bufferView, curlyNest int) PollResult

	// Paused reports whether this reader has yielded control to the main
	// dispatch loop to lex an interpolated expression.
	Paused() bool
	// SetPaused toggles the paused flag; cleared when STRING_DEND closes
	// the embedded expression at the recorded curly depth.
	SetPaused(bool)
	// PauseCurlyDepth is the curlyNest recorded when interpolation began,
	// used to recognise the matching close brace.
	PauseCurlyDepth() int
}

// bufferView is the minimal surface LiteralReader implementations need
// from source.Buffer, kept narrow so readers stay data-only and testable
// without constructing a full Lexer.
type bufferView interface {
	Pos() int
	SetPos(int)
	Current() (byte, bool)
	ByteAt(int) (byte, bool)
	SkipByte()
	Slice(lo, hi int) ([]byte, bool)
	Lookahead(at int, pattern string) bool
	AppendUnescaped([]byte) (lo, hi int)
	UnescapedSlice(lo, hi int) []byte
}

// LiteralStack is the lexer's stack of active literal readers. It
// supports truncation so Checkpoint can restore it without undoing
// individual push/pop operations.
type LiteralStack struct {
	readers []LiteralReader
}

// Push adds r to the top of the stack.
func (s *LiteralStack) Push(r LiteralReader) { s.readers = append(s.readers, r) }

// Pop removes and returns the top reader, or nil if the stack is empty.
func (s *LiteralStack) Pop() LiteralReader {
	n := len(s.readers)
	if n == 0 {
		return nil
	}
	r := s.readers[n-1]
	s.readers = s.readers[:n-1]
	return r
}

// Top returns the top reader without removing it, or nil if empty.
func (s *LiteralStack) Top() LiteralReader {
	n := len(s.readers)
	if n == 0 {
		return nil
	}
	return s.readers[n-1]
}

// Len reports the stack depth, captured by a Checkpoint.
func (s *LiteralStack) Len() int { return len(s.readers) }

// Truncate restores the stack to depth n, discarding everything above
// it. This is how Checkpoint restore undoes pushes without individually
// reversing each reader's internal state.
func (s *LiteralStack) Truncate(n int) {
	if n < len(s.readers) {
		s.readers = s.readers[:n]
	}
}

// Empty reports whether no literal reader is active.
func (s *LiteralStack) Empty() bool { return len(s.readers) == 0 }
