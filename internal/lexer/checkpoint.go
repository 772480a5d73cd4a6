package lexer

import "github.com/scriptlex/rbparse/internal/token"

// Checkpoint captures everything needed to rewind the lexer to an
// earlier point: the buffer cursor, the literal-reader stack depth, the
// token-log index and length, the queued pending tokens, and the three
// nesting counters the parser maintains
// through the lexer (curly/paren/brack). It is deliberately as heavyweight
// as a full state snapshot — lighter-weight index-only backtracking
// cannot roll back an in-progress literal reader or nesting counter, both
// of which a speculative parse branch may have touched.
type Checkpoint struct {
	bufferPos    int
	literalsSize int
	tokenIndex   int
	tokenLen     int
	pending      []token.Token
	curlyNest    int
	parenNest    int
	brackNest    int
}

// Mark captures the lexer's current state into a Checkpoint.
func (l *Lexer) Mark() Checkpoint {
	return Checkpoint{
		bufferPos:    l.buf.Pos(),
		literalsSize: l.literals.Len(),
		tokenIndex:   l.tokenIdx,
		tokenLen:     len(l.tokens),
		pending:      l.pending,
		curlyNest:    l.curlyNest,
		parenNest:    l.parenNest,
		brackNest:    l.brackNest,
	}
}

// ResetTo restores the lexer to a previously captured Checkpoint. Tokens
// logged after the checkpoint are dropped and the cached current token is
// cleared, so the next CurrentToken call re-reads the tokens logged before
// the checkpoint and re-lexes everything after them from the restored
// buffer cursor.
func (l *Lexer) ResetTo(cp Checkpoint) {
	l.buf.SetPos(cp.bufferPos)
	l.literals.Truncate(cp.literalsSize)
	l.tokens = l.tokens[:cp.tokenLen]
	l.pending = cp.pending
	l.tokenIdx = cp.tokenIndex
	l.curlyNest = cp.curlyNest
	l.parenNest = cp.parenNest
	l.brackNest = cp.brackNest
	l.cachedCurrent = nil
}
