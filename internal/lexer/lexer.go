// Package lexer implements the context-sensitive scanner: classical
// per-byte token dispatch interleaved with a stack of literal readers for
// strings, heredocs, regexps, and word/symbol arrays.
package lexer

import (
	"github.com/scriptlex/rbparse/internal/source"
	"github.com/scriptlex/rbparse/internal/token"
)

// Lexer scans a source.Buffer into a token stream. It exposes a small,
// checkpoint-friendly surface (CurrentToken/TakeToken/SkipToken) backed by
// an append-only token log so a Checkpoint can rewind token_idx without
// re-lexing already-seen input.
type Lexer struct {
	buf      *source.Buffer
	filename string

	preserveComments bool
	tracing          bool

	literals LiteralStack

	tokens  []token.Token
	tokenIdx int

	// pending holds tokens already produced but not yet appended to the
	// log: the second token of a compound reader result (the var after
	// tSTRING_DVAR, the STRING_END after heredoc content) and, when
	// comments are preserved, the COMMENT tokens trivia skipping finds.
	pending []token.Token

	cachedCurrent *token.Token

	sawWhitespace bool
	sawNewline    bool

	curlyNest int
	parenNest int
	brackNest int

	// newExprRequired mirrors the parser's "command start" notion. The
	// lexer never changes it on its own: it starts true and is set only
	// through SetNewExprRequired (the parser's take() clears it and its
	// requireExpr() arms it, e.g. after '(', ',' or an operator). It gates
	// heredoc-opener recognition for "<<" and the unary/splat readings of
	// operator bytes.
	newExprRequired bool

	lineStart bool

	done bool

	// pendingHeredocs holds heredoc readers opened mid-line, in open
	// order; they activate only once the line's closing NL is reached,
	// since the rest of the line's tokens must lex normally first.
	pendingHeredocs []*HeredocReader
}

// New constructs a Lexer over buf.
func New(buf *source.Buffer, opts ...Option) *Lexer {
	l := &Lexer{buf: buf, filename: buf.Filename, newExprRequired: true, lineStart: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SawWhitespace reports whether whitespace was consumed immediately
// before the current token, used by the parser to distinguish
// `ident[x]` (indexing) from `ident [x]` (array literal argument).
func (l *Lexer) SawWhitespace() bool { return l.sawWhitespace }

// SawNewline always reports false: lexNext resets the flag and nothing
// sets it, since every newline is emitted as an NL token instead.
func (l *Lexer) SawNewline() bool { return l.sawNewline }

// SetNewExprRequired lets the parser signal that the next token begins a
// new expression context, the one piece of lexer state the grammar
// controls from the outside (it gates heredoc-opener recognition and
// unary-vs-binary operator disambiguation).
func (l *Lexer) SetNewExprRequired(v bool) { l.newExprRequired = v }

// CurlyNest, ParenNest, BrackNest report the current nesting depth of the
// respective bracket family, maintained as the parser calls EnterX/ExitX
// below. Literal readers consult CurlyNest to recognise the matching
// tSTRING_DEND of a paused interpolation.
func (l *Lexer) CurlyNest() int { return l.curlyNest }
func (l *Lexer) ParenNest() int { return l.parenNest }
func (l *Lexer) BrackNest() int { return l.brackNest }

func (l *Lexer) EnterCurly() { l.curlyNest++ }
func (l *Lexer) ExitCurly()  { if l.curlyNest > 0 { l.curlyNest-- } }
func (l *Lexer) EnterParen() { l.parenNest++ }
func (l *Lexer) ExitParen()  { if l.parenNest > 0 { l.parenNest-- } }
func (l *Lexer) EnterBrack() { l.brackNest++ }
func (l *Lexer) ExitBrack()  { if l.brackNest > 0 { l.brackNest-- } }

// PushLiteral pushes a reader onto the active literal stack. Exported so
// the punctuation scanner (which recognises literal openers like `"`,
// `%w{`, `<<~TAG`) can hand control to the string subsystem.
func (l *Lexer) PushLiteral(r LiteralReader) { l.literals.Push(r) }

// CurrentToken returns the token at the cursor, lexing it on first
// access and caching the result; whitespace and comments are skipped
// transparently, while every newline is returned as an NL token.
func (l *Lexer) CurrentToken() token.Token {
	if l.cachedCurrent != nil {
		return *l.cachedCurrent
	}
	if l.tokenIdx < len(l.tokens) {
		t := l.tokens[l.tokenIdx]
		l.cachedCurrent = &t
		return t
	}

	var t token.Token
	if len(l.pending) > 0 {
		t = l.pending[0]
		l.pending = l.pending[1:]
	} else {
		t = l.lexNext()
	}
	l.tokens = append(l.tokens, t)
	l.cachedCurrent = &t
	return t
}

// TakeToken returns CurrentToken and advances the cursor past it.
func (l *Lexer) TakeToken() token.Token {
	t := l.CurrentToken()
	l.tokenIdx++
	l.cachedCurrent = nil
	return t
}

// SkipToken advances the cursor without returning the token, for call
// sites that already know what kind it is.
func (l *Lexer) SkipToken() { l.TakeToken() }

// TokenAt returns the token previously logged at the given index,
// supporting the parser's diagnostic rendering of already-consumed
// tokens. It panics if idx is out of the logged range.
func (l *Lexer) TokenAt(idx int) token.Token { return l.tokens[idx] }

// TokenIndex reports the cursor's current position in the token log,
// captured by Checkpoint.
func (l *Lexer) TokenIndex() int { return l.tokenIdx }

// lexNext performs the actual scan of one token, skipping trivia first.
func (l *Lexer) lexNext() token.Token {
	l.sawWhitespace = false
	l.sawNewline = false

	if r := l.literals.Top(); r != nil && !r.Paused() {
		return l.pollLiteral(r)
	}

	for {
		if !l.skipTriviaOnce() {
			break
		}
	}

	b, ok := l.buf.Current()
	if !ok {
		return l.emit(token.EOF, l.buf.Pos(), l.buf.Pos())
	}

	if l.lineStart && l.buf.Lookahead(l.buf.Pos(), "__END__") {
		after := l.buf.Pos() + len("__END__")
		ab, aok := l.buf.ByteAt(after)
		if !aok || ab == '\n' || ab == '\r' {
			l.done = true
			l.buf.SetPos(l.buf.Len())
			return l.emit(token.EOF, l.buf.Pos(), l.buf.Pos())
		}
	}

	var tok token.Token
	switch {
	case isDigit(b):
		tok = l.scanNumber()
	case b == '$':
		tok = l.scanGlobalVar()
	case b == '@':
		tok = l.scanInstanceOrClassVar()
	case b == '?':
		tok = l.scanQuestionMark()
	case b == '%':
		tok = l.scanPercentLiteral()
	case b == '"':
		tok = l.scanStringOpener('"', true, false)
	case b == '\'':
		tok = l.scanStringOpener('\'', false, false)
	case b == '`':
		tok = l.scanStringOpener('`', true, true)
	case isIdentStartByte(b):
		tok = l.scanIdentifier()
	default:
		tok = l.scanPunctuation()
	}

	l.lineStart = tok.Kind == token.NL
	if tok.Kind == token.NL && len(l.pendingHeredocs) > 0 {
		for _, r := range l.pendingHeredocs {
			l.literals.Push(r)
		}
		l.pendingHeredocs = nil
	}
	return tok
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func (l *Lexer) emit(kind token.Kind, start, end int) token.Token {
	text, _ := l.buf.Slice(start, end)
	return token.Token{Kind: kind, Text: string(text), Span: token.Span{Filename: l.filename, Start: start, End: end}}
}

func (l *Lexer) pollLiteral(r LiteralReader) token.Token {
	result := r.Poll(l, l.curlyNest)
	switch result.Kind {
	case PollStringEnd:
		l.literals.Pop()
		if result.ExtraTok.Kind != token.ILLEGAL {
			l.pending = append(l.pending, result.ExtraTok)
		}
		return result.Tok
	case PollInterpolation:
		return result.Tok
	case PollInterpolationVar:
		// The var token is queued so the next CurrentToken call returns
		// it before resuming the paused reader.
		l.pending = append(l.pending, result.ExtraTok)
		return result.Tok
	case PollEOF:
		l.literals.Pop()
		return result.Tok
	default: // PollEmitToken
		return result.Tok
	}
}
