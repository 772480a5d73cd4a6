package lexer

// The methods below let *Lexer satisfy bufferView directly, so literal
// readers can be polled with the lexer itself rather than reaching past
// it into source.Buffer — keeping the nesting counters and buffer cursor
// consistent from a single owner.

func (l *Lexer) Pos() int                      { return l.buf.Pos() }
func (l *Lexer) SetPos(p int)                  { l.buf.SetPos(p) }
func (l *Lexer) Current() (byte, bool)         { return l.buf.Current() }
func (l *Lexer) ByteAt(i int) (byte, bool)     { return l.buf.ByteAt(i) }
func (l *Lexer) SkipByte()                     { l.buf.SkipByte() }
func (l *Lexer) Slice(lo, hi int) ([]byte, bool) { return l.buf.Slice(lo, hi) }
func (l *Lexer) Lookahead(at int, pattern string) bool { return l.buf.Lookahead(at, pattern) }
func (l *Lexer) AppendUnescaped(b []byte) (int, int)   { return l.buf.AppendUnescaped(b) }
func (l *Lexer) UnescapedSlice(lo, hi int) []byte      { return l.buf.UnescapedSlice(lo, hi) }
