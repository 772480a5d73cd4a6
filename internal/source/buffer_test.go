package source

import "testing"

func TestUTF8CharAt(t *testing.T) {
	buf := New("t.rb", []byte("a\xc3\xa9\xe4\xb8\xad\xf0\x9f\x98\x80\xff"))

	cases := []struct {
		pos  int
		want Char
	}{
		{0, Char{Class: CharValid, Len: 1}},  // 'a'
		{1, Char{Class: CharValid, Len: 2}},  // 'é'
		{3, Char{Class: CharValid, Len: 3}},  // 中
		{6, Char{Class: CharValid, Len: 4}},  // emoji
		{10, Char{Class: CharInvalid}},       // 0xff lead byte
		{11, Char{Class: CharEOF}},
	}
	for _, c := range cases {
		got := buf.UTF8CharAt(c.pos)
		if got != c.want {
			t.Errorf("UTF8CharAt(%d) = %+v, want %+v", c.pos, got, c.want)
		}
	}
}

func TestLookahead(t *testing.T) {
	buf := New("t.rb", []byte("<<~HEREDOC\n"))
	if !buf.Lookahead(0, "<<~") {
		t.Fatal("expected lookahead match at 0")
	}
	if buf.Lookahead(1, "<<~") {
		t.Fatal("unexpected lookahead match at 1")
	}
	if buf.Lookahead(0, "<<~HEREDOC_TOO_LONG") {
		t.Fatal("lookahead matched past end of buffer")
	}
}

func TestUnescapedSideBuffer(t *testing.T) {
	buf := New("t.rb", []byte(`"é"`))
	lo, hi := buf.AppendUnescaped([]byte("é"))
	if got := string(buf.UnescapedSlice(lo, hi)); got != "é" {
		t.Fatalf("UnescapedSlice = %q, want %q", got, "é")
	}
	if buf.UnescapedLen() != hi {
		t.Fatalf("UnescapedLen = %d, want %d", buf.UnescapedLen(), hi)
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	buf := New("t.rb", []byte("abc"))
	if _, ok := buf.Slice(0, 10); ok {
		t.Fatal("expected Slice out of bounds to fail")
	}
	if _, ok := buf.Slice(2, 1); ok {
		t.Fatal("expected Slice with lo > hi to fail")
	}
}

func TestSetPosAndSkipByte(t *testing.T) {
	buf := New("t.rb", []byte("xyz"))
	b, ok := buf.Current()
	if !ok || b != 'x' {
		t.Fatalf("Current = %q, %v", b, ok)
	}
	buf.SkipByte()
	b, ok = buf.Current()
	if !ok || b != 'y' {
		t.Fatalf("Current = %q, %v", b, ok)
	}
	buf.SetPos(0)
	b, ok = buf.Current()
	if !ok || b != 'x' {
		t.Fatalf("Current after SetPos = %q, %v", b, ok)
	}
}
