package token

// Token is a single lexical unit: its Kind, the Span it occupies in the
// source buffer, and the literal Text it was scanned from. Payload carries
// kind-specific auxiliary data that the parser needs but that doesn't
// belong in Text (e.g. the base operator of an OP_ASGN token, or the
// unescaped-byte range of a STRING_CONTENT token).
type Token struct {
	Kind    Kind
	Span    Span
	Text    string
	Payload any
}

// OpAssignPayload is the Payload of an OP_ASGN token: Text carries the full
// spelling ("+=") while Base names the binary operator Kind it desugars to
// ("+= " -> PLUS) so the parser can build the expanded assignment without
// re-lexing the operator.
type OpAssignPayload struct {
	Base Kind
}

// String renders a token for trace and error output: "KIND(text)@span".
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String() + "@" + t.Span.String()
	}
	return t.Kind.String() + "(" + t.Text + ")@" + t.Span.String()
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsAny reports whether the token's kind matches any of ks.
func (t Token) IsAny(ks ...Kind) bool {
	for _, k := range ks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsEOF reports whether t is the sentinel end-of-input token.
func (t Token) IsEOF() bool { return t.Kind == EOF }
