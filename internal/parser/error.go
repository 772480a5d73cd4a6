package parser

import (
	"fmt"
	"strings"

	"github.com/scriptlex/rbparse/internal/token"
)

// ErrorKind discriminates the three leaf/combinator shapes a ParseError
// can take.
type ErrorKind int

const (
	// TokenMismatch: a single required token didn't match.
	TokenMismatch ErrorKind = iota
	// OneOfErr: every alternative of a OneOf failed.
	OneOfErr
	// SeqErr: one element of an AllOf/SeparatedBy sequence failed.
	SeqErr
)

// ParseError is the unified error shape produced by every combinator and
// hand-written parse function. Lookahead marks an error that arose while
// a rule was only checking StartsNow-style applicability (the inverse of
// "Required" in spec.md's terms) — OneOf uses this to decide whether a
// failed branch may be silently abandoned in favor of the next
// alternative, or must be surfaced as the real failure.
type ParseError struct {
	Kind ErrorKind
	Span token.Span

	// TokenMismatch payload.
	Expected string
	Actual   token.Token

	// OneOfErr payload: the error from every alternative that was tried.
	Alternatives []*ParseError

	// SeqErr payload: which element index failed and why.
	SeqLabel string
	Index    int
	Cause    *ParseError

	Lookahead bool
}

// NewTokenError builds a leaf TokenMismatch error.
func NewTokenError(expected string, actual token.Token, lookahead bool) *ParseError {
	return &ParseError{
		Kind: TokenMismatch, Span: actual.Span,
		Expected: expected, Actual: actual, Lookahead: lookahead,
	}
}

// NewOneOfError wraps every failed alternative. The combined error is a
// lookahead failure only if all alternatives were.
func NewOneOfError(span token.Span, alts []*ParseError) *ParseError {
	all := true
	for _, a := range alts {
		if a != nil && !a.Lookahead {
			all = false
			break
		}
	}
	return &ParseError{Kind: OneOfErr, Span: span, Alternatives: alts, Lookahead: all}
}

// NewSeqError wraps the element that failed inside an AllOf/SeparatedBy.
// The first step (index 0) hasn't committed the sequence to anything yet,
// so its error is passed through verbatim — it may still be a lookahead
// failure an enclosing OneOf can recover from. Every later step has only
// been reached because the steps before it already matched, so its
// failure is promoted to required regardless of what the step itself
// reported: backing out silently past that point would hide a real
// syntax error.
func NewSeqError(label string, index int, cause *ParseError) *ParseError {
	span := token.Span{}
	lookahead := false
	if cause != nil {
		span = cause.Span
		lookahead = index == 0 && cause.Lookahead
	}
	return &ParseError{Kind: SeqErr, Span: span, SeqLabel: label, Index: index, Cause: cause, Lookahead: lookahead}
}

// Severity classifies a non-fatal diagnostic (warning vs. informational),
// a much smaller split than the fatal ParseError taxonomy needs.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Warning is a non-fatal diagnostic collected during a parse that does
// not abort recognition, such as a duplicate hash-literal key.
type Warning struct {
	Severity Severity
	Message  string
	Span     token.Span
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Span, w.Severity, w.Message)
}

// IsLookahead reports whether this error arose purely from a failed
// StartsNow-style check, meaning the caller may try another alternative
// without this ever being the "real" error.
func (e *ParseError) IsLookahead() bool { return e != nil && e.Lookahead }

// StripLookaheads removes alternatives that were pure lookahead failures
// from a OneOfErr, keeping only the branches that got far enough to be
// informative — grounded on original_source's one_of.rs `compact()`
// weight-based pruning.
func (e *ParseError) StripLookaheads() *ParseError {
	if e == nil || e.Kind != OneOfErr {
		return e
	}
	kept := make([]*ParseError, 0, len(e.Alternatives))
	for _, a := range e.Alternatives {
		if a != nil && !a.Lookahead {
			kept = append(kept, a.StripLookaheads())
		}
	}
	if len(kept) == 0 {
		kept = e.Alternatives
	}
	return &ParseError{Kind: OneOfErr, Span: e.Span, Alternatives: kept, Lookahead: e.Lookahead}
}

// Weight scores an error for "which failure is most informative":
// deeper (more consumed input / more nested) errors outweigh shallow
// lookahead failures. Used to pick the best branch to report when a
// OneOf ultimately fails entirely.
func (e *ParseError) Weight() int {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case TokenMismatch:
		if e.Lookahead {
			return 1
		}
		return 2
	case SeqErr:
		return 3 + e.Cause.Weight()
	case OneOfErr:
		best := 0
		for _, a := range e.Alternatives {
			if w := a.Weight(); w > best {
				best = w
			}
		}
		return best
	}
	return 0
}

// Error implements the error interface with a human-readable rendering;
// Trace produces the fuller indented form.
func (e *ParseError) Error() string {
	if e == nil {
		return "<nil parse error>"
	}
	switch e.Kind {
	case TokenMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", e.Span, e.Expected, e.Actual.Kind)
	case OneOfErr:
		best := e.bestAlternative()
		if best != nil {
			return best.Error()
		}
		return fmt.Sprintf("%s: no alternative matched", e.Span)
	case SeqErr:
		msg := e.SeqLabel
		if msg == "" {
			msg = "sequence"
		}
		return fmt.Sprintf("%s: %s failed at element %d: %s", e.Span, msg, e.Index, e.Cause.Error())
	}
	return "parse error"
}

func (e *ParseError) bestAlternative() *ParseError {
	var best *ParseError
	bestWeight := -1
	for _, a := range e.Alternatives {
		if w := a.Weight(); w > bestWeight {
			bestWeight = w
			best = a
		}
	}
	return best
}

// Trace renders the full nested error tree with indentation; internal/diag
// wraps this for CLI output.
func (e *ParseError) Trace() string {
	var b strings.Builder
	e.writeTrace(&b, 0)
	return b.String()
}

func (e *ParseError) writeTrace(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if e == nil {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}
	switch e.Kind {
	case TokenMismatch:
		fmt.Fprintf(b, "%sexpected %s, got %s at %s\n", indent, e.Expected, e.Actual.Kind, e.Span)
	case OneOfErr:
		fmt.Fprintf(b, "%sall alternatives failed at %s:\n", indent, e.Span)
		for _, a := range e.Alternatives {
			a.writeTrace(b, depth+1)
		}
	case SeqErr:
		fmt.Fprintf(b, "%s%s: element %d failed:\n", indent, e.SeqLabel, e.Index)
		e.Cause.writeTrace(b, depth+1)
	}
}
