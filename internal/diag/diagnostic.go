// Package diag renders parser diagnostics and AST dumps for CLI output.
package diag

import (
	"fmt"

	"github.com/scriptlex/rbparse/internal/parser"
	"github.com/scriptlex/rbparse/internal/token"
)

// Diagnostic is one reportable parse failure: its source position and a
// human-readable message, plus the full nested alternative trace for
// verbose output.
type Diagnostic struct {
	Span    token.Span
	Message string
	Trace   string
}

// FromParseError flattens a *parser.ParseError into a Diagnostic,
// picking the most informative surviving alternative the way
// ParseError.Error already does, but keeping the span alongside the
// rendered message for callers that want to print "file:line:col: msg".
func FromParseError(err *parser.ParseError) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}
	stripped := err.StripLookaheads()
	return Diagnostic{
		Span:    err.Span,
		Message: stripped.Error(),
		Trace:   stripped.Trace(),
	}
}

// String renders a diagnostic as "filename:line:column: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span.String(), d.Message)
}
