// Package ast defines the span-annotated syntax tree produced by the
// parser: one struct per node shape, each embedding BaseNode for its
// overall span and carrying whatever additional named sub-spans
// (keyword, operator, name, begin/end delimiters, ...) its grammar rule
// needs to report precisely.
package ast

import "github.com/scriptlex/rbparse/internal/token"

// Node is implemented by every AST node. Span returns the node's overall
// extent; children that contribute to it are unioned in by the builder
// that constructed the node, never computed lazily by walking.
type Node interface {
	Span() token.Span
	astNode()
}

// BaseNode carries the node's overall span. Every concrete node type
// embeds it; nodes whose grammar rule needs more than one significant
// sub-span add explicit extra token.Span fields alongside it.
type BaseNode struct {
	Sp token.Span
}

func (b BaseNode) Span() token.Span { return b.Sp }
func (BaseNode) astNode()           {}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	BaseNode
	Statements []Node
}

// Statements groups a bare sequence of statements that doesn't itself
// carry delimiting keywords (a method/block body, a begin-less group).
type Statements struct {
	BaseNode
	Body []Node
}
