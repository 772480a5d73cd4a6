package parser

import "github.com/scriptlex/rbparse/internal/lexer"

// ParserCheckpoint merges the lexer's own Checkpoint (buffer cursor,
// literal-stack depth, token index, bracket nesting) with the one piece
// of state the lexer can't see: the parser's current newExprRequired
// flag. A speculative branch captures one before trying a rule and
// restores it if the rule fails, per spec.md's "checkpoint before a
// speculative branch, drop it if the branch commits" contract.
type ParserCheckpoint struct {
	lex             lexer.Checkpoint
	newExprRequired bool
}

// Mark captures the parser's current position.
func (p *Parser) Mark() ParserCheckpoint {
	return ParserCheckpoint{lex: p.lex.Mark(), newExprRequired: p.newExprRequired}
}

// ResetTo rewinds the parser (and its lexer) to a previously captured
// checkpoint.
func (p *Parser) ResetTo(cp ParserCheckpoint) {
	p.lex.ResetTo(cp.lex)
	p.newExprRequired = cp.newExprRequired
	p.lex.SetNewExprRequired(cp.newExprRequired)
}
