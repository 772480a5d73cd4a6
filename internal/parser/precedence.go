package parser

import "github.com/scriptlex/rbparse/internal/token"

// bindingPower is a (left, right) pair encoding an operator's precedence
// and associativity in the standard Pratt-parser doubling scheme: a
// left-associative operator at level n gets (2n, 2n+1), a right-
// associative one gets (2n+1, 2n), so a chain of same-level operators
// naturally folds in the intended direction without extra bookkeeping.
type bindingPower struct {
	left, right int
}

// precedenceTable assigns each infix/postfix operator kind its binding
// power, from loosest (`and`/`or`/`not`, level 0) to tightest (method
// call/index, level 19) per spec.md's 20-level table.
var precedenceTable = map[token.Kind]bindingPower{
	token.KW_OR:  {0, 1},
	token.KW_AND: {2, 3},

	token.KW_NOT: {5, 4}, // prefix, right-associative

	token.EQL:     {7, 6}, // assignment, right-associative
	token.OP_ASGN: {7, 6},

	token.KW_DEFINED: {9, 8},

	token.QMARK: {11, 10}, // ternary, right-associative

	token.DOT2: {12, 13},
	token.DOT3: {12, 13},

	token.OROP: {14, 15},

	token.ANDOP: {16, 17},

	token.EQ:     {18, 19},
	token.EQQ:    {18, 19},
	token.NEQ:    {18, 19},
	token.MATCH:  {18, 19},
	token.NMATCH: {18, 19},

	token.LT:  {20, 21},
	token.GT:  {20, 21},
	token.LEQ: {20, 21},
	token.GEQ: {20, 21},
	token.CMP: {20, 21},

	token.PIPE:  {22, 23},
	token.CARET: {22, 23},

	token.AMP: {24, 25},

	token.LSHFT: {26, 27},
	token.RSHFT: {26, 27},

	token.PLUS:  {28, 29},
	token.MINUS: {28, 29},

	token.STAR:   {30, 31},
	token.SLASH:  {30, 31},
	token.PERCENT: {30, 31},

	token.UMINUS: {33, 32}, // unary minus, right-associative

	token.POW:   {35, 34}, // right-associative
	token.DSTAR: {35, 34}, // binary "**" as the lexer emits it

	token.BANG:  {37, 36},
	token.TILDE: {37, 36},
	token.UPLUS: {37, 36},

	token.LBRACK: {39, 38}, // index
	token.DOT:    {39, 38}, // method call / attribute
	token.ANDDOT: {39, 38},
	token.COLON2: {39, 38},
}

// infixBindingPower reports the binding power of k as an infix/postfix
// operator, and whether k participates in infix position at all.
func infixBindingPower(k token.Kind) (bindingPower, bool) {
	bp, ok := precedenceTable[k]
	return bp, ok
}

// minBindingPower is the loosest possible binding power, used as the
// starting floor when parsing a top-level expression.
const minBindingPower = 0
