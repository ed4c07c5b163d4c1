package parser

import "github.com/pixelscript/pixelscript/lexer"

// Binary operator precedence, lowest to highest, matching the table in
// the language spec exactly. Values are spaced by 10 so later example
// repos' conventions (operators sharing a level) need no renumbering.
const (
	precNone = 0

	precOr     = 10 // ||
	precAnd    = 20 // &&
	precCmp    = 30 // == != < > <= >=
	precBitOr  = 40 // |
	precBitXor = 50 // ^
	precBitAnd = 60 // &
	precShift  = 70 // << >>
	precAdd    = 80 // + -
	precMul    = 90 // * / %
	precPow    = 100 // ** (right-associative)
)

// binaryOp describes one binary operator: its AST tag, its precedence,
// and whether it is right-associative (only ** is).
type binaryOp struct {
	op    BinaryOp
	prec  int
	right bool
}

var binaryOps = map[lexer.TokenType]binaryOp{
	lexer.OROR:   {OpOr, precOr, false},
	lexer.ANDAND: {OpAnd, precAnd, false},

	lexer.EQ: {OpEq, precCmp, false},
	lexer.NE: {OpNe, precCmp, false},
	lexer.LT: {OpLt, precCmp, false},
	lexer.GT: {OpGt, precCmp, false},
	lexer.LE: {OpLe, precCmp, false},
	lexer.GE: {OpGe, precCmp, false},

	lexer.PIPE:  {OpBitOr, precBitOr, false},
	lexer.CARET: {OpBitXor, precBitXor, false},
	lexer.AMP:   {OpBitAnd, precBitAnd, false},

	lexer.SHL: {OpShl, precShift, false},
	lexer.SHR: {OpShr, precShift, false},

	lexer.PLUS:  {OpAdd, precAdd, false},
	lexer.MINUS: {OpSub, precAdd, false},

	lexer.STAR:    {OpMul, precMul, false},
	lexer.SLASH:   {OpDiv, precMul, false},
	lexer.PERCENT: {OpMod, precMul, false},

	lexer.POW: {OpPow, precPow, true},
}
