/*
Package parser turns a token stream from the lexer into an abstract
syntax tree of pixelscript, using a precedence-climbing (Pratt) parser
in the same spirit as go-mix's parser package: unary ("nud") and binary
("led") parse functions registered per token type, driven by a
precedence table.

Every node carries a Span so the evaluator and the host's editor can
point at the exact source range responsible for a runtime or parse
error.
*/
package parser

import "github.com/pixelscript/pixelscript/span"

// Node is implemented by every AST node.
type Node interface {
	Span() span.Span
}

// Statement is implemented by the four statement kinds: Assignment,
// If, Repeat, Return.
type Statement interface {
	Node
	statementNode()
}

// Expr is implemented by the seven expression kinds: NumberLit,
// Ident, SeqLit, Call, Index, Unary, Binary.
type Expr interface {
	Node
	exprNode()
}

// Program is the root AST node: a program's function definitions
// followed by its top-level statement block.
type Program struct {
	Functions []*FunctionDef
	Body      []Statement
	Sp        span.Span
}

func (p *Program) Span() span.Span { return p.Sp }

// FunctionDef is a user function declaration: a name, its parameter
// names (bare identifiers), and its body block.
type FunctionDef struct {
	Name   string
	Params []string
	Body   []Statement
	Sp     span.Span
}

func (f *FunctionDef) Span() span.Span { return f.Sp }

// --- Statements ---

// Assignment is `name = expr;`.
type Assignment struct {
	Name  string
	Value Expr
	Sp    span.Span
}

func (*Assignment) statementNode()    {}
func (a *Assignment) Span() span.Span { return a.Sp }

// If is `if (cond) { then } else { else }`, with Else nil when absent.
// Else-if chains ("else if (...) {...}") are represented as a single
// statement in the Else slice wrapping another If, matching how the
// grammar recurses (`if_stmt := ... ("else" (if_stmt | "{" ... "}"))?`).
type If struct {
	Cond Expr
	Then []Statement
	Else []Statement
	Sp   span.Span
}

func (*If) statementNode()    {}
func (i *If) Span() span.Span { return i.Sp }

// Repeat is `repeat (counter until bound) { body }`. Bound is a
// parsed numeric literal, never a general expression, per the grammar.
type Repeat struct {
	Counter string
	Bound   float64
	Body    []Statement
	Sp      span.Span
}

func (*Repeat) statementNode()    {}
func (r *Repeat) Span() span.Span { return r.Sp }

// Return is `return expr;`.
type Return struct {
	Value Expr
	Sp    span.Span
}

func (*Return) statementNode()    {}
func (r *Return) Span() span.Span { return r.Sp }

// --- Expressions ---

// NumberLit is a number literal.
type NumberLit struct {
	Value float64
	Sp    span.Span
}

func (*NumberLit) exprNode()         {}
func (n *NumberLit) Span() span.Span { return n.Sp }

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Sp   span.Span
}

func (*Ident) exprNode()         {}
func (i *Ident) Span() span.Span { return i.Sp }

// SeqLit is a sequence literal `[e1, e2, ...]`.
type SeqLit struct {
	Elements []Expr
	Sp       span.Span
}

func (*SeqLit) exprNode()         {}
func (s *SeqLit) Span() span.Span { return s.Sp }

// Call is a function call `name(arg1, arg2, ...)`, resolved against
// the user function table first and the builtin table second.
type Call struct {
	Name string
	Args []Expr
	Sp   span.Span
}

func (*Call) exprNode()         {}
func (c *Call) Span() span.Span { return c.Sp }

// Index is `base[idx]`, applicable to both Sequence bases (element
// access) and Number bases (bit extraction).
type Index struct {
	Base Expr
	Idx  Expr
	Sp   span.Span
}

func (*Index) exprNode()         {}
func (x *Index) Span() span.Span { return x.Sp }

// UnaryOp is the operator of a Unary node: negation or logical not.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

// Unary is a prefix expression: `-x` or `!x`.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Sp      span.Span
}

func (*Unary) exprNode()         {}
func (u *Unary) Span() span.Span { return u.Sp }

// BinaryOp is the operator of a Binary node.
type BinaryOp string

const (
	OpOr  BinaryOp = "||"
	OpAnd BinaryOp = "&&"

	OpEq BinaryOp = "=="
	OpNe BinaryOp = "!="
	OpLt BinaryOp = "<"
	OpGt BinaryOp = ">"
	OpLe BinaryOp = "<="
	OpGe BinaryOp = ">="

	OpBitOr  BinaryOp = "|"
	OpBitXor BinaryOp = "^"
	OpBitAnd BinaryOp = "&"
	OpShl    BinaryOp = "<<"
	OpShr    BinaryOp = ">>"

	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpPow BinaryOp = "**"
)

// Binary is a binary expression `left op right`.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Sp    span.Span
}

func (*Binary) exprNode()         {}
func (b *Binary) Span() span.Span { return b.Sp }
