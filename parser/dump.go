package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders prog as an indented tree, one node per line. It exists
// for the same reason go-mix keeps a PrintingVisitor alongside its
// parser: a debug view a host tool or test can diff against, without
// attaching any behavior to the AST types themselves.
func Dump(prog *Program) string {
	var b strings.Builder
	for _, fn := range prog.Functions {
		dumpFunctionDef(&b, fn, 0)
	}
	dumpBlock(&b, "Program", prog.Body, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpFunctionDef(b *strings.Builder, fn *FunctionDef, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "FunctionDef %s(%s)\n", fn.Name, strings.Join(fn.Params, ", "))
	dumpStatements(b, fn.Body, depth+1)
}

func dumpBlock(b *strings.Builder, label string, stmts []Statement, depth int) {
	indent(b, depth)
	b.WriteString(label)
	b.WriteString("\n")
	dumpStatements(b, stmts, depth+1)
}

func dumpStatements(b *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		dumpStatement(b, s, depth)
	}
}

func dumpStatement(b *strings.Builder, s Statement, depth int) {
	switch n := s.(type) {
	case *Assignment:
		indent(b, depth)
		fmt.Fprintf(b, "Assignment %s =\n", n.Name)
		dumpExpr(b, n.Value, depth+1)
	case *If:
		indent(b, depth)
		b.WriteString("If\n")
		dumpExpr(b, n.Cond, depth+1)
		dumpBlock(b, "Then", n.Then, depth+1)
		if n.Else != nil {
			dumpBlock(b, "Else", n.Else, depth+1)
		}
	case *Repeat:
		indent(b, depth)
		fmt.Fprintf(b, "Repeat %s until %s\n", n.Counter, strconv.FormatFloat(n.Bound, 'g', -1, 64))
		dumpStatements(b, n.Body, depth+1)
	case *Return:
		indent(b, depth)
		b.WriteString("Return\n")
		dumpExpr(b, n.Value, depth+1)
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown statement %T>\n", s)
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	switch n := e.(type) {
	case *NumberLit:
		indent(b, depth)
		fmt.Fprintf(b, "Number %s\n", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *Ident:
		indent(b, depth)
		fmt.Fprintf(b, "Ident %s\n", n.Name)
	case *SeqLit:
		indent(b, depth)
		b.WriteString("SeqLit\n")
		for _, el := range n.Elements {
			dumpExpr(b, el, depth+1)
		}
	case *Call:
		indent(b, depth)
		fmt.Fprintf(b, "Call %s\n", n.Name)
		for _, arg := range n.Args {
			dumpExpr(b, arg, depth+1)
		}
	case *Index:
		indent(b, depth)
		b.WriteString("Index\n")
		dumpExpr(b, n.Base, depth+1)
		dumpExpr(b, n.Idx, depth+1)
	case *Unary:
		indent(b, depth)
		fmt.Fprintf(b, "Unary %s\n", n.Op)
		dumpExpr(b, n.Operand, depth+1)
	case *Binary:
		indent(b, depth)
		fmt.Fprintf(b, "Binary %s\n", n.Op)
		dumpExpr(b, n.Left, depth+1)
		dumpExpr(b, n.Right, depth+1)
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown expr %T>\n", e)
	}
}
