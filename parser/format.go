package parser

import (
	"strconv"
	"strings"
)

// Format renders prog back into pixelscript source, in a single
// canonical style (two-space indents, one statement per line, every
// binary expression and every unary operand parenthesized). It is not
// meant to reproduce the
// original text — only to make "parse(format(parse(src)))" produce the
// same AST as "parse(src))", which is what makes the grammar's
// round-trip property testable without hand-writing golden source for
// every case.
func Format(prog *Program) string {
	var b strings.Builder
	for _, fn := range prog.Functions {
		formatFunctionDef(&b, fn)
		b.WriteString("\n")
	}
	formatStatements(&b, prog.Body, 0)
	return b.String()
}

func formatIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func formatFunctionDef(b *strings.Builder, fn *FunctionDef) {
	b.WriteString("function ")
	b.WriteString(fn.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(fn.Params, ", "))
	b.WriteString(") {\n")
	formatStatements(b, fn.Body, 1)
	b.WriteString("}\n")
}

func formatStatements(b *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		formatStatement(b, s, depth)
	}
}

func formatStatement(b *strings.Builder, s Statement, depth int) {
	formatIndent(b, depth)
	switch n := s.(type) {
	case *Assignment:
		b.WriteString(n.Name)
		b.WriteString(" = ")
		b.WriteString(formatExpr(n.Value))
		b.WriteString(";\n")
	case *If:
		b.WriteString("if (")
		b.WriteString(formatExpr(n.Cond))
		b.WriteString(") {\n")
		formatStatements(b, n.Then, depth+1)
		formatIndent(b, depth)
		if n.Else == nil {
			b.WriteString("}\n")
			return
		}
		b.WriteString("} else ")
		if len(n.Else) == 1 {
			if nested, ok := n.Else[0].(*If); ok {
				formatStatementInline(b, nested, depth)
				return
			}
		}
		b.WriteString("{\n")
		formatStatements(b, n.Else, depth+1)
		formatIndent(b, depth)
		b.WriteString("}\n")
	case *Repeat:
		b.WriteString("repeat (")
		b.WriteString(n.Counter)
		b.WriteString(" until ")
		b.WriteString(strconv.FormatFloat(n.Bound, 'g', -1, 64))
		b.WriteString(") {\n")
		formatStatements(b, n.Body, depth+1)
		formatIndent(b, depth)
		b.WriteString("}\n")
	case *Return:
		b.WriteString("return ")
		b.WriteString(formatExpr(n.Value))
		b.WriteString(";\n")
	}
}

// formatStatementInline writes an else-if's nested If without repeating
// the indent formatStatement already wrote for the enclosing "} else ".
func formatStatementInline(b *strings.Builder, n *If, depth int) {
	b.WriteString("if (")
	b.WriteString(formatExpr(n.Cond))
	b.WriteString(") {\n")
	formatStatements(b, n.Then, depth+1)
	formatIndent(b, depth)
	if n.Else == nil {
		b.WriteString("}\n")
		return
	}
	b.WriteString("} else ")
	if len(n.Else) == 1 {
		if nested, ok := n.Else[0].(*If); ok {
			formatStatementInline(b, nested, depth)
			return
		}
	}
	b.WriteString("{\n")
	formatStatements(b, n.Else, depth+1)
	formatIndent(b, depth)
	b.WriteString("}\n")
}

func formatExpr(e Expr) string {
	switch n := e.(type) {
	case *NumberLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *Ident:
		return n.Name
	case *SeqLit:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = formatExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Call:
		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			parts[i] = formatExpr(arg)
		}
		return n.Name + "(" + strings.Join(parts, ", ") + ")"
	case *Index:
		return formatExpr(n.Base) + "[" + formatExpr(n.Idx) + "]"
	case *Unary:
		return string(n.Op) + "(" + formatExpr(n.Operand) + ")"
	case *Binary:
		return "(" + formatExpr(n.Left) + " " + string(n.Op) + " " + formatExpr(n.Right) + ")"
	default:
		return "<?>"
	}
}
