package tac

import (
	"strings"
)

const indentUnit = "  "

// FormatSource prints a parse tree back as canonical source text: one
// statement per line, two-space indentation, braces on the header line.
func FormatSource(program *Block) string {
	var b strings.Builder
	if program != nil {
		writeStatements(&b, program.Statements, 0)
	}
	return b.String()
}

func writeStatements(b *strings.Builder, stmts []Statement, depth int) {
	for _, stmt := range stmts {
		b.WriteString(strings.Repeat(indentUnit, depth))
		writeStatement(b, stmt, depth)
		b.WriteString("\n")
	}
}

func writeStatement(b *strings.Builder, stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *AssignStmt:
		b.WriteString(s.Name + " = " + FormatExpression(s.Value))
	case *ExprStmt:
		b.WriteString(FormatExpression(s.Expr))
	case *IfStmt:
		b.WriteString("if " + FormatExpression(s.Condition) + ": ")
		writeBlock(b, s.Body, depth)
		alt := s.Alternative
		for alt != nil {
			switch a := alt.(type) {
			case *IfStmt:
				b.WriteString(" elif " + FormatExpression(a.Condition) + ": ")
				writeBlock(b, a.Body, depth)
				alt = a.Alternative
			case *Block:
				b.WriteString(" else: ")
				writeBlock(b, a, depth)
				alt = nil
			default:
				alt = nil
			}
		}
	case *WhileStmt:
		b.WriteString("while " + FormatExpression(s.Condition) + ": ")
		writeBlock(b, s.Body, depth)
	case *ForStmt:
		bound := ""
		if s.Bound != nil {
			bound = s.Bound.Text
		}
		b.WriteString("for " + s.Var + " in range(" + bound + "): ")
		writeBlock(b, s.Body, depth)
	}
}

func writeBlock(b *strings.Builder, block *Block, depth int) {
	if block == nil || len(block.Statements) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	writeStatements(b, block.Statements, depth+1)
	b.WriteString(strings.Repeat(indentUnit, depth) + "}")
}

// FormatExpression prints an expression with explicit groupings preserved.
func FormatExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		return e.Text
	case *Grouping:
		return "(" + FormatExpression(e.Inner) + ")"
	case *BinaryExpr:
		return FormatExpression(e.Left) + " " + e.Op + " " + FormatExpression(e.Right)
	default:
		return ""
	}
}
