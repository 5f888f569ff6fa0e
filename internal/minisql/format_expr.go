package minisql

import (
	"strconv"
	"strings"
)

// formatExpr dispatches expression formatting by type.
func (f *formatter) formatExpr(e Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *Literal:
		f.formatLiteral(expr)
	case *ColumnRef:
		f.writeIdent(expr.Name)
	case *BinaryExpr:
		f.formatBinaryExpr(expr)
	case *UnaryExpr:
		f.formatUnaryExpr(expr)
	case *ParenExpr:
		f.formatParenExpr(expr)
	}
}

func (f *formatter) formatLiteral(lit *Literal) {
	switch lit.Kind {
	case LiteralText:
		f.write("'")
		// Escape single quotes within the string value
		f.write(strings.ReplaceAll(lit.Text, "'", "''"))
		f.write("'")
	case LiteralNull:
		f.write("NULL")
	default:
		f.write(strconv.FormatInt(lit.Int, 10))
	}
}

func (f *formatter) formatBinaryExpr(expr *BinaryExpr) {
	f.formatExpr(expr.Left)
	f.space()
	f.write(operatorString(expr.Op))
	f.space()
	f.formatExpr(expr.Right)
}

// operatorString returns the SQL string for a token type used as an operator.
func operatorString(op TokenType) string {
	// Use SQL-standard <> for not-equal in canonical output.
	if op == TOKEN_NE {
		return "<>"
	}
	if name, ok := tokenNames[op]; ok {
		return name
	}
	return "?"
}

func (f *formatter) formatUnaryExpr(expr *UnaryExpr) {
	switch expr.Op {
	case TOKEN_NOT:
		f.write("NOT ")
		f.formatExpr(expr.Expr)
	case TOKEN_MINUS:
		f.write("-")
		f.formatExpr(expr.Expr)
	case TOKEN_PLUS:
		f.write("+")
		f.formatExpr(expr.Expr)
	default:
		f.write(operatorString(expr.Op))
		f.formatExpr(expr.Expr)
	}
}

func (f *formatter) formatParenExpr(paren *ParenExpr) {
	f.write("(")
	f.formatExpr(paren.Expr)
	f.write(")")
}
