package minisql

// === Expression Nodes ===

// ColumnRef represents a column reference. The name is already normalized:
// lower-cased unless it was double-quoted in the original SQL.
type ColumnRef struct {
	Name string
}

func (*ColumnRef) node()     {}
func (*ColumnRef) exprNode() {}

// Literal represents a literal value (integer, string, or NULL). The parser
// converts integer text once, so evaluation never re-parses.
type Literal struct {
	Kind LiteralKind
	Int  int64  // set when Kind == LiteralInteger
	Text string // set when Kind == LiteralText
}

func (*Literal) node()     {}
func (*Literal) exprNode() {}

// LiteralKind represents the kind of a literal.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralText
	LiteralNull
)

// BinaryExpr represents a binary expression (left op right).
type BinaryExpr struct {
	Left  Expr
	Op    TokenType
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression (NOT x, -x, +x).
type UnaryExpr struct {
	Op   TokenType
	Expr Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// ParenExpr represents a parenthesized expression. Kept in the tree so the
// formatter can reproduce the grouping.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) node()     {}
func (*ParenExpr) exprNode() {}
