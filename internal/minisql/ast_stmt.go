package minisql

// === Statement Nodes ===

// ColumnType is a declared column type in CREATE TABLE.
type ColumnType int

// ColumnInt and ColumnText are the two declarable column types.
const (
	ColumnInt ColumnType = iota
	ColumnText
)

// String returns the SQL spelling of the type.
func (t ColumnType) String() string {
	if t == ColumnText {
		return "TEXT"
	}
	return "INT"
}

// ColumnDef is one column declaration in a CREATE TABLE statement.
type ColumnDef struct {
	Name string
	Type ColumnType
}

// CreateTableStmt represents a CREATE TABLE statement.
type CreateTableStmt struct {
	Table   string
	Columns []ColumnDef
}

func (*CreateTableStmt) node()     {}
func (*CreateTableStmt) stmtNode() {}

// DropTableStmt represents a DROP TABLE statement.
type DropTableStmt struct {
	Table string
}

func (*DropTableStmt) node()     {}
func (*DropTableStmt) stmtNode() {}

// InsertStmt represents an INSERT statement. Columns is empty when no
// column list was written; Values holds one expression list per VALUES row.
type InsertStmt struct {
	Table   string
	Columns []string
	Values  [][]Expr
}

func (*InsertStmt) node()     {}
func (*InsertStmt) stmtNode() {}

// SelectStmt represents a SELECT statement. Star and Columns are mutually
// exclusive; Where is nil when there is no WHERE clause.
type SelectStmt struct {
	Table   string
	Star    bool
	Columns []string
	Where   Expr
}

func (*SelectStmt) node()     {}
func (*SelectStmt) stmtNode() {}

// SetClause represents one column = value assignment in UPDATE.
type SetClause struct {
	Column string
	Value  Expr
}

// UpdateStmt represents an UPDATE statement.
type UpdateStmt struct {
	Table string
	Sets  []SetClause
	Where Expr
}

func (*UpdateStmt) node()     {}
func (*UpdateStmt) stmtNode() {}

// DeleteStmt represents a DELETE statement.
type DeleteStmt struct {
	Table string
	Where Expr
}

func (*DeleteStmt) node()     {}
func (*DeleteStmt) stmtNode() {}

// StatementKind returns the SQL verb for a statement, for logging and
// history records.
func StatementKind(stmt Stmt) string {
	switch stmt.(type) {
	case *CreateTableStmt:
		return "CREATE TABLE"
	case *DropTableStmt:
		return "DROP TABLE"
	case *InsertStmt:
		return "INSERT"
	case *SelectStmt:
		return "SELECT"
	case *UpdateStmt:
		return "UPDATE"
	case *DeleteStmt:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}
