package domain

// Result is the outcome of one successfully executed statement.
//
// SELECT fills Columns and Rows and sets RowCount to len(Rows). INSERT,
// UPDATE, and DELETE report the number of affected rows in RowCount and
// leave Columns and Rows empty. CREATE TABLE and DROP TABLE report
// RowCount 0. Rows never alias table storage; mutating a result cannot
// change the database.
type Result struct {
	Statement string // SQL verb, e.g. "SELECT" or "CREATE TABLE"
	Columns   []string
	Rows      [][]Value
	RowCount  int
}
