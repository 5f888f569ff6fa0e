package domain

// Column describes one column of a table schema.
type Column struct {
	Name string
	Type ValueKind
}

// TableSummary is the list-view description of a table.
type TableSummary struct {
	Name        string
	ColumnCount int
	RowCount    int
}

// TableInfo is the detailed description of a table.
type TableInfo struct {
	Name     string
	Columns  []Column
	RowCount int
	DDL      string // canonical CREATE TABLE statement
}
