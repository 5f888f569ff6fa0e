// Package memstore holds the in-memory table storage backing one database.
// Everything here is plain data with no locking; the engine owns the
// serialization boundary and is the only caller.
package memstore

import (
	"sort"

	"minidb/internal/domain"
)

// Table is one table: a schema and its rows in insertion order. Every row
// has exactly len(Columns) values, positionally aligned with the schema.
type Table struct {
	Name    string
	Columns []domain.Column
	Rows    [][]domain.Value
}

// ColumnIndex returns the schema position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// CopyRow returns a copy of one row. Values are plain data, so a shallow
// slice copy is a deep copy of the row.
func CopyRow(row []domain.Value) []domain.Value {
	out := make([]domain.Value, len(row))
	copy(out, row)
	return out
}

// Snapshot returns a deep copy of all rows. Results built from a snapshot
// never alias live storage.
func (t *Table) Snapshot() [][]domain.Value {
	rows := make([][]domain.Value, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = CopyRow(row)
	}
	return rows
}

// Database is a named collection of tables.
type Database struct {
	tables map[string]*Table
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// Lookup returns the named table, or a NotFoundError.
func (d *Database) Lookup(name string) (*Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, domain.ErrNotFound("table %q does not exist", name)
	}
	return t, nil
}

// Has reports whether the named table exists.
func (d *Database) Has(name string) bool {
	_, ok := d.tables[name]
	return ok
}

// Register adds a table. Registering an existing name is a ConflictError.
func (d *Database) Register(t *Table) error {
	if _, ok := d.tables[t.Name]; ok {
		return domain.ErrConflict("table %q already exists", t.Name)
	}
	d.tables[t.Name] = t
	return nil
}

// Drop removes the named table, or returns a NotFoundError.
func (d *Database) Drop(name string) error {
	if _, ok := d.tables[name]; !ok {
		return domain.ErrNotFound("table %q does not exist", name)
	}
	delete(d.tables, name)
	return nil
}

// Names returns all table names sorted for deterministic listings.
func (d *Database) Names() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tables.
func (d *Database) Len() int {
	return len(d.tables)
}
