// Package engine executes parsed statements against an in-memory database.
//
// One Engine owns one database. All access is serialized through the
// Engine's lock: mutating statements take it exclusively, SELECT and the
// introspection methods share it. Statement-level failures (unknown tables
// or columns, arity and type mismatches) are domain.SemanticError;
// introspection of a missing table is a domain.NotFoundError.
package engine

import (
	"sync"

	"minidb/internal/domain"
	"minidb/internal/minisql"
	"minidb/internal/storage/memstore"
)

// Engine executes statements against one database.
type Engine struct {
	mu sync.RWMutex
	db *memstore.Database
}

// New creates an engine over an empty database.
func New() *Engine {
	return &Engine{db: memstore.NewDatabase()}
}

// Execute parses and runs a single SQL statement. The text must hold
// exactly one statement; split scripts with minisql.SplitStatements first.
func (e *Engine) Execute(sql string) (*domain.Result, error) {
	stmt, err := minisql.Parse(sql)
	if err != nil {
		return nil, err
	}
	return e.ExecuteStmt(stmt)
}

// ExecuteStmt runs one parsed statement to completion.
func (e *Engine) ExecuteStmt(stmt minisql.Stmt) (*domain.Result, error) {
	var res *domain.Result
	var err error

	switch s := stmt.(type) {
	case *minisql.SelectStmt:
		e.mu.RLock()
		res, err = e.executeSelect(s)
		e.mu.RUnlock()
	case *minisql.CreateTableStmt:
		e.mu.Lock()
		res, err = e.executeCreateTable(s)
		e.mu.Unlock()
	case *minisql.DropTableStmt:
		e.mu.Lock()
		res, err = e.executeDropTable(s)
		e.mu.Unlock()
	case *minisql.InsertStmt:
		e.mu.Lock()
		res, err = e.executeInsert(s)
		e.mu.Unlock()
	case *minisql.UpdateStmt:
		e.mu.Lock()
		res, err = e.executeUpdate(s)
		e.mu.Unlock()
	case *minisql.DeleteStmt:
		e.mu.Lock()
		res, err = e.executeDelete(s)
		e.mu.Unlock()
	default:
		return nil, domain.ErrSemantic("unsupported statement")
	}

	if err != nil {
		return nil, err
	}
	res.Statement = minisql.StatementKind(stmt)
	return res, nil
}

// lookup resolves a statement's target table. Inside statement execution a
// missing table is a semantic error, not a not-found.
func (e *Engine) lookup(name string) (*memstore.Table, error) {
	t, err := e.db.Lookup(name)
	if err != nil {
		return nil, domain.ErrSemantic("table %q does not exist", name)
	}
	return t, nil
}

func (e *Engine) executeCreateTable(stmt *minisql.CreateTableStmt) (*domain.Result, error) {
	cols := make([]domain.Column, 0, len(stmt.Columns))
	seen := make(map[string]bool, len(stmt.Columns))
	for _, def := range stmt.Columns {
		if seen[def.Name] {
			return nil, domain.ErrSemantic("duplicate column %q in table %q", def.Name, stmt.Table)
		}
		seen[def.Name] = true
		cols = append(cols, domain.Column{Name: def.Name, Type: columnKind(def.Type)})
	}

	if err := e.db.Register(&memstore.Table{Name: stmt.Table, Columns: cols}); err != nil {
		return nil, domain.ErrSemantic("table %q already exists", stmt.Table)
	}
	return &domain.Result{}, nil
}

func (e *Engine) executeDropTable(stmt *minisql.DropTableStmt) (*domain.Result, error) {
	if err := e.db.Drop(stmt.Table); err != nil {
		return nil, domain.ErrSemantic("table %q does not exist", stmt.Table)
	}
	return &domain.Result{}, nil
}

func (e *Engine) executeInsert(stmt *minisql.InsertStmt) (*domain.Result, error) {
	table, err := e.lookup(stmt.Table)
	if err != nil {
		return nil, err
	}

	// Map VALUES positions to schema positions. Without a column list the
	// values cover the whole schema in order.
	var targets []int
	if len(stmt.Columns) > 0 {
		targets = make([]int, 0, len(stmt.Columns))
		named := make(map[int]bool, len(stmt.Columns))
		for _, name := range stmt.Columns {
			idx := table.ColumnIndex(name)
			if idx < 0 {
				return nil, domain.ErrSemantic("column %q does not exist in table %q", name, stmt.Table)
			}
			if named[idx] {
				return nil, domain.ErrSemantic("column %q named more than once", name)
			}
			named[idx] = true
			targets = append(targets, idx)
		}
	} else {
		targets = make([]int, len(table.Columns))
		for i := range targets {
			targets[i] = i
		}
	}

	// Validate and build every row before appending any; a failing INSERT
	// appends nothing.
	rows := make([][]domain.Value, 0, len(stmt.Values))
	for _, exprs := range stmt.Values {
		if len(exprs) != len(targets) {
			return nil, domain.ErrSemantic("INSERT expects %d values per row, got %d", len(targets), len(exprs))
		}
		// Columns omitted from the list stay at the zero Value, NULL.
		row := make([]domain.Value, len(table.Columns))
		for i, expr := range exprs {
			v, err := evalValue(expr, nil)
			if err != nil {
				return nil, err
			}
			col := table.Columns[targets[i]]
			if !v.AssignableTo(col.Type) {
				return nil, domain.ErrSemantic("cannot assign %s to %s column %q", v.Kind, col.Type, col.Name)
			}
			row[targets[i]] = v
		}
		rows = append(rows, row)
	}

	table.Rows = append(table.Rows, rows...)
	return &domain.Result{RowCount: len(rows)}, nil
}

func (e *Engine) executeSelect(stmt *minisql.SelectStmt) (*domain.Result, error) {
	table, err := e.lookup(stmt.Table)
	if err != nil {
		return nil, err
	}

	// Resolve the projection before scanning so unknown columns fail even
	// on empty tables.
	var cols []string
	var idxs []int
	if stmt.Star {
		cols = table.ColumnNames()
		idxs = make([]int, len(cols))
		for i := range idxs {
			idxs[i] = i
		}
	} else {
		cols = make([]string, 0, len(stmt.Columns))
		idxs = make([]int, 0, len(stmt.Columns))
		for _, name := range stmt.Columns {
			idx := table.ColumnIndex(name)
			if idx < 0 {
				return nil, domain.ErrSemantic("column %q does not exist in table %q", name, stmt.Table)
			}
			cols = append(cols, name)
			idxs = append(idxs, idx)
		}
	}

	rows := make([][]domain.Value, 0)
	for _, row := range table.Rows {
		if stmt.Where != nil {
			match, err := evalPredicate(stmt.Where, &binding{table: table, row: row})
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		out := make([]domain.Value, len(idxs))
		for i, idx := range idxs {
			out[i] = row[idx]
		}
		rows = append(rows, out)
	}

	return &domain.Result{Columns: cols, Rows: rows, RowCount: len(rows)}, nil
}

func (e *Engine) executeUpdate(stmt *minisql.UpdateStmt) (*domain.Result, error) {
	table, err := e.lookup(stmt.Table)
	if err != nil {
		return nil, err
	}

	// Resolve SET targets before touching any row.
	targets := make([]int, len(stmt.Sets))
	for i, set := range stmt.Sets {
		idx := table.ColumnIndex(set.Column)
		if idx < 0 {
			return nil, domain.ErrSemantic("column %q does not exist in table %q", set.Column, stmt.Table)
		}
		targets[i] = idx
	}

	// Rows are updated in place as the scan proceeds; a failure mid-scan
	// keeps the updates already applied. See DESIGN.md on partial UPDATE.
	updated := 0
	for _, row := range table.Rows {
		b := &binding{table: table, row: row}
		if stmt.Where != nil {
			match, err := evalPredicate(stmt.Where, b)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}

		// Every SET expression sees the pre-update values of this row.
		newVals := make([]domain.Value, len(stmt.Sets))
		for i, set := range stmt.Sets {
			v, err := evalValue(set.Value, b)
			if err != nil {
				return nil, err
			}
			col := table.Columns[targets[i]]
			if !v.AssignableTo(col.Type) {
				return nil, domain.ErrSemantic("cannot assign %s to %s column %q", v.Kind, col.Type, col.Name)
			}
			newVals[i] = v
		}
		for i, idx := range targets {
			row[idx] = newVals[i]
		}
		updated++
	}

	return &domain.Result{RowCount: updated}, nil
}

func (e *Engine) executeDelete(stmt *minisql.DeleteStmt) (*domain.Result, error) {
	table, err := e.lookup(stmt.Table)
	if err != nil {
		return nil, err
	}

	if stmt.Where == nil {
		removed := len(table.Rows)
		table.Rows = nil
		return &domain.Result{RowCount: removed}, nil
	}

	// Survivors swap in only after the whole scan succeeds, so an
	// evaluation error deletes nothing.
	survivors := make([][]domain.Value, 0, len(table.Rows))
	removed := 0
	for _, row := range table.Rows {
		match, err := evalPredicate(stmt.Where, &binding{table: table, row: row})
		if err != nil {
			return nil, err
		}
		if match {
			removed++
			continue
		}
		survivors = append(survivors, row)
	}

	table.Rows = survivors
	return &domain.Result{RowCount: removed}, nil
}

// Tables returns summaries of all tables, sorted by name.
func (e *Engine) Tables() []domain.TableSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := e.db.Names()
	out := make([]domain.TableSummary, 0, len(names))
	for _, name := range names {
		t, err := e.db.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, domain.TableSummary{
			Name:        name,
			ColumnCount: len(t.Columns),
			RowCount:    len(t.Rows),
		})
	}
	return out
}

// Describe returns the full description of one table, including its
// canonical CREATE TABLE rendering. A missing table is a NotFoundError.
func (e *Engine) Describe(name string) (*domain.TableInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, err := e.db.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &domain.TableInfo{
		Name:     t.Name,
		Columns:  append([]domain.Column(nil), t.Columns...),
		RowCount: len(t.Rows),
		DDL:      tableDDL(t),
	}, nil
}

// tableDDL renders the canonical CREATE TABLE statement for a table.
func tableDDL(t *memstore.Table) string {
	stmt := &minisql.CreateTableStmt{Table: t.Name}
	for _, col := range t.Columns {
		ct := minisql.ColumnInt
		if col.Type == domain.KindText {
			ct = minisql.ColumnText
		}
		stmt.Columns = append(stmt.Columns, minisql.ColumnDef{Name: col.Name, Type: ct})
	}
	return minisql.Format(stmt)
}

// columnKind converts a declared column type to its value kind.
func columnKind(t minisql.ColumnType) domain.ValueKind {
	if t == minisql.ColumnText {
		return domain.KindText
	}
	return domain.KindInteger
}
