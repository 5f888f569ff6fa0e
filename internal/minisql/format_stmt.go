package minisql

// formatStmt dispatches statement formatting by type.
func (f *formatter) formatStmt(stmt Stmt) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *CreateTableStmt:
		f.formatCreateTableStmt(s)
	case *DropTableStmt:
		f.formatDropTableStmt(s)
	case *InsertStmt:
		f.formatInsertStmt(s)
	case *SelectStmt:
		f.formatSelectStmt(s)
	case *UpdateStmt:
		f.formatUpdateStmt(s)
	case *DeleteStmt:
		f.formatDeleteStmt(s)
	}
}

func (f *formatter) formatCreateTableStmt(stmt *CreateTableStmt) {
	f.write("CREATE TABLE ")
	f.writeIdent(stmt.Table)
	f.write(" (")
	f.commaSep(len(stmt.Columns), func(i int) {
		col := stmt.Columns[i]
		f.writeIdent(col.Name)
		f.space()
		f.write(col.Type.String())
	})
	f.write(")")
}

func (f *formatter) formatDropTableStmt(stmt *DropTableStmt) {
	f.write("DROP TABLE ")
	f.writeIdent(stmt.Table)
}

func (f *formatter) formatInsertStmt(stmt *InsertStmt) {
	f.write("INSERT INTO ")
	f.writeIdent(stmt.Table)

	if len(stmt.Columns) > 0 {
		f.write(" (")
		f.commaSep(len(stmt.Columns), func(i int) {
			f.writeIdent(stmt.Columns[i])
		})
		f.write(")")
	}

	f.write(" VALUES ")
	f.commaSep(len(stmt.Values), func(i int) {
		f.write("(")
		row := stmt.Values[i]
		f.commaSep(len(row), func(j int) {
			f.formatExpr(row[j])
		})
		f.write(")")
	})
}

func (f *formatter) formatSelectStmt(stmt *SelectStmt) {
	f.write("SELECT ")
	if stmt.Star {
		f.write("*")
	} else {
		f.commaSep(len(stmt.Columns), func(i int) {
			f.writeIdent(stmt.Columns[i])
		})
	}

	f.write(" FROM ")
	f.writeIdent(stmt.Table)

	if stmt.Where != nil {
		f.write(" WHERE ")
		f.formatExpr(stmt.Where)
	}
}

func (f *formatter) formatUpdateStmt(stmt *UpdateStmt) {
	f.write("UPDATE ")
	f.writeIdent(stmt.Table)
	f.write(" SET ")
	f.commaSep(len(stmt.Sets), func(i int) {
		set := stmt.Sets[i]
		f.writeIdent(set.Column)
		f.write(" = ")
		f.formatExpr(set.Value)
	})

	if stmt.Where != nil {
		f.write(" WHERE ")
		f.formatExpr(stmt.Where)
	}
}

func (f *formatter) formatDeleteStmt(stmt *DeleteStmt) {
	f.write("DELETE FROM ")
	f.writeIdent(stmt.Table)

	if stmt.Where != nil {
		f.write(" WHERE ")
		f.formatExpr(stmt.Where)
	}
}
