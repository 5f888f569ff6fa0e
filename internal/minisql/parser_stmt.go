package minisql

// === CREATE TABLE ===

func (p *Parser) parseCreateTableStatement() *CreateTableStmt {
	p.expect(TOKEN_CREATE)
	p.expect(TOKEN_TABLE)

	stmt := &CreateTableStmt{}
	stmt.Table = p.parseTableName()

	if !p.expect(TOKEN_LPAREN) {
		return stmt
	}
	for {
		def := ColumnDef{}
		if !p.check(TOKEN_IDENT) {
			p.addError("unexpected token %s, expected column name", p.token.Type)
			return stmt
		}
		def.Name = p.token.Literal
		p.nextToken()

		switch p.token.Type {
		case TOKEN_INT:
			def.Type = ColumnInt
			p.nextToken()
		case TOKEN_TEXT:
			def.Type = ColumnText
			p.nextToken()
		default:
			p.addError("unexpected token %s, expected column type INT or TEXT", p.token.Type)
			return stmt
		}
		stmt.Columns = append(stmt.Columns, def)

		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// === DROP TABLE ===

func (p *Parser) parseDropTableStatement() *DropTableStmt {
	p.expect(TOKEN_DROP)
	p.expect(TOKEN_TABLE)

	stmt := &DropTableStmt{}
	stmt.Table = p.parseTableName()

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// === INSERT ===

func (p *Parser) parseInsertStatement() *InsertStmt {
	p.expect(TOKEN_INSERT)
	p.expect(TOKEN_INTO)

	stmt := &InsertStmt{}
	stmt.Table = p.parseTableName()

	// Optional column list
	if p.match(TOKEN_LPAREN) {
		for {
			if !p.check(TOKEN_IDENT) {
				p.addError("unexpected token %s, expected column name", p.token.Type)
				return stmt
			}
			stmt.Columns = append(stmt.Columns, p.token.Literal)
			p.nextToken()
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
		p.expect(TOKEN_RPAREN)
	}

	if !p.expect(TOKEN_VALUES) {
		return stmt
	}
	for {
		if !p.expect(TOKEN_LPAREN) {
			return stmt
		}
		row := p.parseExpressionList()
		stmt.Values = append(stmt.Values, row)
		if !p.expect(TOKEN_RPAREN) {
			return stmt
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// === SELECT ===

func (p *Parser) parseSelectStatement() *SelectStmt {
	p.expect(TOKEN_SELECT)

	stmt := &SelectStmt{}

	if p.match(TOKEN_STAR) {
		stmt.Star = true
	} else {
		for {
			if !p.check(TOKEN_IDENT) {
				p.addError("unexpected token %s, expected column name or *", p.token.Type)
				return stmt
			}
			stmt.Columns = append(stmt.Columns, p.token.Literal)
			p.nextToken()
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}

	p.expect(TOKEN_FROM)
	stmt.Table = p.parseTableName()

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// === UPDATE ===

func (p *Parser) parseUpdateStatement() *UpdateStmt {
	p.expect(TOKEN_UPDATE)

	stmt := &UpdateStmt{}
	stmt.Table = p.parseTableName()

	p.expect(TOKEN_SET)
	for {
		set := SetClause{}
		if !p.check(TOKEN_IDENT) {
			p.addError("unexpected token %s, expected column name", p.token.Type)
			return stmt
		}
		set.Column = p.token.Literal
		p.nextToken()
		p.expect(TOKEN_EQ)
		set.Value = p.parseExpression()
		stmt.Sets = append(stmt.Sets, set)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// === DELETE ===

func (p *Parser) parseDeleteStatement() *DeleteStmt {
	p.expect(TOKEN_DELETE)
	p.expect(TOKEN_FROM)

	stmt := &DeleteStmt{}
	stmt.Table = p.parseTableName()

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	p.match(TOKEN_SEMICOLON)
	return stmt
}

// parseTableName parses the target table name of a statement.
func (p *Parser) parseTableName() string {
	if !p.check(TOKEN_IDENT) {
		p.addError("unexpected token %s, expected table name", p.token.Type)
		return ""
	}
	name := p.token.Literal
	p.nextToken()
	return name
}
