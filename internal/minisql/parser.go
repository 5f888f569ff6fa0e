package minisql

import "strings"

// Parser parses one SQL statement into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	errors []error
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{lexer: NewLexer(sql)}
	p.nextToken()
	return p
}

// Parse parses the SQL and returns the statement. The input must hold
// exactly one statement; a trailing semicolon is allowed but nothing may
// follow it. Use SplitStatements to break scripts apart first.
func Parse(sql string) (Stmt, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, errParse(Pos{Line: 1, Column: 1}, "empty statement")
	}

	p := NewParser(sql)
	stmt := p.parseTopLevel()

	// A lex error is the root cause of whatever the parser saw after it.
	if err := p.lexer.Err(); err != nil {
		return nil, err
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}

	// The statement parsers consume an optional trailing semicolon; after
	// that only end-of-input is legal.
	if p.token.Type != TOKEN_EOF {
		return nil, errParse(p.token.Pos, "unexpected %s after end of statement", p.token.Type)
	}

	return stmt, nil
}

// ParseExpr parses a standalone expression from SQL text.
func ParseExpr(sql string) (Expr, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, errParse(Pos{Line: 1, Column: 1}, "empty expression")
	}

	p := NewParser(sql)
	expr := p.parseExpression()

	if err := p.lexer.Err(); err != nil {
		return nil, err
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if p.token.Type != TOKEN_EOF {
		return nil, errParse(p.token.Pos, "unexpected %s after expression", p.token.Type)
	}

	return expr, nil
}

// parseTopLevel dispatches to the statement parser named by the first token.
func (p *Parser) parseTopLevel() Stmt {
	switch p.token.Type {
	case TOKEN_CREATE:
		return p.parseCreateTableStatement()
	case TOKEN_DROP:
		return p.parseDropTableStatement()
	case TOKEN_INSERT:
		return p.parseInsertStatement()
	case TOKEN_SELECT:
		return p.parseSelectStatement()
	case TOKEN_UPDATE:
		return p.parseUpdateStatement()
	case TOKEN_DELETE:
		return p.parseDeleteStatement()
	default:
		p.addError("unexpected token at start of statement: %s", p.token.Type)
		return nil
	}
}

// === Token Helpers ===

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError("unexpected token %s, expected %s", p.token.Type, t)
	return false
}

// addError records a parse error at the current token's position.
func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, errParse(p.token.Pos, format, args...))
}
