// Package minisql provides the SQL front-end for minidb: a lexer, a
// recursive-descent parser producing a statement AST, and a formatter that
// renders an AST back to canonical SQL.
//
// The dialect is deliberately small: CREATE TABLE, DROP TABLE, INSERT,
// SELECT, UPDATE, and DELETE over single tables, with INT and TEXT column
// types. Expressions cover column references, integer and string literals,
// NULL, arithmetic, comparisons, and AND/OR/NOT.
//
// The parser performs no schema lookups. Anything that needs the database
// state (unknown tables, arity or type mismatches) is reported by the
// execution engine, not here.
package minisql

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

// TOKEN_EOF and friends enumerate all token types produced by the lexer.
const (
	TOKEN_EOF     TokenType = iota // end of input
	TOKEN_ILLEGAL                  // unexpected character

	TOKEN_IDENT  // identifier (unquoted ones are lower-cased by the lexer)
	TOKEN_NUMBER // 123
	TOKEN_STRING // 'hello'

	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_EQ        // =
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )

	// TOKEN_AND and below are SQL keywords (alphabetical).
	TOKEN_AND
	TOKEN_CREATE
	TOKEN_DELETE
	TOKEN_DROP
	TOKEN_FROM
	TOKEN_INSERT
	TOKEN_INT
	TOKEN_INTO
	TOKEN_NOT
	TOKEN_NULL
	TOKEN_OR
	TOKEN_SELECT
	TOKEN_SET
	TOKEN_TABLE
	TOKEN_TEXT
	TOKEN_UPDATE
	TOKEN_VALUES
	TOKEN_WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_IDENT:   "IDENT",
	TOKEN_NUMBER:  "NUMBER",
	TOKEN_STRING:  "STRING",

	TOKEN_PLUS:      "+",
	TOKEN_MINUS:     "-",
	TOKEN_STAR:      "*",
	TOKEN_SLASH:     "/",
	TOKEN_EQ:        "=",
	TOKEN_NE:        "!=",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LE:        "<=",
	TOKEN_GE:        ">=",
	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",

	TOKEN_AND:    "AND",
	TOKEN_CREATE: "CREATE",
	TOKEN_DELETE: "DELETE",
	TOKEN_DROP:   "DROP",
	TOKEN_FROM:   "FROM",
	TOKEN_INSERT: "INSERT",
	TOKEN_INT:    "INT",
	TOKEN_INTO:   "INTO",
	TOKEN_NOT:    "NOT",
	TOKEN_NULL:   "NULL",
	TOKEN_OR:     "OR",
	TOKEN_SELECT: "SELECT",
	TOKEN_SET:    "SET",
	TOKEN_TABLE:  "TABLE",
	TOKEN_TEXT:   "TEXT",
	TOKEN_UPDATE: "UPDATE",
	TOKEN_VALUES: "VALUES",
	TOKEN_WHERE:  "WHERE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":    TOKEN_AND,
	"create": TOKEN_CREATE,
	"delete": TOKEN_DELETE,
	"drop":   TOKEN_DROP,
	"from":   TOKEN_FROM,
	"insert": TOKEN_INSERT,
	"int":    TOKEN_INT,
	"into":   TOKEN_INTO,
	"not":    TOKEN_NOT,
	"null":   TOKEN_NULL,
	"or":     TOKEN_OR,
	"select": TOKEN_SELECT,
	"set":    TOKEN_SET,
	"table":  TOKEN_TABLE,
	"text":   TOKEN_TEXT,
	"update": TOKEN_UPDATE,
	"values": TOKEN_VALUES,
	"where":  TOKEN_WHERE,
}

// lookupKeyword returns the token type for the given lowercase identifier.
// Returns TOKEN_IDENT if it's not a keyword.
func lookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// Pos is a 1-based line/column position in the source text. Columns count
// bytes within the line.
type Pos struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its literal value and the position
// of its first byte in the input.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

// Precedence constants for operator precedence parsing (Pratt parser).
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, !=, <, >, <=, >=
	PrecedenceAddition   = 5 // +, -
	PrecedenceMultiply   = 6 // *, /
	PrecedenceUnary      = 7 // -, +, NOT (prefix)
)
