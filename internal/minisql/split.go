package minisql

import "strings"

// SplitStatements splits script text into one element per statement,
// cutting on top-level semicolons. The scan runs on lexer output, so
// semicolons inside string literals, quoted identifiers, and comments do
// not split. Empty statements between semicolons are dropped. Each
// element keeps its original spelling minus the terminating semicolon and
// surrounding whitespace.
func SplitStatements(input string) ([]string, error) {
	l := NewLexer(input)
	var stmts []string
	start := -1 // offset of the current statement's first token, -1 between statements
	end := 0
	for {
		tok := l.NextToken()
		if err := l.Err(); err != nil {
			return nil, err
		}
		switch tok.Type {
		case TOKEN_EOF:
			if start >= 0 {
				stmts = append(stmts, strings.TrimSpace(input[start:end]))
			}
			return stmts, nil
		case TOKEN_SEMICOLON:
			if start >= 0 {
				stmts = append(stmts, strings.TrimSpace(input[start:end]))
				start = -1
			}
		default:
			if start < 0 {
				start = l.tokenStart
			}
			end = l.pos
		}
	}
}
