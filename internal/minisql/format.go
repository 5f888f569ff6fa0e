package minisql

import (
	"strings"
)

// Format formats a statement AST back to canonical SQL: upper-case
// keywords, single spaces, no trailing semicolon. Identifiers are quoted
// only when their spelling would not survive a round trip through the
// lexer's case folding.
func Format(stmt Stmt) string {
	f := &formatter{}
	f.formatStmt(stmt)
	return strings.TrimSpace(f.buf.String())
}

// FormatExpr formats an expression AST back to a SQL string.
func FormatExpr(expr Expr) string {
	f := &formatter{}
	f.formatExpr(expr)
	return strings.TrimSpace(f.buf.String())
}

// formatter is a simple SQL string builder. No indentation or pretty-printing.
type formatter struct {
	buf strings.Builder
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *formatter) space() {
	f.buf.WriteByte(' ')
}

// quoteIdent quotes an identifier when needed. Internal double quotes are
// escaped by doubling.
func quoteIdent(s string) string {
	if identNeedsQuoting(s) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// identNeedsQuoting reports whether the stored name must be double-quoted
// to reparse to the same name: keywords, empty names, names that do not
// match [a-z_][a-z0-9_]* (anything else was quoted in the source).
func identNeedsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if _, isKeyword := keywords[s]; isKeyword {
		return true
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch == '_':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// writeIdent writes an identifier, quoting when needed.
func (f *formatter) writeIdent(s string) {
	f.write(quoteIdent(s))
}

// commaSep writes items separated by ", ".
func (f *formatter) commaSep(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			f.write(", ")
		}
		fn(i)
	}
}
