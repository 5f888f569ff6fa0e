package minisql

import "fmt"

// LexError reports an input character the lexer cannot tokenize or a
// construct that never terminates (string literal, quoted identifier,
// block comment). Pos points at the offending character or at the opening
// delimiter of the unterminated construct.
type LexError struct {
	Pos     Pos
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// errLex creates a LexError with a formatted message.
func errLex(pos Pos, format string, args ...interface{}) *LexError {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseError reports an unexpected or missing token. Pos points at the
// token the parser was looking at when it failed.
type ParseError struct {
	Pos     Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}

// errParse creates a ParseError with a formatted message.
func errParse(pos Pos, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
