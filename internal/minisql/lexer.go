package minisql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes SQL input in a single left-to-right scan. After an error
// it keeps returning TOKEN_ILLEGAL and Err reports the cause; there is no
// recovery. A fresh Lexer restarts from the beginning of the text.
type Lexer struct {
	input      string
	pos        int  // current position in input
	readPos    int  // reading position (after current char)
	ch         byte // current char under examination
	line       int  // 1-based line of the current char
	col        int  // 1-based column of the current char
	tokenStart int  // byte offset of the last token's first char
	err        *LexError
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Err returns the lex error encountered so far, if any.
func (l *Lexer) Err() error {
	if l.err != nil {
		return l.err
	}
	return nil
}

// readChar advances to the next character, maintaining line/column.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) position() Pos {
	return Pos{Line: l.line, Column: l.col}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	if l.err != nil {
		return Token{Type: TOKEN_ILLEGAL, Pos: l.err.Pos}
	}

	l.skipWhitespaceAndComments()
	if l.err != nil {
		return Token{Type: TOKEN_ILLEGAL, Pos: l.err.Pos}
	}

	l.tokenStart = l.pos
	pos := l.position()
	var tok Token

	switch l.ch {
	case 0:
		return Token{Type: TOKEN_EOF, Pos: pos}
	case '+':
		tok = Token{Type: TOKEN_PLUS, Literal: "+", Pos: pos}
	case '-':
		tok = Token{Type: TOKEN_MINUS, Literal: "-", Pos: pos}
	case '*':
		tok = Token{Type: TOKEN_STAR, Literal: "*", Pos: pos}
	case '/':
		tok = Token{Type: TOKEN_SLASH, Literal: "/", Pos: pos}
	case '=':
		tok = Token{Type: TOKEN_EQ, Literal: "=", Pos: pos}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: TOKEN_LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = Token{Type: TOKEN_NE, Literal: "<>", Pos: pos}
		default:
			tok = Token{Type: TOKEN_LT, Literal: "<", Pos: pos}
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TOKEN_GE, Literal: ">=", Pos: pos}
		} else {
			tok = Token{Type: TOKEN_GT, Literal: ">", Pos: pos}
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TOKEN_NE, Literal: "!=", Pos: pos}
		} else {
			l.err = errLex(pos, "unexpected character %q", string(l.ch))
			tok = Token{Type: TOKEN_ILLEGAL, Literal: string(l.ch), Pos: pos}
		}
	case ',':
		tok = Token{Type: TOKEN_COMMA, Literal: ",", Pos: pos}
	case ';':
		tok = Token{Type: TOKEN_SEMICOLON, Literal: ";", Pos: pos}
	case '(':
		tok = Token{Type: TOKEN_LPAREN, Literal: "(", Pos: pos}
	case ')':
		tok = Token{Type: TOKEN_RPAREN, Literal: ")", Pos: pos}
	case '\'':
		lit := l.readString()
		if l.err != nil {
			return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
		}
		return Token{Type: TOKEN_STRING, Literal: lit, Pos: pos}
	case '"':
		lit := l.readQuotedIdentifier()
		if l.err != nil {
			return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
		}
		return Token{Type: TOKEN_IDENT, Literal: lit, Pos: pos}
	default:
		r, _ := l.currentRune()
		switch {
		case isLetter(r) || r == '_':
			// Unquoted identifiers are case-insensitive: fold to lower
			// case so lookups and keyword recognition agree.
			literal := strings.ToLower(l.readIdentifier())
			return Token{Type: lookupKeyword(literal), Literal: literal, Pos: pos}
		case isDigit(l.ch):
			return Token{Type: TOKEN_NUMBER, Literal: l.readNumber(), Pos: pos}
		default:
			l.err = errLex(pos, "unexpected character %q", string(r))
			tok = Token{Type: TOKEN_ILLEGAL, Literal: string(r), Pos: pos}
		}
	}

	l.readChar()
	return tok
}

// skipWhitespaceAndComments skips whitespace and SQL comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		// Line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		// Block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			opening := l.position()
			l.readChar() // skip /
			l.readChar() // skip *
			terminated := false
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip *
					l.readChar() // skip /
					terminated = true
					break
				}
				l.readChar()
			}
			if !terminated {
				l.err = errLex(opening, "unterminated block comment")
				return
			}
			continue
		}
		break
	}
}

// readString reads a single-quoted string literal.
// Handles '' escape for embedded quotes.
func (l *Lexer) readString() string {
	opening := l.position()
	l.readChar() // skip opening quote
	var result strings.Builder
	for {
		if l.ch == 0 {
			l.err = errLex(opening, "unterminated string literal")
			return result.String()
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				result.WriteByte('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return result.String()
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
}

// readQuotedIdentifier reads a double-quoted identifier, preserving case.
// Handles "" escape for embedded double quotes.
func (l *Lexer) readQuotedIdentifier() string {
	opening := l.position()
	l.readChar() // skip opening quote
	var result strings.Builder
	for {
		if l.ch == 0 {
			l.err = errLex(opening, "unterminated quoted identifier")
			return result.String()
		}
		if l.ch == '"' {
			if l.peekChar() == '"' {
				result.WriteByte('"')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return result.String()
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
}

// readIdentifier reads an unquoted identifier. The scan is rune-wise so
// identifiers may contain any Unicode letter or digit, not just ASCII.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for {
		r, size := l.currentRune()
		if !isLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		for i := 0; i < size; i++ {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer literal. There are no floats in this dialect;
// a '.' after the digits is left for the next token and rejected there.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// currentRune decodes the rune starting at the current position. ASCII
// bytes (including the NUL end marker) decode to themselves without
// touching the input.
func (l *Lexer) currentRune() (rune, int) {
	if l.ch < utf8.RuneSelf {
		return rune(l.ch), 1
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
