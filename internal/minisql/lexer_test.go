package minisql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Punctuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType TokenType
		wantLit  string
	}{
		{"plus", "+", TOKEN_PLUS, "+"},
		{"minus", "-", TOKEN_MINUS, "-"},
		{"star", "*", TOKEN_STAR, "*"},
		{"slash", "/", TOKEN_SLASH, "/"},
		{"eq", "=", TOKEN_EQ, "="},
		{"ne_bang", "!=", TOKEN_NE, "!="},
		{"ne_diamond", "<>", TOKEN_NE, "<>"},
		{"lt", "<", TOKEN_LT, "<"},
		{"gt", ">", TOKEN_GT, ">"},
		{"le", "<=", TOKEN_LE, "<="},
		{"ge", ">=", TOKEN_GE, ">="},
		{"comma", ",", TOKEN_COMMA, ","},
		{"semicolon", ";", TOKEN_SEMICOLON, ";"},
		{"lparen", "(", TOKEN_LPAREN, "("},
		{"rparen", ")", TOKEN_RPAREN, ")"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, tc.wantType, tok.Type, "token type")
			assert.Equal(t, tc.wantLit, tok.Literal, "token literal")
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLit string
	}{
		{"integer", "42", "42"},
		{"zero", "0", "0"},
		{"large_integer", "3000000000", "3000000000"},
		{"leading_zeros", "007", "007"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, TOKEN_NUMBER, tok.Type)
			assert.Equal(t, tc.wantLit, tok.Literal)
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLit string
	}{
		{"simple", "'hello'", "hello"},
		{"empty", "''", ""},
		{"with_spaces", "'hello world'", "hello world"},
		{"escaped_quote", "'it''s'", "it's"},
		{"double_escape", "'a''''b'", "a''b"},
		{"case_preserved", "'Alice'", "Alice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, TOKEN_STRING, tok.Type)
			assert.Equal(t, tc.wantLit, tok.Literal)
		})
	}
}

func TestLexer_QuotedIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLit string
	}{
		{"simple", `"foo"`, "foo"},
		{"mixed_case", `"FooBar"`, "FooBar"},
		{"with_spaces", `"foo bar"`, "foo bar"},
		{"escaped_quote", `"foo""bar"`, `foo"bar`},
		{"reserved_word", `"select"`, "select"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, TOKEN_IDENT, tok.Type)
			assert.Equal(t, tc.wantLit, tok.Literal)
		})
	}
}

func TestLexer_Keywords(t *testing.T) {
	tests := []struct {
		input    string
		wantType TokenType
	}{
		{"SELECT", TOKEN_SELECT},
		{"select", TOKEN_SELECT},
		{"Select", TOKEN_SELECT},
		{"INSERT", TOKEN_INSERT},
		{"INTO", TOKEN_INTO},
		{"VALUES", TOKEN_VALUES},
		{"CREATE", TOKEN_CREATE},
		{"TABLE", TOKEN_TABLE},
		{"DROP", TOKEN_DROP},
		{"UPDATE", TOKEN_UPDATE},
		{"SET", TOKEN_SET},
		{"DELETE", TOKEN_DELETE},
		{"FROM", TOKEN_FROM},
		{"WHERE", TOKEN_WHERE},
		{"AND", TOKEN_AND},
		{"OR", TOKEN_OR},
		{"NOT", TOKEN_NOT},
		{"NULL", TOKEN_NULL},
		{"INT", TOKEN_INT},
		{"TEXT", TOKEN_TEXT},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, tc.wantType, tok.Type)
		})
	}
}

func TestLexer_Identifiers(t *testing.T) {
	tests := []struct {
		input   string
		wantLit string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"col1", "col1"},
		{"my_table", "my_table"},
		// Unquoted identifiers fold to lower case.
		{"Students", "students"},
		{"NAME", "name"},
		// Any Unicode letter works, with rune-aware folding.
		{"café", "café"},
		{"Straße", "straße"},
		{"日本語", "日本語"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			l := NewLexer(tc.input)
			tok := l.NextToken()
			assert.Equal(t, TOKEN_IDENT, tok.Type)
			assert.Equal(t, tc.wantLit, tok.Literal)
		})
	}
}

func TestLexer_UnicodeIdentifierInStatement(t *testing.T) {
	l := NewLexer("CREATE TABLE café (id INT)")

	var types []TokenType
	var lits []string
	for {
		tok := l.NextToken()
		require.NoError(t, l.Err())
		if tok.Type == TOKEN_EOF {
			break
		}
		types = append(types, tok.Type)
		lits = append(lits, tok.Literal)
	}

	assert.Equal(t, []TokenType{
		TOKEN_CREATE, TOKEN_TABLE, TOKEN_IDENT,
		TOKEN_LPAREN, TOKEN_IDENT, TOKEN_INT, TOKEN_RPAREN,
	}, types)
	assert.Equal(t, "café", lits[2])
}

func TestLexer_Comments(t *testing.T) {
	t.Run("line_comment", func(t *testing.T) {
		l := NewLexer("-- this is a comment\nSELECT")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_SELECT, tok.Type)
	})

	t.Run("line_comment_at_eof", func(t *testing.T) {
		l := NewLexer("42 -- trailing")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_NUMBER, tok.Type)
		tok = l.NextToken()
		assert.Equal(t, TOKEN_EOF, tok.Type)
	})

	t.Run("block_comment", func(t *testing.T) {
		l := NewLexer("/* block comment */SELECT")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_SELECT, tok.Type)
	})

	t.Run("block_comment_multiline", func(t *testing.T) {
		l := NewLexer("/* multi\nline\ncomment */42")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_NUMBER, tok.Type)
		assert.Equal(t, "42", tok.Literal)
	})

	t.Run("block_comment_with_semicolon", func(t *testing.T) {
		l := NewLexer("/* a ; b */ 1")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_NUMBER, tok.Type)
	})

	t.Run("unterminated_block_comment", func(t *testing.T) {
		l := NewLexer("1 /* never closed")
		tok := l.NextToken()
		assert.Equal(t, TOKEN_NUMBER, tok.Type)
		tok = l.NextToken()
		assert.Equal(t, TOKEN_ILLEGAL, tok.Type)
		require.Error(t, l.Err())
		assert.Contains(t, l.Err().Error(), "unterminated block comment")
	})
}

func TestLexer_Whitespace(t *testing.T) {
	l := NewLexer("  \t\n\r  SELECT")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_SELECT, tok.Type)
}

func TestLexer_IllegalChar(t *testing.T) {
	l := NewLexer("@")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_ILLEGAL, tok.Type)

	err := l.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, Pos{Line: 1, Column: 1}, lexErr.Pos)
}

func TestLexer_BareBang(t *testing.T) {
	l := NewLexer("a ! b")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_IDENT, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, TOKEN_ILLEGAL, tok.Type)
	require.Error(t, l.Err())
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := NewLexer("SELECT 'abc")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_SELECT, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, TOKEN_ILLEGAL, tok.Type)

	var lexErr *LexError
	require.True(t, errors.As(l.Err(), &lexErr))
	assert.Contains(t, lexErr.Message, "unterminated string literal")
	// The error points at the opening quote.
	assert.Equal(t, Pos{Line: 1, Column: 8}, lexErr.Pos)
}

func TestLexer_EOF(t *testing.T) {
	l := NewLexer("")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_EOF, tok.Type)
	assert.NoError(t, l.Err())
}

func TestLexer_Positions(t *testing.T) {
	l := NewLexer("SELECT id\nFROM t")

	expected := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{TOKEN_SELECT, 1, 1},
		{TOKEN_IDENT, 1, 8},
		{TOKEN_FROM, 2, 1},
		{TOKEN_IDENT, 2, 6},
		{TOKEN_EOF, 2, 7},
	}

	for _, exp := range expected {
		tok := l.NextToken()
		assert.Equal(t, exp.typ, tok.Type)
		assert.Equal(t, exp.line, tok.Pos.Line, "line for %s", exp.typ)
		assert.Equal(t, exp.col, tok.Pos.Column, "column for %s", exp.typ)
	}
}

func TestLexer_CompleteStatement(t *testing.T) {
	l := NewLexer(`INSERT INTO Students (id, "Name") VALUES (1, 'Alice')`)

	expected := []struct {
		typ TokenType
		lit string
	}{
		{TOKEN_INSERT, "insert"},
		{TOKEN_INTO, "into"},
		{TOKEN_IDENT, "students"},
		{TOKEN_LPAREN, "("},
		{TOKEN_IDENT, "id"},
		{TOKEN_COMMA, ","},
		{TOKEN_IDENT, "Name"},
		{TOKEN_RPAREN, ")"},
		{TOKEN_VALUES, "values"},
		{TOKEN_LPAREN, "("},
		{TOKEN_NUMBER, "1"},
		{TOKEN_COMMA, ","},
		{TOKEN_STRING, "Alice"},
		{TOKEN_RPAREN, ")"},
		{TOKEN_EOF, ""},
	}

	for _, exp := range expected {
		tok := l.NextToken()
		assert.Equal(t, exp.typ, tok.Type, "type for %q", exp.lit)
		assert.Equal(t, exp.lit, tok.Literal, "literal")
	}
}

func TestLexer_ErrorSticks(t *testing.T) {
	l := NewLexer("@ SELECT")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_ILLEGAL, tok.Type)
	// Once the lexer has failed it keeps reporting ILLEGAL.
	tok = l.NextToken()
	assert.Equal(t, TOKEN_ILLEGAL, tok.Type)
	require.Error(t, l.Err())
}
