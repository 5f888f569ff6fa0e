package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl(t *testing.T, srv *httptest.Server, format string) (*repl, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &repl{
		client: NewClient(srv.URL, "", ""),
		out:    &out,
		format: format,
	}, &out
}

func TestRepl_ExecutesStatement(t *testing.T) {
	rec := &requestRecorder{}
	resp := `{"columns":["id","name"],"rows":[[1,"Alice"]],"row_count":1,"statement":"SELECT"}`
	srv := httptest.NewServer(jsonHandler(rec, 200, resp))
	defer srv.Close()

	r, out := newTestRepl(t, srv, "table")
	require.NoError(t, r.run(strings.NewReader("SELECT * FROM students;\n")))

	assert.Contains(t, out.String(), "Alice")
	assert.Contains(t, rec.last().Body, "SELECT * FROM students")
}

func TestRepl_StatementSpansLines(t *testing.T) {
	rec := &requestRecorder{}
	resp := `{"columns":[],"rows":[],"row_count":1,"statement":"INSERT"}`
	srv := httptest.NewServer(jsonHandler(rec, 200, resp))
	defer srv.Close()

	r, _ := newTestRepl(t, srv, "table")
	input := "INSERT INTO t\nVALUES (1);\n"
	require.NoError(t, r.run(strings.NewReader(input)))

	// The newline inside the statement survives into the request, where
	// JSON encoding escapes it.
	assert.Contains(t, rec.last().Body, `INSERT INTO t\nVALUES (1)`)
}

func TestRepl_HonorsOutputFormat(t *testing.T) {
	rec := &requestRecorder{}
	resp := `{"columns":["n"],"rows":[[7]],"row_count":1,"statement":"SELECT","duration_ms":0}`
	srv := httptest.NewServer(jsonHandler(rec, 200, resp))
	defer srv.Close()

	r, out := newTestRepl(t, srv, "json")
	require.NoError(t, r.run(strings.NewReader("SELECT n FROM t;\n")))

	var parsed QueryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	assert.Equal(t, []string{"n"}, parsed.Columns)
	assert.Equal(t, 1, parsed.RowCount)
}

func TestRepl_Quit(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(&requestRecorder{}, 200, `{}`))
	defer srv.Close()

	r, out := newTestRepl(t, srv, "table")
	// Everything after \q is never read.
	require.NoError(t, r.run(strings.NewReader("\\q\nSELECT * FROM t;\n")))
	assert.Empty(t, out.String())
}

func TestRepl_UnknownMeta(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(&requestRecorder{}, 200, `{}`))
	defer srv.Close()

	r, out := newTestRepl(t, srv, "table")
	require.NoError(t, r.run(strings.NewReader("\\frobnicate\n")))
	assert.Contains(t, out.String(), `unknown command "\\frobnicate"`)
}
