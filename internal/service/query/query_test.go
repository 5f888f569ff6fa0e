package query

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/domain"
	"minidb/internal/minisql"
	"minidb/internal/service/history"
	"minidb/internal/service/session"
)

func newTestService(t *testing.T) (*Service, *history.Service) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	sessions := session.NewManager(0, 0, logger)
	t.Cleanup(sessions.CloseAll)
	hist, err := history.New(100, logger)
	require.NoError(t, err)
	return New(sessions, hist, logger), hist
}

func mustExecute(t *testing.T, svc *Service, sessionID, sql string) *Result {
	t.Helper()
	res, err := svc.Execute(context.Background(), sessionID, sql)
	require.NoError(t, err, "statement: %s", sql)
	return res
}

func TestService_Execute(t *testing.T) {
	svc, _ := newTestService(t)

	res := mustExecute(t, svc, "", "CREATE TABLE t (a INT, b TEXT)")
	assert.Equal(t, "CREATE TABLE", res.Statement)
	assert.Equal(t, 0, res.RowCount)

	res = mustExecute(t, svc, "", "INSERT INTO t VALUES (1, 'one'), (2, 'two')")
	assert.Equal(t, 2, res.RowCount)

	res = mustExecute(t, svc, "", "SELECT b FROM t WHERE a = 2")
	assert.Equal(t, []string{"b"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, domain.NewText("two"), res.Rows[0][0])
	assert.GreaterOrEqual(t, res.DurationMs, int64(0))
}

func TestService_ExecuteValidation(t *testing.T) {
	svc, hist := newTestService(t)

	for _, sql := range []string{"", "   \n\t"} {
		_, err := svc.Execute(context.Background(), "", sql)
		require.Error(t, err)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	}

	// Rejected input never reaches the history log.
	assert.Equal(t, 0, hist.Len())
}

func TestService_ExecuteUnknownSession(t *testing.T) {
	svc, hist := newTestService(t)

	_, err := svc.Execute(context.Background(), "ghost", "SELECT 1")
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, hist.Len())
}

func TestService_ExecuteRecordsHistory(t *testing.T) {
	svc, hist := newTestService(t)

	// Lower-case input: the history keeps the canonical rendering.
	mustExecute(t, svc, "", "create table t (a int)")
	mustExecute(t, svc, "", "insert into t values (1)")

	entries, total, _ := hist.List(domain.HistoryFilter{})
	require.Equal(t, 2, total)

	newest := entries[0]
	assert.Equal(t, "INSERT INTO t VALUES (1)", newest.SQL)
	assert.Equal(t, "INSERT", newest.Statement)
	assert.Equal(t, domain.HistoryStatusSuccess, newest.Status)
	assert.Equal(t, "default", newest.SessionID)
	assert.Equal(t, "anonymous", newest.Principal)
	require.NotNil(t, newest.RowCount)
	assert.Equal(t, int64(1), *newest.RowCount)
	assert.Nil(t, newest.ErrorMessage)

	assert.Equal(t, "CREATE TABLE t (a INT)", entries[1].SQL)
}

func TestService_ExecuteRecordsFailures(t *testing.T) {
	svc, hist := newTestService(t)

	t.Run("parse error keeps raw sql", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), "", "SELECT FROM t")
		require.Error(t, err)
		var parseErr *minisql.ParseError
		assert.ErrorAs(t, err, &parseErr)

		entries, _, _ := hist.List(domain.HistoryFilter{})
		require.NotEmpty(t, entries)
		e := entries[0]
		assert.Equal(t, "SELECT FROM t", e.SQL)
		assert.Empty(t, e.Statement)
		assert.Equal(t, domain.HistoryStatusError, e.Status)
		require.NotNil(t, e.ErrorMessage)
		assert.Nil(t, e.RowCount)
	})

	t.Run("semantic error keeps statement kind", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), "", "SELECT * FROM missing")
		require.Error(t, err)
		var semErr *domain.SemanticError
		assert.ErrorAs(t, err, &semErr)

		entries, _, _ := hist.List(domain.HistoryFilter{})
		require.NotEmpty(t, entries)
		e := entries[0]
		assert.Equal(t, "SELECT", e.Statement)
		assert.Equal(t, domain.HistoryStatusError, e.Status)
		require.NotNil(t, e.ErrorMessage)
		assert.Contains(t, *e.ErrorMessage, `table "missing" does not exist`)
	})
}

func TestService_ExecutePrincipalFromContext(t *testing.T) {
	svc, hist := newTestService(t)

	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{Name: "alice", Type: "user"})
	_, err := svc.Execute(ctx, "", "CREATE TABLE t (a INT)")
	require.NoError(t, err)

	entries, _, _ := hist.List(domain.HistoryFilter{})
	require.NotEmpty(t, entries)
	assert.Equal(t, "alice", entries[0].Principal)
}

func TestService_ExecuteSessionScoping(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	sessions := session.NewManager(0, 0, logger)
	t.Cleanup(sessions.CloseAll)
	hist, err := history.New(100, logger)
	require.NoError(t, err)
	svc := New(sessions, hist, logger)

	_, err = sessions.Create(context.Background(), "other", "")
	require.NoError(t, err)

	mustExecute(t, svc, "other", "CREATE TABLE t (a INT)")

	// The default session has no such table.
	_, err = svc.Execute(context.Background(), "", "SELECT * FROM t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "t" does not exist`)

	strPtr := func(v string) *string { return &v }
	entries, total, _ := hist.List(domain.HistoryFilter{SessionID: strPtr("other")})
	assert.Equal(t, 1, total)
	require.NotEmpty(t, entries)
	assert.Equal(t, "CREATE TABLE", entries[0].Statement)
}

func TestService_ExecuteRejectsMultipleStatements(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Execute(context.Background(), "", "SELECT * FROM a; SELECT * FROM b")
	require.Error(t, err)
	var parseErr *minisql.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
