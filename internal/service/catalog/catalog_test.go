package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/domain"
	"minidb/internal/service/session"
)

func newTestService(t *testing.T) (*Service, *session.Manager) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	sessions := session.NewManager(0, 0, logger)
	t.Cleanup(sessions.CloseAll)
	return New(sessions, logger), sessions
}

func seed(t *testing.T, sessions *session.Manager, sessionID string, statements ...string) {
	t.Helper()
	s, err := sessions.Get(sessionID)
	require.NoError(t, err)
	for _, stmt := range statements {
		_, err := s.Engine().Execute(stmt)
		require.NoError(t, err, "statement: %s", stmt)
	}
}

func TestService_ListTables(t *testing.T) {
	svc, sessions := newTestService(t)

	got, err := svc.ListTables(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	seed(t, sessions, "",
		"CREATE TABLE users (id INT, name TEXT)",
		"CREATE TABLE events (id INT)",
		"INSERT INTO users VALUES (1, 'Ada')",
	)

	got, err = svc.ListTables(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.TableSummary{Name: "events", ColumnCount: 1, RowCount: 0}, got[0])
	assert.Equal(t, domain.TableSummary{Name: "users", ColumnCount: 2, RowCount: 1}, got[1])
}

func TestService_ListTablesUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListTables(context.Background(), "ghost")
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestService_DescribeTable(t *testing.T) {
	svc, sessions := newTestService(t)
	seed(t, sessions, "",
		"CREATE TABLE users (id INT, name TEXT)",
		"INSERT INTO users VALUES (1, 'Ada'), (2, 'Bob')",
	)

	info, err := svc.DescribeTable(context.Background(), "", "users")
	require.NoError(t, err)
	assert.Equal(t, "users", info.Name)
	assert.Equal(t, 2, info.RowCount)
	assert.Equal(t, "CREATE TABLE users (id INT, name TEXT)", info.DDL)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, domain.Column{Name: "id", Type: domain.KindInteger}, info.Columns[0])
}

func TestService_DescribeTableNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DescribeTable(context.Background(), "", "ghost")
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.DescribeTable(context.Background(), "ghost", "users")
	require.Error(t, err)
	assert.ErrorAs(t, err, &notFound)
}

func TestService_SessionScoping(t *testing.T) {
	svc, sessions := newTestService(t)

	_, err := sessions.Create(context.Background(), "etl", "")
	require.NoError(t, err)
	seed(t, sessions, "etl", "CREATE TABLE staged (id INT)")

	got, err := svc.ListTables(context.Background(), "etl")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListTables(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
