// Package catalog answers schema introspection requests against session
// engines.
package catalog

import (
	"context"
	"log/slog"

	"minidb/internal/domain"
	"minidb/internal/service/session"
)

// Service lists and describes the tables of a session.
type Service struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// New creates a catalog Service.
func New(sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{sessions: sessions, logger: logger}
}

// ListTables returns the session's tables sorted by name.
func (s *Service) ListTables(_ context.Context, sessionID string) ([]domain.TableSummary, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine().Tables(), nil
}

// DescribeTable returns the schema, row count, and canonical DDL of one
// table. Unknown tables are not found at this surface, unlike statement
// execution where they are semantic errors.
func (s *Service) DescribeTable(_ context.Context, sessionID, table string) (*domain.TableInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine().Describe(table)
}
