// Package query executes SQL statements against session engines, timing each
// call and recording it in the history log.
package query

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"minidb/internal/domain"
	"minidb/internal/minisql"
	"minidb/internal/service/history"
	"minidb/internal/service/session"
)

// Result is the structured output of one executed statement.
type Result struct {
	Columns    []string
	Rows       [][]domain.Value
	RowCount   int
	Statement  string
	DurationMs int64
}

// Service parses and executes statements, one per call. Statement scripts
// are split by the caller with minisql.SplitStatements.
type Service struct {
	sessions *session.Manager
	history  *history.Service
	logger   *slog.Logger
}

// New creates a query Service.
func New(sessions *session.Manager, hist *history.Service, logger *slog.Logger) *Service {
	return &Service{sessions: sessions, history: hist, logger: logger}
}

// Execute runs one SQL statement in the given session. Every call leaves a
// history entry, success or not. The recorded SQL is the canonical rendering
// when the text parsed, the raw text otherwise.
func (s *Service) Execute(ctx context.Context, sessionID, sqlText string) (*Result, error) {
	if strings.TrimSpace(sqlText) == "" {
		return nil, domain.ErrValidation("sql statement is required")
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	principal := "anonymous"
	if p, ok := domain.PrincipalFromContext(ctx); ok {
		principal = p.Name
	}

	start := time.Now()

	recorded := sqlText
	kind := ""
	var res *domain.Result

	stmt, err := minisql.Parse(sqlText)
	if err == nil {
		recorded = minisql.Format(stmt)
		kind = minisql.StatementKind(stmt)
		res, err = sess.Engine().ExecuteStmt(stmt)
	}
	durationMs := time.Since(start).Milliseconds()

	sess.RecordStatement()

	if err != nil {
		s.record(sess.ID(), principal, recorded, kind, durationMs, nil, err)
		s.logger.Warn("statement failed",
			"session", sess.ID(),
			"principal", principal,
			"statement", kind,
			"duration_ms", durationMs,
			"error", err,
		)
		return nil, err
	}

	rowCount := int64(res.RowCount)
	s.record(sess.ID(), principal, recorded, kind, durationMs, &rowCount, nil)
	s.logger.Info("statement executed",
		"session", sess.ID(),
		"principal", principal,
		"statement", kind,
		"rows", res.RowCount,
		"duration_ms", durationMs,
	)

	return &Result{
		Columns:    res.Columns,
		Rows:       res.Rows,
		RowCount:   res.RowCount,
		Statement:  res.Statement,
		DurationMs: durationMs,
	}, nil
}

func (s *Service) record(sessionID, principal, sqlText, kind string, durationMs int64, rowCount *int64, execErr error) {
	e := domain.HistoryEntry{
		SessionID:  sessionID,
		Principal:  principal,
		SQL:        sqlText,
		Statement:  kind,
		Status:     domain.HistoryStatusSuccess,
		DurationMs: durationMs,
		RowCount:   rowCount,
		CreatedAt:  time.Now(),
	}
	if execErr != nil {
		msg := execErr.Error()
		e.Status = domain.HistoryStatusError
		e.ErrorMessage = &msg
	}
	s.history.Record(e)
}
