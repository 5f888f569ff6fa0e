package app

import (
	"fmt"
	"log/slog"
	"os"

	"minidb/internal/domain"
	"minidb/internal/minisql"
	"minidb/internal/service/session"
)

// seedDefaultSession executes every statement in the file against the
// default session. A failing statement aborts startup so a broken seed
// file is caught immediately rather than serving a half-seeded database.
func seedDefaultSession(sessions *session.Manager, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	stmts, err := minisql.SplitStatements(string(data))
	if err != nil {
		return err
	}

	sess, err := sessions.Get(domain.DefaultSessionID)
	if err != nil {
		return err
	}

	for i, stmt := range stmts {
		if _, err := sess.Engine().Execute(stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}

	logger.Info("seed file applied", "path", path, "statements", len(stmts))
	return nil
}
