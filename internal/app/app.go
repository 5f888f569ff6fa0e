// Package app wires configuration, sessions, services, and the background
// scheduler into a runnable application.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"minidb/internal/config"
	"minidb/internal/service/catalog"
	"minidb/internal/service/history"
	"minidb/internal/service/query"
	"minidb/internal/service/scheduler"
	"minidb/internal/service/session"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Query   *query.Service
	Catalog *catalog.Service
	History *history.Service
}

// App holds the fully wired application.
type App struct {
	Services  Services
	Sessions  *session.Manager
	Scheduler *scheduler.Scheduler
}

// New wires sessions, history, and services from the provided deps, registers
// the idle-session sweep, and applies the seed file when one is configured.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	sessions := session.NewManager(cfg.SessionTTL, cfg.SessionMax, deps.Logger.With("component", "sessions"))

	hist, err := history.New(cfg.HistorySize, deps.Logger.With("component", "history"))
	if err != nil {
		return nil, err
	}

	querySvc := query.New(sessions, hist, deps.Logger.With("component", "query"))
	catalogSvc := catalog.New(sessions, deps.Logger.With("component", "catalog"))

	sched := scheduler.New(deps.Logger.With("component", "scheduler"))
	if cfg.SessionTTL > 0 {
		err := sched.Register("session-sweep", cfg.SessionSweep, func() {
			sessions.ReapIdle(time.Now())
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.SeedFile != "" {
		if err := seedDefaultSession(sessions, cfg.SeedFile, deps.Logger); err != nil {
			return nil, fmt.Errorf("seed from %s: %w", cfg.SeedFile, err)
		}
	}

	return &App{
		Services:  Services{Query: querySvc, Catalog: catalogSvc, History: hist},
		Sessions:  sessions,
		Scheduler: sched,
	}, nil
}
