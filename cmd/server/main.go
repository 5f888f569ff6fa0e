// Package main is the entry point for the minidb server binary.
// The server loads MINIDB_* configuration, wires the SQL engine and its
// services, and serves them over HTTP with JWT or API-key authentication.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"minidb/internal/api"
	"minidb/internal/app"
	"minidb/internal/config"
	"minidb/internal/middleware"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	a, err := app.New(app.Deps{Cfg: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer a.Sessions.CloseAll()

	a.Scheduler.Start()
	defer a.Scheduler.Stop()

	handler := api.NewHandler(
		a.Services.Query,
		a.Services.Catalog,
		a.Services.History,
		a.Sessions,
		version,
		logger.With("component", "api"),
	)

	// With auth disabled every request runs as the anonymous principal, so
	// no middleware is mounted at all.
	var authMiddleware func(http.Handler) http.Handler
	if !cfg.AuthDisabled {
		validator, err := middleware.NewHS256Validator([]byte(cfg.JWTSecret))
		if err != nil {
			return fmt.Errorf("auth: %w", err)
		}
		authMiddleware = middleware.Auth(validator, cfg.APIKeys)
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	api.MountRoutes(r, handler, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("minidb listening", "addr", cfg.ListenAddr, "version", version)
	logger.Info(fmt.Sprintf("Try: curl -s -X POST http://%s/v1/query -H 'Authorization: Bearer <jwt>' -d '{\"sql\": \"CREATE TABLE t (id INT)\"}'",
		curlHostForListenAddr(cfg.ListenAddr)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newLogger builds the process logger: JSON in production, text for
// development.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// curlHostForListenAddr turns a listen address into a host suitable for a
// copy-pasteable curl example. Wildcard and empty hosts become localhost.
func curlHostForListenAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
