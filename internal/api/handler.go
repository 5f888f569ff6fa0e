// Package api exposes the SQL service over HTTP as JSON endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"minidb/internal/middleware"
	"minidb/internal/service/catalog"
	"minidb/internal/service/history"
	"minidb/internal/service/query"
	"minidb/internal/service/session"
)

// Handler holds the service dependencies for all HTTP endpoints.
type Handler struct {
	query    *query.Service
	catalog  *catalog.Service
	history  *history.Service
	sessions *session.Manager
	logger   *slog.Logger
	version  string
	started  time.Time
}

// NewHandler creates the API handler.
func NewHandler(
	querySvc *query.Service,
	catalogSvc *catalog.Service,
	historySvc *history.Service,
	sessions *session.Manager,
	version string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		query:    querySvc,
		catalog:  catalogSvc,
		history:  historySvc,
		sessions: sessions,
		logger:   logger,
		version:  version,
		started:  time.Now(),
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}

// Version reports the build version.
func (h *Handler) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"version": h.version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error to a status code and JSON body, logging only
// the ones that indicate a bug rather than bad input.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponseFrom(err)
	if resp.Code == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, resp.Code, resp)
}
