package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all endpoints on the router. Health and version
// stay public; everything under /v1 runs behind the given auth middleware
// (nil mounts /v1 unauthenticated, for development).
func MountRoutes(r chi.Router, h *Handler, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/healthz", h.Healthz)
	r.Get("/version", h.Version)

	r.Route("/v1", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Post("/query", h.ExecuteQuery)
		r.Get("/tables", h.ListTables)
		r.Get("/tables/{table}", h.DescribeTable)
		r.Get("/history", h.ListHistory)
		r.Post("/sessions", h.CreateSession)
		r.Get("/sessions", h.ListSessions)
		r.Delete("/sessions/{id}", h.CloseSession)
	})
}
