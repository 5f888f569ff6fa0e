package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minidb/internal/domain"
)

type createSessionRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type sessionInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	Statements int64     `json:"statements"`
	Tables     int       `json:"tables"`
}

type sessionListResponse struct {
	Sessions []sessionInfo `json:"sessions"`
}

// CreateSession creates a new isolated session. The ID is generated when
// the request does not supply one.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid request body: " + err.Error(),
			})
			return
		}
	}

	info, err := h.sessions.Create(r.Context(), req.ID, req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToAPI(info))
}

// ListSessions returns all live sessions, oldest first.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.List()
	resp := sessionListResponse{Sessions: make([]sessionInfo, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, sessionToAPI(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CloseSession discards a session and every table in it.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sessionToAPI(s domain.Session) sessionInfo {
	return sessionInfo{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		LastUsedAt: s.LastUsedAt,
		Statements: s.Statements,
		Tables:     s.Tables,
	}
}
