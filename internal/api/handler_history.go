package api

import (
	"net/http"
	"strconv"
	"time"

	"minidb/internal/domain"
)

type historyEntry struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Principal    string    `json:"principal"`
	SQL          string    `json:"sql"`
	Statement    string    `json:"statement,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	RowCount     *int64    `json:"row_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type historyListResponse struct {
	Entries       []historyEntry `json:"entries"`
	Total         int            `json:"total"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// ListHistory returns executed statements, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.HistoryFilter{
		SessionID: optParam(q.Get("session")),
		Status:    optParam(q.Get("status")),
		Statement: optParam(q.Get("statement")),
	}
	filter.Page.PageToken = q.Get("page_token")
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, domain.ErrValidation("max_results must be an integer, got %q", raw))
			return
		}
		filter.Page.MaxResults = n
	}

	entries, total, nextToken := h.history.List(filter)

	resp := historyListResponse{
		Entries:       make([]historyEntry, 0, len(entries)),
		Total:         total,
		NextPageToken: nextToken,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, historyEntry{
			ID:           e.ID,
			SessionID:    e.SessionID,
			Principal:    e.Principal,
			SQL:          e.SQL,
			Statement:    e.Statement,
			Status:       e.Status,
			ErrorMessage: e.ErrorMessage,
			DurationMs:   e.DurationMs,
			RowCount:     e.RowCount,
			CreatedAt:    e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// optParam converts an absent query parameter to a nil filter field.
func optParam(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
