package api

import (
	"encoding/json"
	"net/http"

	"minidb/internal/domain"
)

type queryRequest struct {
	SQL     string `json:"sql"`
	Session string `json:"session,omitempty"`
}

type queryResponse struct {
	Columns    []string         `json:"columns"`
	Rows       [][]domain.Value `json:"rows"`
	RowCount   int              `json:"row_count"`
	Statement  string           `json:"statement"`
	DurationMs int64            `json:"duration_ms"`
}

// ExecuteQuery runs one SQL statement in the requested session.
func (h *Handler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.query.Execute(r.Context(), req.Session, req.SQL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := queryResponse{
		Columns:    result.Columns,
		Rows:       result.Rows,
		RowCount:   result.RowCount,
		Statement:  result.Statement,
		DurationMs: result.DurationMs,
	}
	// Mutation results carry no row set; keep the JSON arrays non-null.
	if resp.Columns == nil {
		resp.Columns = []string{}
	}
	if resp.Rows == nil {
		resp.Rows = [][]domain.Value{}
	}
	writeJSON(w, http.StatusOK, resp)
}
