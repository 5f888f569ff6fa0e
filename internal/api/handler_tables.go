package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"minidb/internal/domain"
)

type tableSummary struct {
	Name        string `json:"name"`
	ColumnCount int    `json:"column_count"`
	RowCount    int    `json:"row_count"`
}

type tableListResponse struct {
	Tables []tableSummary `json:"tables"`
}

type columnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type tableDetailResponse struct {
	Name     string       `json:"name"`
	Columns  []columnInfo `json:"columns"`
	RowCount int          `json:"row_count"`
	DDL      string       `json:"ddl"`
}

// ListTables returns every table in the session, sorted by name.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.catalog.ListTables(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := tableListResponse{Tables: make([]tableSummary, 0, len(tables))}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, tableSummary{
			Name:        t.Name,
			ColumnCount: t.ColumnCount,
			RowCount:    t.RowCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// DescribeTable returns one table's columns, row count, and canonical DDL.
func (h *Handler) DescribeTable(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.DescribeTable(r.Context(), r.URL.Query().Get("session"), chi.URLParam(r, "table"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tableInfoToAPI(info))
}

func tableInfoToAPI(info *domain.TableInfo) tableDetailResponse {
	cols := make([]columnInfo, 0, len(info.Columns))
	for _, c := range info.Columns {
		cols = append(cols, columnInfo{Name: c.Name, Type: c.Type.String()})
	}
	return tableDetailResponse{
		Name:     info.Name,
		Columns:  cols,
		RowCount: info.RowCount,
		DDL:      info.DDL,
	}
}
