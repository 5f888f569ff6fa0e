package api

import (
	"errors"
	"net/http"

	"minidb/internal/domain"
	"minidb/internal/minisql"
)

// errorResponse is the JSON body for every non-2xx response. Kind, Line,
// and Column are set only for statement errors.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// errorResponseFrom maps domain and statement errors to HTTP responses.
// Statement errors are the client's fault and map to 400 with enough
// structure to point at the offending input.
func errorResponseFrom(err error) errorResponse {
	var lexErr *minisql.LexError
	var parseErr *minisql.ParseError
	var semantic *domain.SemanticError
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &lexErr):
		return errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    "lex",
			Line:    lexErr.Pos.Line,
			Column:  lexErr.Pos.Column,
		}
	case errors.As(err, &parseErr):
		return errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    "parse",
			Line:    parseErr.Pos.Line,
			Column:  parseErr.Pos.Column,
		}
	case errors.As(err, &semantic):
		return errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    "semantic",
		}
	case errors.As(err, &validation):
		return errorResponse{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.As(err, &notFound):
		return errorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.As(err, &conflict):
		return errorResponse{Code: http.StatusConflict, Message: err.Error()}
	default:
		return errorResponse{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}
