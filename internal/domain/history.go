package domain

import "time"

// History entry statuses.
const (
	HistoryStatusSuccess = "success"
	HistoryStatusError   = "error"
)

// HistoryEntry records a single statement execution.
type HistoryEntry struct {
	ID           int64
	SessionID    string
	Principal    string
	SQL          string
	Statement    string // SQL verb, empty when the text did not parse
	Status       string
	ErrorMessage *string
	DurationMs   int64
	RowCount     *int64
	CreatedAt    time.Time
}

// HistoryFilter holds filter parameters for listing history entries.
type HistoryFilter struct {
	SessionID *string
	Status    *string
	Statement *string
	Page      PageRequest
}

// Matches reports whether the entry passes every set filter field.
func (f HistoryFilter) Matches(e HistoryEntry) bool {
	if f.SessionID != nil && e.SessionID != *f.SessionID {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.Statement != nil && e.Statement != *f.Statement {
		return false
	}
	return true
}
