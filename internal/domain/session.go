package domain

import "time"

// DefaultSessionID names the implicit session used by requests that do not
// create one. It always exists and is never reaped.
const DefaultSessionID = "default"

// Session is one named database instance with its own tables. Sessions are
// isolated from each other; statements run in exactly one session.
type Session struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	LastUsedAt time.Time
	Statements int64 // number of statements executed in this session
	Tables     int   // current table count
}
