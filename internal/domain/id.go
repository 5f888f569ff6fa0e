package domain

import "github.com/google/uuid"

// NewID generates a UUIDv7 string for application-owned entities such as
// sessions. V7 IDs sort by creation time.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
