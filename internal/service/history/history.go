// Package history keeps a bounded, in-memory record of executed statements.
package history

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"minidb/internal/domain"
)

// Service stores the most recent execution records in an LRU keyed by a
// monotonic id. Entries are only ever added, never re-touched, so eviction
// order equals insertion order and the cache behaves as a ring of the last
// N executions.
type Service struct {
	entries *lru.Cache[int64, domain.HistoryEntry]
	nextID  atomic.Int64
	logger  *slog.Logger
}

// New creates a Service bounded to capacity entries.
func New(capacity int, logger *slog.Logger) (*Service, error) {
	c, err := lru.New[int64, domain.HistoryEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("history cache: %w", err)
	}
	return &Service{entries: c, logger: logger}, nil
}

// Record stores one execution record and returns its assigned id.
func (s *Service) Record(e domain.HistoryEntry) int64 {
	e.ID = s.nextID.Add(1)
	if s.entries.Add(e.ID, e) {
		s.logger.Debug("history at capacity, oldest entry evicted")
	}
	return e.ID
}

// List returns matching entries newest first, along with the total number of
// matches and the next page token (empty when the listing is exhausted).
func (s *Service) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, int, string) {
	keys := s.entries.Keys()

	matched := make([]domain.HistoryEntry, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		e, ok := s.entries.Peek(keys[i])
		if !ok {
			// Evicted between Keys and Peek.
			continue
		}
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	offset := filter.Page.Offset()
	limit := filter.Page.Limit()
	total := len(matched)

	if offset >= total {
		return []domain.HistoryEntry{}, total, ""
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, domain.NextPageToken(offset, limit, total)
}

// Len reports how many entries are currently retained.
func (s *Service) Len() int {
	return s.entries.Len()
}
