// Package session manages named sessions, each owning an isolated in-memory
// database and its engine. A default session always exists; created sessions
// idle out after a TTL enforced by a periodic sweep.
package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"minidb/internal/domain"
	"minidb/internal/engine"
)

// Session is the live handle for one session: its engine plus bookkeeping.
type Session struct {
	id         string
	name       string
	eng        *engine.Engine
	createdAt  time.Time
	lastUsed   atomic.Value // stores time.Time
	statements atomic.Int64
}

func newSession(id, name string) *Session {
	now := time.Now()
	s := &Session{id: id, name: name, eng: engine.New(), createdAt: now}
	s.setLastUsed(now)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Engine returns the session's engine.
func (s *Session) Engine() *engine.Engine { return s.eng }

// RecordStatement bumps the statement counter. Failed statements count too.
func (s *Session) RecordStatement() { s.statements.Add(1) }

// getLastUsed returns the session's last-used time safely via atomic.Value.
func (s *Session) getLastUsed() time.Time {
	if v := s.lastUsed.Load(); v != nil {
		return v.(time.Time)
	}
	return s.createdAt
}

// setLastUsed stores the session's last-used time safely via atomic.Value.
func (s *Session) setLastUsed(t time.Time) {
	s.lastUsed.Store(t)
}

// Info returns a point-in-time snapshot for API responses.
func (s *Session) Info() domain.Session {
	return domain.Session{
		ID:         s.id,
		Name:       s.name,
		CreatedAt:  s.createdAt,
		LastUsedAt: s.getLastUsed(),
		Statements: s.statements.Load(),
		Tables:     len(s.eng.Tables()),
	}
}

// Manager owns every live session. The default session is created up front,
// cannot be closed, and is never reaped.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	logger   *slog.Logger
}

// NewManager creates a Manager holding only the default session. A ttl of
// zero disables reaping; a max of zero disables the session cap.
func NewManager(ttl time.Duration, max int, logger *slog.Logger) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		logger:   logger,
	}
	m.sessions[domain.DefaultSessionID] = newSession(domain.DefaultSessionID, "default session")
	return m
}

// Create registers a new session with an empty database. An empty id picks a
// generated one; a taken id is a conflict.
func (m *Manager) Create(_ context.Context, id, name string) (domain.Session, error) {
	if id == "" {
		id = domain.NewID()
	}

	m.mu.Lock()
	if m.max > 0 && len(m.sessions) >= m.max {
		m.mu.Unlock()
		return domain.Session{}, domain.ErrValidation("session limit reached (%d)", m.max)
	}
	if _, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return domain.Session{}, domain.ErrConflict("session %q already exists", id)
	}
	s := newSession(id, name)
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session", id)
	return s.Info(), nil
}

// Get returns the live session and marks it used. An empty id resolves to
// the default session.
func (m *Manager) Get(id string) (*Session, error) {
	if id == "" {
		id = domain.DefaultSessionID
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound("session %q not found", id)
	}

	s.setLastUsed(time.Now())
	return s, nil
}

// Close discards a session and its database. The default session cannot be
// closed.
func (m *Manager) Close(id string) error {
	if id == domain.DefaultSessionID {
		return domain.ErrValidation("the default session cannot be closed")
	}

	m.mu.Lock()
	if _, ok := m.sessions[id]; !ok {
		m.mu.Unlock()
		return domain.ErrNotFound("session %q not found", id)
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	m.logger.Info("session closed", "session", id)
	return nil
}

// List returns snapshots of all sessions in creation order.
func (m *Manager) List() []domain.Session {
	m.mu.RLock()
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ReapIdle discards sessions idle longer than the TTL, measured against the
// given time, and returns how many were removed. Stale sessions are collected
// under the lock and logged after releasing it.
func (m *Manager) ReapIdle(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if id == domain.DefaultSessionID {
			continue
		}
		if s.getLastUsed().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		m.logger.Info("idle session reaped", "session", s.id, "last_used", s.getLastUsed())
	}
	return len(stale)
}

// CloseAll discards every session, the default one included. Called on
// server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	n := len(m.sessions)
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	m.logger.Info("all sessions closed", "count", n)
}
