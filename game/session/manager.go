package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// sessionIDLength is the number of characters kept from a generated UUID
const sessionIDLength = 8

// SourceFactory builds the piece source for a new session's engine
type SourceFactory func(rules *engine.Ruleset) engine.PieceSource

// Option configures a Manager
type Option func(*Manager)

// WithSeed makes new sessions draw pieces from seeded random sources, overriding
// the ruleset's own seed. The nth session created gets seed+n-1, so sessions deal
// different sequences while a process replays the same ones. Zero leaves the
// ruleset seed in charge.
func WithSeed(seed int64) Option {
	return func(m *Manager) {
		if seed == 0 {
			return
		}
		var created int64
		m.sources = func(*engine.Ruleset) engine.PieceSource {
			// Create holds m.mu
			next := seed + created
			created++
			if next == 0 {
				// zero would seed from the clock
				next = seed + created
				created++
			}
			return engine.NewRandomSource(next)
		}
	}
}

// WithSourceFactory sets how new sessions obtain their piece source
func WithSourceFactory(f SourceFactory) Option {
	return func(m *Manager) {
		m.sources = f
	}
}

// Manager handles game session lifecycle. Sessions live in memory for the
// lifetime of the process.
type Manager struct {
	sessions map[string]*service.Session
	sources  SourceFactory
	now      func() time.Time
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*service.Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new session with the given ID and ruleset. An empty ID is generated.
func (m *Manager) Create(id string, rules *engine.Ruleset) (*service.Session, error) {
	if strings.ContainsAny(id, " \t\r\n/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	}

	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	var source engine.PieceSource
	if m.sources != nil {
		source = m.sources(rules)
	}

	eng, err := engine.NewEngine(rules, source)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := m.now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Ruleset:        rules,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}

	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = m.now()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns an unused short ID. Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionIDLength]
		if _, exists := m.sessions[id]; !exists {
			return id
		}
	}
}
