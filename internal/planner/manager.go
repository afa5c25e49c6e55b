package planner

import (
	"sync"
	"time"
)

// Manager owns the per-session proposal state. Sessions are created on
// first use and dropped on reset; a dropped session id starts over with
// empty generated, kept and chat state.
type Manager struct {
	mu         sync.Mutex
	replyDelay time.Duration
	sessions   map[string]*Session
}

// NewManager returns a Manager whose sessions use replyDelay for canned
// replies.
func NewManager(replyDelay time.Duration) *Manager {
	return &Manager{
		replyDelay: replyDelay,
		sessions:   make(map[string]*Session),
	}
}

// Session returns the session for id, creating an empty one if needed.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = NewSession(m.replyDelay)
		m.sessions[id] = s
	}
	return s
}

// Reset discards the session for id, if any.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
