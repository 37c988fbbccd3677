package memory

import (
	"sync"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// SessionStore keeps live sessions in memory, one map per session kind so
// user and dashboard tokens can never collide across spaces.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionKind]map[string]domain.Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[domain.SessionKind]map[string]domain.Session{
			domain.SessionKindUser:      {},
			domain.SessionKindDashboard: {},
		},
	}
}

// Save stores a session under its token.
func (s *SessionStore) Save(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Kind][sess.Token] = sess
}

// Find returns the session for a token of the given kind.
func (s *SessionStore) Find(kind domain.SessionKind, token string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[kind][token]
	return sess, ok
}

// Delete revokes a token and reports whether it existed.
func (s *SessionStore) Delete(kind domain.SessionKind, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[kind][token]; !ok {
		return false
	}
	delete(s.sessions[kind], token)
	return true
}
