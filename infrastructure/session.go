package infrastructure

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps admin session tokens in memory with a fixed TTL.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]time.Time
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, sessions: make(map[string]time.Time), now: time.Now}
}

// Create issues a new token and returns it with its expiry.
func (s *SessionStore) Create() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for tok, exp := range s.sessions {
		if !now.Before(exp) {
			delete(s.sessions, tok)
		}
	}

	token := uuid.NewString()
	expires := now.Add(s.ttl)
	s.sessions[token] = expires
	return token, expires
}

// Valid reports whether token exists and has not expired.
func (s *SessionStore) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.sessions[token]
	if !ok {
		return false
	}
	if !s.now().Before(exp) {
		delete(s.sessions, token)
		return false
	}
	return true
}

func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
