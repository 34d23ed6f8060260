package client

import (
	"sync"
	"time"
)

// Session holds the bearer token and identity of one signed-in user. It is
// created empty by NewSession, filled by Login or Register and cleared by
// Close or Logout. A Session is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	user      *User
	now       func() time.Time
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Restore fills the session from a token stored by the caller.
func (s *Session) Restore(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.user = nil
}

func (s *Session) set(auth *AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = auth.Token
	s.expiresAt = auth.ExpiresAt
	s.user = auth.User
}

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns when the token stops being accepted. The zero time means
// unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User returns the signed-in user as last reported by the server.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether the session holds an unexpired token.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || s.now().Before(s.expiresAt)
}

// Close forgets the token and user. It never fails and may be called twice.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = nil
	return nil
}
