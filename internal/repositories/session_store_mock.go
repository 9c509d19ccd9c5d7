package repositories

import (
	"context"
	"sync"
	"time"

	"pasar/internal/models"
)

type memorySession struct {
	session   models.RegistrationSession
	expiresAt time.Time
}

// MockSessionStore is an in-memory implementation of SessionStore, used in
// tests and as the fallback when no redis address is configured.
type MockSessionStore struct {
	sessions map[string]memorySession
	mu       sync.Mutex
	now      func() time.Time
}

// NewMockSessionStore creates a new instance of MockSessionStore.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Put stores a registration session under the token for the given TTL.
func (s *MockSessionStore) Put(_ context.Context, token string, session models.RegistrationSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = memorySession{
		session:   session,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get retrieves the session for a token, or ErrSessionNotFound. Expired
// entries are removed on access rather than by a sweeper.
func (s *MockSessionStore) Get(_ context.Context, token string) (*models.RegistrationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

// Delete removes the session and reports whether this call removed it.
func (s *MockSessionStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	delete(s.sessions, token)
	if s.now().After(entry.expiresAt) {
		// Already dead, the delete just beat the lazy expiry to it.
		return false, nil
	}
	return true, nil
}
