package auth

import (
	"context"
	"sync"
)

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart, which is acceptable for tests and local development.
type MemorySessionStore struct {
	mu        sync.RWMutex
	byRefresh map[string]Session
	byAccess  map[string]string
}

// NewMemorySessionStore constructs an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		byRefresh: make(map[string]Session),
		byAccess:  make(map[string]string),
	}
}

// Save stores the session keyed by both of its tokens.
func (s *MemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRefresh[session.RefreshToken] = session
	s.byAccess[session.AccessToken] = session.RefreshToken
	return nil
}

// FindByRefreshToken retrieves a session by its refresh token.
func (s *MemorySessionStore) FindByRefreshToken(_ context.Context, refreshToken string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byRefresh[refreshToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// FindByAccessToken retrieves a session by its access token.
func (s *MemorySessionStore) FindByAccessToken(_ context.Context, accessToken string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refresh, ok := s.byAccess[accessToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	session, ok := s.byRefresh[refresh]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session identified by the refresh token.
func (s *MemorySessionStore) Delete(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byRefresh[refreshToken]
	if !ok {
		return nil
	}
	delete(s.byRefresh, refreshToken)
	delete(s.byAccess, session.AccessToken)
	return nil
}

// DeleteForUser removes every session belonging to the user.
func (s *MemorySessionStore) DeleteForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for refresh, session := range s.byRefresh {
		if session.UserID == userID {
			delete(s.byRefresh, refresh)
			delete(s.byAccess, session.AccessToken)
		}
	}
	return nil
}
