// Package session holds the authenticated user for the lifetime of the
// process. It replaces the ambient global the previous front-end used: the
// store is constructed once and passed explicitly to whatever needs identity.
package session

import (
	"sync"

	"github.com/azauting/hospitalcm/internal/domain"
)

// Store is a mutex-guarded slot for the current user. Only login, logout and
// session restore mutate it; everything else reads.
type Store struct {
	mu   sync.RWMutex
	user *domain.User
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Set records the authenticated user.
func (s *Store) Set(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Clear drops the session user.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns the session user, or nil when not logged in.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LoggedIn reports whether a user is set.
func (s *Store) LoggedIn() bool {
	return s.Current() != nil
}

// HasRole reports whether the session user holds the given role.
func (s *Store) HasRole(role domain.Role) bool {
	user := s.Current()
	return user != nil && user.Role == role
}
