package session

import "github.com/spec-kit/resistance-admin/internal/domain"

// IsAuthenticated reports whether a token is present, decodes and has not expired.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticatedLocked()
}

// HasElevatedRole reports whether the current session carries exactly the elevated role.
func (s *Store) HasElevatedRole() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticatedLocked() && s.identity != nil && s.identity.Role == domain.ElevatedRole
}

func (s *Store) authenticatedLocked() bool {
	return s.token != "" && s.claims != nil && s.claims.ValidAt(s.now())
}
