package spotify

import "sync"

// TokenStore holds the current access and refresh tokens under a mutex.
// The authenticator writes the initial pair; the periodic refresh path
// replaces the access token afterwards. The lock is scoped to each
// read or replace and is never held across a network call.
type TokenStore struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// SetInitial stores the token pair produced by the authorization flow.
func (s *TokenStore) SetInitial(pair TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = pair.AccessToken
	s.refreshToken = pair.RefreshToken
}

// AccessToken returns the current access token, or ErrNotAuthenticated
// if no token has been stored yet.
func (s *TokenStore) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accessToken == "" {
		return "", ErrNotAuthenticated
	}
	return s.accessToken, nil
}

// RefreshToken returns the current refresh token and whether one is set.
func (s *TokenStore) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken, s.refreshToken != ""
}

// ApplyRefresh atomically installs the result of a refresh exchange.
// The refresh token is replaced only when the response carried one;
// Spotify frequently omits it, and dropping the old value would strand
// the session at the next refresh.
func (s *TokenStore) ApplyRefresh(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
}
