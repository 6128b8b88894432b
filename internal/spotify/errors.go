package spotify

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by any remote call made before a token
// pair has been stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthErrorKind distinguishes the failure modes of one authentication
// attempt. Each is surfaced separately because the user remediation
// differs: a bind failure means the port is taken, a timeout means the
// browser flow was never completed.
type AuthErrorKind int

const (
	AuthBindFailed AuthErrorKind = iota
	AuthBrowserFailed
	AuthTimeout
	AuthExchangeFailed
)

// AuthError wraps a failure during the PKCE authorization flow.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthBindFailed:
		return fmt.Sprintf("could not bind redirect listener: %v", e.Err)
	case AuthBrowserFailed:
		return fmt.Sprintf("could not open browser: %v", e.Err)
	case AuthTimeout:
		return "authentication timed out - manual entry required"
	case AuthExchangeFailed:
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	default:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
}

func (e *AuthError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from the Web API. Device-related
// statuses carry user-facing guidance; everything else reports the code.
type StatusError struct {
	Code   int
	Action string // e.g. "playback control", "queue control"
}

func (e *StatusError) Error() string {
	switch e.Code {
	case 403:
		return fmt.Sprintf("Spotify Premium is required for %s.", e.Action)
	case 404:
		return "No active device found. Please start Spotify on your phone, computer, or web browser."
	default:
		return fmt.Sprintf("request failed with status %d (%s)", e.Code, e.Action)
	}
}
