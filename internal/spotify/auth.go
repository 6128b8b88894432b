package spotify

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Scopes requested during authorization. The list is fixed: it covers
// library and playlist reads plus playback state and control.
const authScope = "user-read-private user-read-email playlist-read-private playlist-read-collaborative user-modify-playback-state user-read-playback-state user-read-currently-playing user-read-playback-position user-library-read"

const callbackHTML = "<html><body><h1>Authentication successful!</h1><p>You can close this window and return to the terminal.</p></body></html>"

// verifierChars is the RFC 7636 unreserved character set.
const verifierChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// settleDelay gives the browser time to finish writing its request
// before the first read attempt on an accepted connection.
const settleDelay = 100 * time.Millisecond

// AuthConfig holds the settings for one PKCE authorization attempt.
// The zero values of AuthorizeURL, TokenURL and OpenBrowser select
// production defaults; tests override them.
type AuthConfig struct {
	ClientID     string
	RedirectPort int
	Timeout      time.Duration
	AuthorizeURL string
	TokenURL     string
	OpenBrowser  func(string) error
}

// Authenticate performs the browser-based OAuth PKCE flow: it opens the
// authorization page, captures the redirect on a short-lived loopback
// listener, and exchanges the authorization code for a token pair.
// All verifier/challenge/state material lives only for this attempt.
func Authenticate(cfg AuthConfig) (TokenPair, error) {
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = "https://accounts.spotify.com/authorize"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://accounts.spotify.com/api/token"
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = defaultOpenBrowser
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	verifier := generateCodeVerifier()
	challenge := deriveCodeChallenge(verifier)
	state := generateState()
	redirectURI := fmt.Sprintf("http://127.0.0.1:%d/callback", cfg.RedirectPort)

	// Bind before opening the browser so a taken port fails fast,
	// before the user has an authorization page open.
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.RedirectPort))
	if err != nil {
		return TokenPair{}, &AuthError{Kind: AuthBindFailed, Err: err}
	}
	defer listener.Close()

	params := url.Values{
		"client_id":             {cfg.ClientID},
		"response_type":         {"code"},
		"redirect_uri":          {redirectURI},
		"code_challenge_method": {"S256"},
		"code_challenge":        {challenge},
		"state":                 {state},
		"scope":                 {authScope},
	}
	if err := cfg.OpenBrowser(cfg.AuthorizeURL + "?" + params.Encode()); err != nil {
		return TokenPair{}, &AuthError{Kind: AuthBrowserFailed, Err: err}
	}

	code, err := waitForCallback(listener, cfg.Timeout)
	if err != nil {
		return TokenPair{}, err
	}

	return exchangeCode(cfg.TokenURL, cfg.ClientID, code, verifier, redirectURI)
}

// waitForCallback accepts connections until one carries a redirect
// request with a code parameter or the deadline passes. Requests that
// don't match are dropped without a response and the listener keeps
// accepting.
func waitForCallback(listener net.Listener, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	tcpListener, ok := listener.(*net.TCPListener)
	if !ok {
		return "", &AuthError{Kind: AuthBindFailed, Err: fmt.Errorf("unexpected listener type %T", listener)}
	}

	for {
		if err := tcpListener.SetDeadline(deadline); err != nil {
			return "", &AuthError{Kind: AuthTimeout, Err: err}
		}
		conn, err := tcpListener.Accept()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return "", &AuthError{Kind: AuthTimeout, Err: err}
			}
			continue
		}

		code, found := readCallbackCode(conn, deadline)
		if found {
			// Confirm in the browser before tearing the listener down.
			_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nConnection: close\r\n\r\n" + callbackHTML))
		}
		_ = conn.Close()
		if found {
			return code, nil
		}
	}
}

// readCallbackCode reads one request from the connection and extracts
// the code parameter. A short settle delay precedes the read; a single
// transient failure is retried within the connection.
func readCallbackCode(conn net.Conn, deadline time.Time) (string, bool) {
	time.Sleep(settleDelay)
	_ = conn.SetReadDeadline(deadline)

	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		// One retry: the browser may not have written anything yet.
		n, err = conn.Read(buf)
		if err != nil || n == 0 {
			return "", false
		}
	}
	return extractCode(string(buf[:n]))
}

// extractCode pulls the code query parameter out of a raw HTTP request.
// Only the callback path and the bare root path are recognized; full
// HTTP parsing is deliberately avoided.
func extractCode(request string) (string, bool) {
	for _, prefix := range []string{"GET /callback?", "GET /?"} {
		idx := strings.Index(request, prefix)
		if idx < 0 {
			continue
		}
		rest := request[idx+len(prefix):]
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			continue
		}
		values, err := url.ParseQuery(rest[:end])
		if err != nil {
			continue
		}
		if code := values.Get("code"); code != "" {
			return code, true
		}
	}
	return "", false
}

// exchangeCode trades the authorization code for a token pair. The
// client secret is never sent; PKCE authenticates the public client.
func exchangeCode(tokenURL, clientID, code, verifier, redirectURI string) (TokenPair, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {clientID},
		"code_verifier": {verifier},
	}

	resp, err := http.PostForm(tokenURL, form)
	if err != nil {
		return TokenPair{}, &AuthError{Kind: AuthExchangeFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TokenPair{}, &AuthError{Kind: AuthExchangeFailed, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return TokenPair{}, &AuthError{Kind: AuthExchangeFailed, Err: fmt.Errorf("malformed token response: %w", err)}
	}
	if token.AccessToken == "" {
		return TokenPair{}, &AuthError{Kind: AuthExchangeFailed, Err: fmt.Errorf("empty access token in response")}
	}

	return TokenPair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

// generateCodeVerifier returns 128 characters drawn uniformly from the
// unreserved set.
func generateCodeVerifier() string {
	buf := make([]byte, 128)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = verifierChars[int(b)%len(verifierChars)]
	}
	return string(out)
}

// deriveCodeChallenge is the S256 transform per RFC 7636.
func deriveCodeChallenge(verifier string) string {
	h := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// generateState returns 16 hex characters used as an anti-CSRF nonce.
func generateState() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// defaultOpenBrowser opens the system browser.
func defaultOpenBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "darwin":
		cmd = exec.Command("open", rawURL)
	default:
		return fmt.Errorf("unsupported OS for browser open: %s", runtime.GOOS)
	}
	return cmd.Start()
}
