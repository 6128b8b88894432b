package spotify

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestGenerateCodeVerifier(t *testing.T) {
	verifier := generateCodeVerifier()
	assert.Len(t, verifier, 128)
	for _, r := range verifier {
		assert.Contains(t, verifierChars, string(r))
	}
	// Two calls must not collide.
	assert.NotEqual(t, verifier, generateCodeVerifier())
}

func TestDeriveCodeChallenge_RFC7636Vector(t *testing.T) {
	// Appendix B of RFC 7636.
	challenge := deriveCodeChallenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestGenerateState(t *testing.T) {
	state := generateState()
	assert.Len(t, state, 16)
	for _, r := range state {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    string
		found   bool
	}{
		{
			name:    "root path with state and code",
			request: "GET /?state=xyz&code=ABC123 HTTP/1.1\r\nHost: 127.0.0.1\r\n\r\n",
			want:    "ABC123",
			found:   true,
		},
		{
			name:    "callback path",
			request: "GET /callback?code=XYZ&state=abc HTTP/1.1\r\n\r\n",
			want:    "XYZ",
			found:   true,
		},
		{
			name:    "url-encoded code is decoded",
			request: "GET /callback?code=AB%2F12 HTTP/1.1\r\n\r\n",
			want:    "AB/12",
			found:   true,
		},
		{
			name:    "unrelated path dropped",
			request: "GET /favicon.ico HTTP/1.1\r\n\r\n",
			found:   false,
		},
		{
			name:    "missing code parameter",
			request: "GET /callback?state=only HTTP/1.1\r\n\r\n",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, found := extractCode(tt.request)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestAuthenticate_CallbackFlow(t *testing.T) {
	var exchangeForm url.Values
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		exchangeForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-1","token_type":"Bearer","expires_in":3600,"refresh_token":"rt-1","scope":""}`)
	}))
	defer tokenServer.Close()

	port := freePort(t)
	browserResponse := make(chan string, 1)

	openBrowser := func(authURL string) error {
		parsed, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		q := parsed.Query()
		assert.Equal(t, "client-1", q.Get("client_id"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.NotEmpty(t, q.Get("code_challenge"))
		assert.Len(t, q.Get("state"), 16)
		assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/callback", port), q.Get("redirect_uri"))
		assert.Contains(t, q.Get("scope"), "user-read-playback-state")

		// Simulate the browser redirect: first an unrelated request that
		// must be dropped, then the real callback.
		go func() {
			addr := fmt.Sprintf("127.0.0.1:%d", port)

			if conn, err := net.Dial("tcp", addr); err == nil {
				fmt.Fprint(conn, "GET /favicon.ico HTTP/1.1\r\nHost: x\r\n\r\n")
				_ = conn.Close()
			}

			conn, err := net.Dial("tcp", addr)
			if err != nil {
				browserResponse <- "dial failed: " + err.Error()
				return
			}
			defer conn.Close()
			fmt.Fprintf(conn, "GET /?state=%s&code=ABC123 HTTP/1.1\r\nHost: x\r\n\r\n", q.Get("state"))
			body, _ := io.ReadAll(bufio.NewReader(conn))
			browserResponse <- string(body)
		}()
		return nil
	}

	pair, err := Authenticate(AuthConfig{
		ClientID:     "client-1",
		RedirectPort: port,
		Timeout:      5 * time.Second,
		TokenURL:     tokenServer.URL,
		OpenBrowser:  openBrowser,
	})
	require.NoError(t, err)
	assert.Equal(t, "at-1", pair.AccessToken)
	assert.Equal(t, "rt-1", pair.RefreshToken)

	select {
	case resp := <-browserResponse:
		assert.Contains(t, resp, "200 OK")
		assert.Contains(t, resp, "Authentication successful!")
	case <-time.After(2 * time.Second):
		t.Fatal("browser never saw a response")
	}

	// The exchange must carry the code, the verifier, and no secret.
	assert.Equal(t, "authorization_code", exchangeForm.Get("grant_type"))
	assert.Equal(t, "ABC123", exchangeForm.Get("code"))
	assert.Len(t, exchangeForm.Get("code_verifier"), 128)
	assert.Equal(t, "client-1", exchangeForm.Get("client_id"))
	assert.Empty(t, exchangeForm.Get("client_secret"))
}

func TestAuthenticate_Timeout(t *testing.T) {
	port := freePort(t)

	_, err := Authenticate(AuthConfig{
		ClientID:     "client-1",
		RedirectPort: port,
		Timeout:      300 * time.Millisecond,
		OpenBrowser:  func(string) error { return nil },
	})
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthTimeout, authErr.Kind)
	assert.Contains(t, err.Error(), "manual entry required")
}

func TestAuthenticate_BindFailed(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	_, err = Authenticate(AuthConfig{
		ClientID:     "client-1",
		RedirectPort: port,
		Timeout:      time.Second,
		OpenBrowser:  func(string) error { t.Fatal("browser opened despite bind failure"); return nil },
	})
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthBindFailed, authErr.Kind)
}

func TestAuthenticate_BrowserFailure(t *testing.T) {
	port := freePort(t)

	_, err := Authenticate(AuthConfig{
		ClientID:     "client-1",
		RedirectPort: port,
		Timeout:      time.Second,
		OpenBrowser:  func(string) error { return fmt.Errorf("no display") },
	})
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthBrowserFailed, authErr.Kind)
	assert.Contains(t, strings.ToLower(err.Error()), "browser")
}
