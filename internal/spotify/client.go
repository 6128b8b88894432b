package spotify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Spotify Web API on behalf of one authenticated
// user. All methods are synchronous and safe to call from the UI loop;
// the token store serializes token access internally.
type Client struct {
	httpClient *http.Client
	tokens     *TokenStore
	clientID   string

	// apiURL and accountsURL are overridable for tests.
	apiURL      string
	accountsURL string

	// auth flow settings
	redirectPort int
	authTimeout  time.Duration
	openBrowser  func(string) error
}

// NewClient creates a client for the given application client ID.
func NewClient(clientID string, redirectPort int, authTimeout time.Duration) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		tokens:       &TokenStore{},
		clientID:     clientID,
		apiURL:       "https://api.spotify.com/v1",
		accountsURL:  "https://accounts.spotify.com",
		redirectPort: redirectPort,
		authTimeout:  authTimeout,
	}
}

// Authenticate runs the PKCE flow and stores the resulting token pair.
func (c *Client) Authenticate() error {
	pair, err := Authenticate(AuthConfig{
		ClientID:     c.clientID,
		RedirectPort: c.redirectPort,
		Timeout:      c.authTimeout,
		AuthorizeURL: c.accountsURL + "/authorize",
		TokenURL:     c.accountsURL + "/api/token",
		OpenBrowser:  c.openBrowser,
	})
	if err != nil {
		return err
	}
	c.tokens.SetInitial(pair)
	return nil
}

// RefreshAccessToken exchanges the stored refresh token for a new
// access token. On failure the stale access token is retained: calls
// against cached authorization may still succeed, which beats
// discarding known-good state.
func (c *Client) RefreshAccessToken() error {
	refreshToken, ok := c.tokens.RefreshToken()
	if !ok {
		return fmt.Errorf("no refresh token: %w", ErrNotAuthenticated)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
	}
	resp, err := c.httpClient.PostForm(c.accountsURL+"/api/token", form)
	if err != nil {
		return fmt.Errorf("failed to send token refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode token refresh response: %w", err)
	}
	c.tokens.ApplyRefresh(token.AccessToken, token.RefreshToken)
	return nil
}

// GetPlaylists returns the user's playlists with the Liked Songs
// pseudo-playlist prepended.
func (c *Client) GetPlaylists() ([]Playlist, error) {
	var parsed playlistsResponse
	if err := c.getJSON("/me/playlists", nil, &parsed); err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(parsed.Items)+1)
	playlists = append(playlists, Playlist{
		ID:     "liked",
		Name:   "Liked Songs",
		Tracks: PlaylistTracks{Total: 50},
	})
	playlists = append(playlists, parsed.Items...)
	return playlists, nil
}

// GetPlaylistTracks returns the tracks of a playlist. The id "liked"
// resolves to the user's saved tracks.
func (c *Client) GetPlaylistTracks(playlistID string) ([]Track, error) {
	if playlistID == "liked" {
		var parsed likedTracksResponse
		if err := c.getJSON("/me/tracks", url.Values{"limit": {"50"}}, &parsed); err != nil {
			return nil, err
		}
		tracks := make([]Track, 0, len(parsed.Items))
		for _, item := range parsed.Items {
			tracks = append(tracks, item.Track)
		}
		return tracks, nil
	}

	var parsed playlistTracksResponse
	if err := c.getJSON("/playlists/"+playlistID+"/tracks", nil, &parsed); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		tracks = append(tracks, item.Track)
	}
	return tracks, nil
}

// SearchTracks runs a track search for the given query.
func (c *Client) SearchTracks(query string) ([]Track, error) {
	var parsed searchResponse
	q := url.Values{"q": {query}, "type": {"track"}, "limit": {"50"}}
	if err := c.getJSON("/search", q, &parsed); err != nil {
		return nil, err
	}
	return parsed.Tracks.Items, nil
}

// GetCurrentlyPlaying returns the playback state, or nil when nothing
// is playing. Non-2xx statuses are treated as "nothing playing" rather
// than errors: this is called from the 2-second poll.
func (c *Client) GetCurrentlyPlaying() (*CurrentlyPlaying, error) {
	resp, err := c.get("/me/player/currently-playing", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read currently-playing response: %w", err)
	}
	// 204 and empty bodies both mean nothing is playing.
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var playing CurrentlyPlaying
	if err := json.Unmarshal(body, &playing); err != nil {
		return nil, fmt.Errorf("malformed currently-playing response: %w", err)
	}
	return &playing, nil
}

// GetQueue returns the player queue, or nil on any non-2xx status.
func (c *Client) GetQueue() (*Queue, error) {
	resp, err := c.get("/me/player/queue", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil
	}
	var queue Queue
	if err := json.NewDecoder(resp.Body).Decode(&queue); err != nil {
		return nil, fmt.Errorf("malformed queue response: %w", err)
	}
	return &queue, nil
}

// PlayTrack starts playback of the given track URI on the active
// device. A device check runs first so the user gets a clear message
// instead of a bare 404 when nothing is online.
func (c *Client) PlayTrack(trackURI string) error {
	token, err := c.tokens.AccessToken()
	if err != nil {
		return err
	}
	devices, err := c.getAvailableDevices(token)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return fmt.Errorf("No active Spotify devices found. Please open Spotify on your phone, computer, or web browser.")
	}

	body, err := json.Marshal(map[string][]string{"uris": {trackURI}})
	if err != nil {
		return fmt.Errorf("failed to encode play request: %w", err)
	}
	return c.command(http.MethodPut, "/me/player/play", nil, body, "playback control")
}

// AddToQueue appends the given track URI to the player queue.
func (c *Client) AddToQueue(trackURI string) error {
	return c.command(http.MethodPost, "/me/player/queue", url.Values{"uri": {trackURI}}, nil, "queue control")
}

// Pause pauses playback on the active device.
func (c *Client) Pause() error {
	return c.command(http.MethodPut, "/me/player/pause", nil, nil, "playback control")
}

// Resume resumes playback on the active device.
func (c *Client) Resume() error {
	return c.command(http.MethodPut, "/me/player/play", nil, nil, "playback control")
}

// Next skips to the next track.
func (c *Client) Next() error {
	return c.command(http.MethodPost, "/me/player/next", nil, nil, "playback control")
}

// Previous skips to the previous track.
func (c *Client) Previous() error {
	return c.command(http.MethodPost, "/me/player/previous", nil, nil, "playback control")
}

func (c *Client) getAvailableDevices(token string) ([]Device, error) {
	resp, err := c.get("/me/player/devices", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil
	}
	var parsed devicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("malformed devices response: %w", err)
	}
	return parsed.Devices, nil
}

// get issues an authenticated GET and returns the raw response.
func (c *Client) get(path string, query url.Values) (*http.Response, error) {
	token, err := c.tokens.AccessToken()
	if err != nil {
		return nil, err
	}
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

// getJSON issues an authenticated GET and decodes a 2xx JSON body into v.
func (c *Client) getJSON(path string, query url.Values, v any) error {
	resp, err := c.get(path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Action: strings.TrimPrefix(path, "/")}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed response from %s: %w", path, err)
	}
	return nil
}

// command issues an authenticated mutating request with an empty or
// JSON body and maps non-2xx statuses to user-facing errors.
func (c *Client) command(method, path string, query url.Values, body []byte, action string) error {
	token, err := c.tokens.AccessToken()
	if err != nil {
		return err
	}
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	} else {
		req.Header.Set("Content-Length", "0")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Action: action}
	}
	return nil
}
