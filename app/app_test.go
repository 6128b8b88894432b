package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kastheco/spindle/config"
	"github.com/kastheco/spindle/internal/spotify"
)

// fakeService records every remote call and fails on demand, keyed by
// operation name.
type fakeService struct {
	playlists     []spotify.Playlist
	tracksByID    map[string][]spotify.Track
	searchResults []spotify.Track
	playing       *spotify.CurrentlyPlaying
	queue         *spotify.Queue

	errs map[string]error

	trackLoads []string
	searches   []string
	played     []string
	queued     []string

	refreshes    int
	playingPolls int
	queuePolls   int
	pauses       int
	resumes      int
	nexts        int
	previouses   int
}

func (f *fakeService) fail(op string) error { return f.errs[op] }

func (f *fakeService) Authenticate() error { return f.fail("authenticate") }

func (f *fakeService) RefreshAccessToken() error {
	f.refreshes++
	return f.fail("refresh")
}

func (f *fakeService) GetPlaylists() ([]spotify.Playlist, error) {
	return f.playlists, f.fail("playlists")
}

func (f *fakeService) GetPlaylistTracks(playlistID string) ([]spotify.Track, error) {
	f.trackLoads = append(f.trackLoads, playlistID)
	return f.tracksByID[playlistID], f.fail("tracks")
}

func (f *fakeService) SearchTracks(query string) ([]spotify.Track, error) {
	f.searches = append(f.searches, query)
	return f.searchResults, f.fail("search")
}

func (f *fakeService) GetCurrentlyPlaying() (*spotify.CurrentlyPlaying, error) {
	f.playingPolls++
	return f.playing, f.fail("playing")
}

func (f *fakeService) GetQueue() (*spotify.Queue, error) {
	f.queuePolls++
	return f.queue, f.fail("queue")
}

func (f *fakeService) PlayTrack(trackURI string) error {
	f.played = append(f.played, trackURI)
	return f.fail("play")
}

func (f *fakeService) AddToQueue(trackURI string) error {
	f.queued = append(f.queued, trackURI)
	return f.fail("addtoqueue")
}

func (f *fakeService) Pause() error    { f.pauses++; return f.fail("pause") }
func (f *fakeService) Resume() error   { f.resumes++; return f.fail("resume") }
func (f *fakeService) Next() error     { f.nexts++; return f.fail("next") }
func (f *fakeService) Previous() error { f.previouses++; return f.fail("previous") }

func track(id, name string) spotify.Track {
	return spotify.Track{
		ID:   id,
		Name: name,
		URI:  "spotify:track:" + id,
		Artists: []spotify.Artist{
			{ID: "a-" + id, Name: "Artist " + id},
		},
		DurationMS: 200000,
	}
}

func newFakeService() *fakeService {
	return &fakeService{
		playlists: []spotify.Playlist{
			{ID: "liked", Name: "Liked Songs"},
			{ID: "pB", Name: "Beats"},
			{ID: "pC", Name: "Calm"},
		},
		tracksByID: map[string][]spotify.Track{
			"liked": {track("l1", "Liked One"), track("l2", "Liked Two")},
			"pB":    {track("b1", "Beat One"), track("b2", "Beat Two"), track("b3", "Beat Three")},
			"pC":    {track("c1", "Calm One")},
		},
		searchResults: []spotify.Track{track("s1", "Radio Ga Ga"), track("s2", "Radioactive")},
		errs:          map[string]error{},
	}
}

// readyHome drives the model through auth and library load the same way
// the running program does.
func readyHome(t *testing.T, svc *fakeService) *home {
	t.Helper()
	m := newHome(context.Background(), config.DefaultConfig(), svc)

	_, cmd := m.Update(authResultMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, libraryLoadedMsg{}, msg)
	m.Update(msg)

	require.Equal(t, phaseReady, m.phase)
	return m
}

var specialKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEsc,
	"enter":     tea.KeyEnter,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"backspace": tea.KeyBackspace,
	" ":         tea.KeySpace,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
}

func press(m *home, key string) tea.Cmd {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	if keyType, ok := specialKeys[key]; ok {
		msg = tea.KeyMsg{Type: keyType}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func typeString(m *home, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

func TestStartup_LoadsLibrary(t *testing.T) {
	svc := newFakeService()
	m := readyHome(t, svc)

	assert.Len(t, m.playlists, 3)
	assert.Equal(t, []string{"liked"}, svc.trackLoads)
	assert.Equal(t, svc.tracksByID["liked"], m.tracks)

	idx, ok := m.playlistSel.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	idx, ok = m.trackSel.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestStartup_AuthFailure(t *testing.T) {
	svc := newFakeService()
	m := newHome(context.Background(), config.DefaultConfig(), svc)

	m.Update(authResultMsg{err: errors.New("listener bind failed")})

	assert.Equal(t, phaseError, m.phase)
	assert.Contains(t, m.phaseError, "Authentication failed")
}

func TestStartup_LibraryLoadFailure(t *testing.T) {
	svc := newFakeService()
	svc.errs["playlists"] = errors.New("boom")
	m := newHome(context.Background(), config.DefaultConfig(), svc)

	_, cmd := m.Update(authResultMsg{})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, phaseError, m.phase)
	assert.Contains(t, m.phaseError, "Failed to load playlists")
}

func TestTick_PollsPlaybackState(t *testing.T) {
	svc := newFakeService()
	svc.playing = &spotify.CurrentlyPlaying{IsPlaying: true}
	svc.queue = &spotify.Queue{}
	m := readyHome(t, svc)

	now := time.Now()
	m.lastPoll = now.Add(-3 * time.Second)
	m.tick(now)

	assert.Equal(t, 1, svc.playingPolls)
	assert.Equal(t, 1, svc.queuePolls)
	assert.Equal(t, svc.playing, m.nowPlaying)
	assert.Equal(t, svc.queue, m.queue)
}

func TestTick_PollIntervalRespected(t *testing.T) {
	svc := newFakeService()
	m := readyHome(t, svc)

	now := time.Now()
	m.lastPoll = now.Add(-time.Second)
	m.tick(now)

	assert.Zero(t, svc.playingPolls)
	assert.Zero(t, svc.queuePolls)
}

func TestTick_PollFailuresAreSwallowed(t *testing.T) {
	svc := newFakeService()
	svc.errs["playing"] = errors.New("rate limited")
	svc.errs["queue"] = errors.New("rate limited")
	m := readyHome(t, svc)

	m.lastPoll = time.Now().Add(-3 * time.Second)
	m.tick(time.Now())

	assert.Equal(t, phaseReady, m.phase, "poll failures must not interrupt the session")
}

func TestTick_RefreshesToken(t *testing.T) {
	svc := newFakeService()
	m := readyHome(t, svc)

	now := time.Now()
	m.lastTokenRefresh = now.Add(-11 * time.Minute)
	m.tick(now)
	assert.Equal(t, 1, svc.refreshes)

	// Inside the interval nothing happens.
	m.tick(now.Add(time.Second))
	assert.Equal(t, 1, svc.refreshes)
}

func TestTick_RefreshFailureSurfaces(t *testing.T) {
	svc := newFakeService()
	svc.errs["refresh"] = errors.New("invalid_grant")
	m := readyHome(t, svc)

	m.lastTokenRefresh = time.Now().Add(-11 * time.Minute)
	m.tick(time.Now())

	assert.Equal(t, phaseError, m.phase)
	assert.Contains(t, m.phaseError, "Authentication failed")
}

func TestTick_InactiveBeforeReady(t *testing.T) {
	svc := newFakeService()
	m := newHome(context.Background(), config.DefaultConfig(), svc)

	m.tick(time.Now().Add(time.Hour))

	assert.Zero(t, svc.playingPolls)
	assert.Zero(t, svc.refreshes)
}
