package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kastheco/spindle/config"
	"github.com/kastheco/spindle/internal/spotify"
	"github.com/kastheco/spindle/log"
	"github.com/kastheco/spindle/ui"
)

const tickInterval = 50 * time.Millisecond

// MusicService is the remote surface the session drives. *spotify.Client
// satisfies it; tests substitute a fake.
type MusicService interface {
	Authenticate() error
	RefreshAccessToken() error
	GetPlaylists() ([]spotify.Playlist, error)
	GetPlaylistTracks(playlistID string) ([]spotify.Track, error)
	SearchTracks(query string) ([]spotify.Track, error)
	GetCurrentlyPlaying() (*spotify.CurrentlyPlaying, error)
	GetQueue() (*spotify.Queue, error)
	PlayTrack(trackURI string) error
	AddToQueue(trackURI string) error
	Pause() error
	Resume() error
	Next() error
	Previous() error
}

// Run starts the TUI. Blocks until the user quits or the program fails.
func Run(ctx context.Context, cfg *config.Config, creds config.Credentials) error {
	client := spotify.NewClient(
		creds.ClientID,
		cfg.RedirectPort,
		time.Duration(cfg.AuthTimeoutSeconds)*time.Second,
	)

	restoreBg := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restoreBg()

	p := tea.NewProgram(newHome(ctx, cfg, client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type phase int

const (
	phaseAuthenticating phase = iota
	phaseLoading
	phaseReady
	phaseError
)

type focusedPane int

const (
	panePlaylists focusedPane = iota
	paneTracks
	paneSearchInput
)

type tickMsg struct{}

type authResultMsg struct {
	err error
}

type libraryLoadedMsg struct {
	playlists []spotify.Playlist
	tracks    []spotify.Track
	err       error
}

type home struct {
	ctx       context.Context
	appConfig *config.Config
	svc       MusicService

	phase      phase
	phaseError string

	playlists     []spotify.Playlist
	tracks        []spotify.Track
	searchResults []spotify.Track
	nowPlaying    *spotify.CurrentlyPlaying
	queue         *spotify.Queue

	playlistSel selection
	trackSel    selection
	searchSel   selection
	controlsSel selection

	focusedPane  focusedPane
	showSearch   bool
	showHelp     bool
	showControls bool
	searchInput  string

	// pendingSearch is the time of the last keystroke while a search
	// request is armed; nil when no request is pending.
	pendingSearch *time.Time

	lastPoll         time.Time
	lastTokenRefresh time.Time

	debounce     time.Duration
	pollEvery    time.Duration
	refreshEvery time.Duration

	spinner spinner.Model

	termWidth  int
	termHeight int
}

func newHome(ctx context.Context, cfg *config.Config, svc MusicService) *home {
	return &home{
		ctx:          ctx,
		appConfig:    cfg,
		svc:          svc,
		phase:        phaseAuthenticating,
		focusedPane:  panePlaylists,
		debounce:     time.Duration(cfg.SearchDebounceMS) * time.Millisecond,
		pollEvery:    time.Duration(cfg.PollIntervalSeconds) * time.Second,
		refreshEvery: time.Duration(cfg.TokenRefreshSeconds) * time.Second,
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.authenticateCmd(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(tickInterval)
		return tickMsg{}
	}
}

func (m *home) authenticateCmd() tea.Cmd {
	return func() tea.Msg {
		return authResultMsg{err: m.svc.Authenticate()}
	}
}

// loadLibraryCmd pulls the playlist list and the first playlist's
// tracks in one shot so the initial screen is fully populated.
func (m *home) loadLibraryCmd() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.svc.GetPlaylists()
		if err != nil {
			return libraryLoadedMsg{err: err}
		}
		var tracks []spotify.Track
		if len(playlists) > 0 {
			tracks, err = m.svc.GetPlaylistTracks(playlists[0].ID)
			if err != nil {
				return libraryLoadedMsg{err: err}
			}
		}
		return libraryLoadedMsg{playlists: playlists, tracks: tracks}
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.tick(time.Now())
		return m, tickCmd()

	case authResultMsg:
		if msg.err != nil {
			log.ErrorLog.Printf("authentication failed: %v", msg.err)
			m.setError(fmt.Sprintf("Authentication failed: %v", msg.err))
			return m, nil
		}
		now := time.Now()
		m.lastPoll = now
		m.lastTokenRefresh = now
		m.phase = phaseLoading
		return m, m.loadLibraryCmd()

	case libraryLoadedMsg:
		if msg.err != nil {
			log.ErrorLog.Printf("library load failed: %v", msg.err)
			m.setError(fmt.Sprintf("Failed to load playlists: %v", msg.err))
			return m, nil
		}
		m.playlists = msg.playlists
		m.tracks = msg.tracks
		if len(m.playlists) > 0 {
			m.playlistSel.Select(0)
		}
		if len(m.tracks) > 0 {
			m.trackSel.Select(0)
		}
		m.phase = phaseReady
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// tick runs the cooperative timers. Order matters: playback poll, then
// token refresh, then the search debounce.
func (m *home) tick(now time.Time) {
	if m.phase == phaseAuthenticating || m.phase == phaseLoading {
		return
	}

	if now.Sub(m.lastPoll) >= m.pollEvery {
		m.lastPoll = now
		m.pollPlayback()
	}

	if now.Sub(m.lastTokenRefresh) >= m.refreshEvery {
		m.lastTokenRefresh = now
		if err := m.svc.RefreshAccessToken(); err != nil {
			log.ErrorLog.Printf("token refresh failed: %v", err)
			m.setError(fmt.Sprintf("Authentication failed: %v", err))
			return
		}
	}

	m.checkPendingSearch(now)
}

// pollPlayback pulls now-playing and queue state. Failures are logged
// and swallowed; the next poll retries.
func (m *home) pollPlayback() {
	playing, err := m.svc.GetCurrentlyPlaying()
	if err != nil {
		log.WarningLog.Printf("currently-playing poll failed: %v", err)
	} else {
		m.nowPlaying = playing
	}

	queue, err := m.svc.GetQueue()
	if err != nil {
		log.WarningLog.Printf("queue poll failed: %v", err)
	} else {
		m.queue = queue
	}
}

// checkPendingSearch fires the armed search once the quiet interval has
// elapsed. The pending timestamp is cleared regardless of outcome so a
// failed search does not retry until the user types again.
func (m *home) checkPendingSearch(now time.Time) {
	if m.pendingSearch == nil || now.Sub(*m.pendingSearch) < m.debounce {
		return
	}
	m.pendingSearch = nil
	if m.searchInput == "" {
		return
	}

	results, err := m.svc.SearchTracks(m.searchInput)
	if err != nil {
		log.WarningLog.Printf("search for %q failed: %v", m.searchInput, err)
		return
	}
	m.searchResults = results
	m.searchSel.Clear()
}

func (m *home) setError(message string) {
	m.phase = phaseError
	m.phaseError = message
}

// activeList returns the track list the tracks pane currently shows and
// its cursor. Search results take over whenever the overlay is open.
func (m *home) activeList() ([]spotify.Track, *selection) {
	if m.showSearch {
		return m.searchResults, &m.searchSel
	}
	return m.tracks, &m.trackSel
}
