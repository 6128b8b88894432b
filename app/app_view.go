package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/spindle/internal/spotify"
	"github.com/kastheco/spindle/ui"
	"github.com/kastheco/spindle/ui/overlay"
)

func (m *home) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return ""
	}

	hint := ui.RenderHelpHint(m.termWidth)
	contentHeight := m.termHeight - lipgloss.Height(hint)

	leftWidth := m.termWidth / 3
	rightWidth := m.termWidth - leftWidth

	left := m.renderLeftColumn(leftWidth, contentHeight)
	right := m.renderRightColumn(rightWidth, contentHeight)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		hint,
	)
	view = ui.FillBackground(view, m.termWidth, m.termHeight)
	return m.placeOverlays(view)
}

func (m *home) renderLeftColumn(width, height int) string {
	playlistHeight := height / 2
	nowPlayingHeight := height / 4
	queueHeight := height - playlistHeight - nowPlayingHeight

	items := make([]string, len(m.playlists))
	for i, p := range m.playlists {
		items[i] = p.Name
	}
	selected := -1
	if idx, ok := m.playlistSel.Selected(); ok {
		selected = idx
	}

	playlistPane := ui.RenderListPane(
		"Playlists", items, selected,
		width, playlistHeight,
		m.focusedPane == panePlaylists,
	)
	nowPlayingPane := ui.RenderNowPlaying(m.nowPlaying, width, nowPlayingHeight)
	queuePane := ui.RenderQueue(m.queue, m.currentTrack(), width, queueHeight)

	return lipgloss.JoinVertical(lipgloss.Left, playlistPane, nowPlayingPane, queuePane)
}

func (m *home) renderRightColumn(width, height int) string {
	list, sel := m.activeList()
	items := make([]string, len(list))
	for i, t := range list {
		items[i] = ui.TrackLine(t)
	}
	selected := -1
	if idx, ok := sel.Selected(); ok {
		selected = idx
	}

	title := m.trackPaneTitle()

	if !m.showSearch {
		return ui.RenderListPane(title, items, selected, width, height, m.focusedPane == paneTracks)
	}

	searchBar := ui.RenderSearchBar(m.searchInput, m.focusedPane == paneSearchInput, width)
	tracksHeight := height - lipgloss.Height(searchBar)
	tracksPane := ui.RenderListPane(title, items, selected, width, tracksHeight, m.focusedPane == paneTracks)
	return lipgloss.JoinVertical(lipgloss.Left, searchBar, tracksPane)
}

func (m *home) trackPaneTitle() string {
	if m.showSearch {
		return "Search Results"
	}
	if idx, ok := m.playlistSel.Selected(); ok && idx < len(m.playlists) {
		return m.playlists[idx].Name
	}
	return "Tracks"
}

// currentTrack is the track the player reports, used to drop the
// in-flight item from the queue pane.
func (m *home) currentTrack() *spotify.Track {
	if m.nowPlaying == nil {
		return nil
	}
	return m.nowPlaying.Item
}

func (m *home) placeOverlays(view string) string {
	switch {
	case m.phase == phaseAuthenticating:
		return overlayCenter(overlay.RenderStatus("Authenticating with Spotify...", m.spinner.View()), view)
	case m.phase == phaseLoading:
		return overlayCenter(overlay.RenderStatus("Loading playlists...", m.spinner.View()), view)
	case m.phase == phaseError:
		return overlayCenter(overlay.RenderError(m.phaseError), view)
	case m.showHelp:
		return overlayCenter(overlay.RenderHelp(), view)
	case m.showControls:
		isPlaying := m.nowPlaying != nil && m.nowPlaying.IsPlaying
		selected, _ := m.controlsSel.Selected()
		return overlayCenter(overlay.RenderControls(isPlaying, selected), view)
	}
	return view
}

func overlayCenter(fg, bg string) string {
	return overlay.PlaceOverlay(0, 0, fg, bg, true)
}
