package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kastheco/spindle/keys"
)

// handleKeyPress routes one keystroke. Routing order is fixed: the
// error banner consumes any key, then modal overlays capture input,
// then the search overlay, then the default pane bindings.
func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseError {
		m.phase = phaseReady
		m.phaseError = ""
		return m, nil
	}
	if m.phase != phaseReady {
		// Only quit works before the library is up.
		if name, bound := keys.GlobalKeyStringsMap[msg.String()]; bound && name == keys.KeyQuit {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp {
		return m.handleHelpKey(msg)
	}
	if m.showControls {
		return m.handleControlsKey(msg)
	}
	if m.showSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleDefaultKey(msg)
}

func (m *home) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, bound := keys.GlobalKeyStringsMap[msg.String()]
	if !bound {
		return m, nil
	}
	switch name {
	case keys.KeyEsc, keys.KeyHelp:
		m.showHelp = false
	case keys.KeyQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *home) handleControlsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, bound := keys.GlobalKeyStringsMap[msg.String()]
	if !bound {
		return m, nil
	}
	switch name {
	case keys.KeyEsc:
		m.showControls = false
	case keys.KeyUp:
		m.controlsSel.Move(-1, controlCount)
	case keys.KeyDown:
		m.controlsSel.Move(1, controlCount)
	case keys.KeyEnter:
		m.activateControl()
	case keys.KeyQuit:
		return m, tea.Quit
	}
	return m, nil
}

// handleSearchKey runs while the search overlay is visible. With the
// input focused, printable keys edit the query; otherwise the usual
// list bindings apply against the search results.
func (m *home) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focusedPane == paneSearchInput {
		switch msg.Type {
		case tea.KeyRunes:
			m.appendQuery(string(msg.Runes))
		case tea.KeySpace:
			m.appendQuery(" ")
		case tea.KeyBackspace:
			m.eraseQueryRune()
		case tea.KeyEsc:
			m.closeSearch()
		case tea.KeyTab:
			m.cycleFocus()
		case tea.KeyEnter:
			// Jump to the results once there is something to pick.
			if len(m.searchResults) > 0 {
				m.focusedPane = paneTracks
				m.searchSel.Select(0)
			}
		}
		return m, nil
	}

	name, bound := keys.GlobalKeyStringsMap[msg.String()]
	if !bound {
		return m, nil
	}
	switch name {
	case keys.KeyEsc:
		m.closeSearch()
	case keys.KeyTab:
		m.cycleFocus()
	case keys.KeyUp:
		m.navigate(-1)
	case keys.KeyDown:
		m.navigate(1)
	case keys.KeyEnter:
		if m.focusedPane == paneTracks {
			m.playSelected()
		}
	case keys.KeyQueue:
		if m.focusedPane == paneTracks {
			m.queueSelected()
		}
	case keys.KeyQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *home) handleDefaultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, bound := keys.GlobalKeyStringsMap[msg.String()]
	if !bound {
		return m, nil
	}
	switch name {
	case keys.KeyQuit:
		return m, tea.Quit
	case keys.KeySearch:
		m.openSearch()
	case keys.KeyHelp:
		m.showHelp = true
	case keys.KeyControls:
		m.showControls = true
		m.controlsSel.Select(0)
	case keys.KeyTab:
		m.cycleFocus()
	case keys.KeyUp:
		m.navigate(-1)
	case keys.KeyDown:
		m.navigate(1)
	case keys.KeyEnter:
		if m.focusedPane == paneTracks {
			m.playSelected()
		}
	case keys.KeyQueue:
		if m.focusedPane == paneTracks {
			m.queueSelected()
		}
	}
	return m, nil
}

// cycleFocus advances the focus ring. The search input only joins the
// ring while the overlay is visible.
func (m *home) cycleFocus() {
	switch m.focusedPane {
	case panePlaylists:
		m.focusedPane = paneTracks
	case paneTracks:
		if m.showSearch {
			m.focusedPane = paneSearchInput
		} else {
			m.focusedPane = panePlaylists
		}
	case paneSearchInput:
		m.focusedPane = panePlaylists
	}
}

// navigate moves the focused pane's cursor by delta. Moving the
// playlist cursor reloads the track pane for the newly selected
// playlist.
func (m *home) navigate(delta int) {
	switch m.focusedPane {
	case panePlaylists:
		if m.playlistSel.Move(delta, len(m.playlists)) {
			idx, _ := m.playlistSel.Selected()
			m.loadPlaylistTracks(m.playlists[idx].ID)
		}
	case paneTracks:
		list, sel := m.activeList()
		sel.Move(delta, len(list))
	}
}

func (m *home) openSearch() {
	m.showSearch = true
	m.searchInput = ""
	m.searchResults = nil
	m.searchSel.Clear()
	m.pendingSearch = nil
	m.focusedPane = paneSearchInput
}

func (m *home) closeSearch() {
	m.showSearch = false
	m.searchInput = ""
	m.searchResults = nil
	m.searchSel.Clear()
	m.pendingSearch = nil
	m.focusedPane = panePlaylists
}

func (m *home) appendQuery(s string) {
	m.searchInput += s
	m.armSearch()
}

func (m *home) eraseQueryRune() {
	runes := []rune(m.searchInput)
	if len(runes) == 0 {
		return
	}
	m.searchInput = string(runes[:len(runes)-1])
	if m.searchInput == "" {
		// Nothing left to search for; drop stale results too.
		m.searchResults = nil
		m.searchSel.Clear()
		m.pendingSearch = nil
		return
	}
	m.armSearch()
}

func (m *home) armSearch() {
	now := time.Now()
	m.pendingSearch = &now
}
