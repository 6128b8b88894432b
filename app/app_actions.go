package app

import (
	"fmt"

	"github.com/kastheco/spindle/log"
)

// Playback controls popup entries, in display order.
const (
	controlToggle = iota
	controlPrevious
	controlNext
	controlClose

	controlCount
)

// loadPlaylistTracks replaces the tracks pane content. Blocks the loop
// until the pull finishes so the pane never shows another playlist's
// tracks against the new title.
func (m *home) loadPlaylistTracks(playlistID string) {
	tracks, err := m.svc.GetPlaylistTracks(playlistID)
	if err != nil {
		log.ErrorLog.Printf("failed to load tracks for playlist %s: %v", playlistID, err)
		m.setError(fmt.Sprintf("Failed to load playlist tracks: %v", err))
		return
	}
	m.tracks = tracks
	m.trackSel.Clear()
	if len(m.tracks) > 0 {
		m.trackSel.Select(0)
	}
}

// playSelected starts playback of the highlighted track in whichever
// list the tracks pane currently shows.
func (m *home) playSelected() {
	list, sel := m.activeList()
	idx, ok := sel.Selected()
	if !ok || idx >= len(list) {
		return
	}
	if err := m.svc.PlayTrack(list[idx].URI); err != nil {
		log.ErrorLog.Printf("play failed for %s: %v", list[idx].URI, err)
		m.setError(err.Error())
	}
}

// queueSelected appends the highlighted track to the player queue and
// re-pulls the queue so the pane reflects the change immediately.
func (m *home) queueSelected() {
	list, sel := m.activeList()
	idx, ok := sel.Selected()
	if !ok || idx >= len(list) {
		return
	}
	if err := m.svc.AddToQueue(list[idx].URI); err != nil {
		log.ErrorLog.Printf("queue add failed for %s: %v", list[idx].URI, err)
		m.setError(err.Error())
		return
	}
	if queue, err := m.svc.GetQueue(); err == nil {
		m.queue = queue
	}
}

// activateControl runs the highlighted playback controls entry.
func (m *home) activateControl() {
	idx, ok := m.controlsSel.Selected()
	if !ok {
		return
	}

	var err error
	switch idx {
	case controlToggle:
		if m.nowPlaying != nil && m.nowPlaying.IsPlaying {
			err = m.svc.Pause()
		} else {
			err = m.svc.Resume()
		}
	case controlPrevious:
		err = m.svc.Previous()
	case controlNext:
		err = m.svc.Next()
	case controlClose:
		m.showControls = false
		return
	}
	if err != nil {
		log.ErrorLog.Printf("playback control failed: %v", err)
		m.setError(err.Error())
		return
	}
	// Reflect the new player state without waiting for the next poll.
	if playing, pollErr := m.svc.GetCurrentlyPlaying(); pollErr == nil {
		m.nowPlaying = playing
	}
}
