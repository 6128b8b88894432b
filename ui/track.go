package ui

import (
	"fmt"

	"github.com/kastheco/spindle/internal/spotify"
)

// TrackLine formats a track for list display.
func TrackLine(t spotify.Track) string {
	artists := t.ArtistNames()
	if artists == "" {
		return t.Name
	}
	return t.Name + " - " + artists
}

// FormatTimestamp renders a millisecond offset as m:ss.
func FormatTimestamp(ms int) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
