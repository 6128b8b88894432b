package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/kastheco/spindle/internal/spotify"
)

var (
	playingIconStyle = lipgloss.NewStyle().Foreground(ColorFoam)
	pausedIconStyle  = lipgloss.NewStyle().Foreground(ColorGold)
	trackNameStyle   = lipgloss.NewStyle().Foreground(ColorText)
	artistStyle      = lipgloss.NewStyle().Foreground(ColorSubtle)
	deviceStyle      = lipgloss.NewStyle().Foreground(ColorPine)
)

// RenderNowPlaying draws the player state pane.
func RenderNowPlaying(playing *spotify.CurrentlyPlaying, width, height int) string {
	innerWidth := width - 2
	innerHeight := height - 2
	if innerWidth < 1 || innerHeight < 1 {
		return ""
	}

	lines := []string{paneTitleStyle.Render("Now Playing")}
	switch {
	case playing == nil:
		lines = append(lines, mutedTextStyle.Render("Nothing currently playing"))
	case playing.Item == nil:
		lines = append(lines, mutedTextStyle.Render("No track information available"))
	default:
		track := playing.Item
		icon := playingIconStyle.Render("▶")
		if !playing.IsPlaying {
			icon = pausedIconStyle.Render("⏸")
		}
		name := truncate.String(track.Name, uint(max(0, innerWidth-2)))
		lines = append(lines, icon+" "+trackNameStyle.Render(name))
		lines = append(lines, artistStyle.Render(truncate.String(track.ArtistNames(), uint(innerWidth))))

		deviceName := "Unknown Device"
		if playing.Device != nil {
			deviceName = playing.Device.Name
		}
		lines = append(lines, deviceStyle.Render(truncate.String(deviceName, uint(innerWidth))))

		if playing.ProgressMS != nil {
			progress := FormatTimestamp(*playing.ProgressMS) + " / " + FormatTimestamp(track.DurationMS)
			lines = append(lines, mutedTextStyle.Render(progress))
		}
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	return paneStyle.Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))
}
