package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/spindle/ui"
)

var (
	helpSectionStyle = lipgloss.NewStyle().
				Foreground(ui.ColorGold).
				Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorFoam).
			Width(16)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ui.ColorText)

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPine)
)

func helpEntry(key, desc string) string {
	return helpKeyStyle.Render(key) + helpDescStyle.Render(desc)
}

// RenderHelp draws the full keybinding reference popup.
func RenderHelp() string {
	lines := []string{
		popupTitleStyle.Render("Help"),
		"",
		helpSectionStyle.Render("Navigation"),
		"",
		helpEntry("Tab", "Switch between playlists and tracks panes"),
		helpEntry("↑/↓ or Ctrl+P/N", "Navigate up/down in current pane"),
		helpEntry("Enter", "Play track or load playlist"),
		"",
		helpSectionStyle.Render("Features"),
		"",
		helpEntry("s", "Search for tracks"),
		helpEntry("Space", "Open playback controls"),
		helpEntry("+", "Add track to queue"),
		helpEntry("q", "Quit application"),
		helpEntry("?", "Show this help"),
		"",
		helpSectionStyle.Render("Playback Controls"),
		"",
		helpDescStyle.Render("Press Space to open the playback controls popup with:"),
		helpDescStyle.Render("  • Play/Pause current track"),
		helpDescStyle.Render("  • Skip to previous/next track"),
		"",
		helpFooterStyle.Render("Press Esc or ? to close this help"),
	}
	return popupStyle.Render(strings.Join(lines, "\n"))
}
