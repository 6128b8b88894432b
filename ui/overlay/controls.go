package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/spindle/ui"
)

var (
	controlItemStyle = lipgloss.NewStyle().
				Foreground(ui.ColorText).
				Background(ui.ColorSurface)

	selectedControlStyle = lipgloss.NewStyle().
				Foreground(ui.ColorBase).
				Background(ui.ColorIris)
)

// ControlItems returns the playback controls entries in display and
// activation order.
func ControlItems(isPlaying bool) []string {
	toggle := "▶ Play"
	if isPlaying {
		toggle = "⏸ Pause"
	}
	return []string{toggle, "⏮ Previous", "⏭ Next", "✕ Close"}
}

// RenderControls draws the playback controls popup.
func RenderControls(isPlaying bool, selected int) string {
	items := ControlItems(isPlaying)
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, popupTitleStyle.Render("Playback Controls"), "")
	for i, item := range items {
		prefix, style := "   ", controlItemStyle
		if i == selected {
			prefix, style = "❯❯ ", selectedControlStyle
		}
		lines = append(lines, style.Render(prefix+item))
	}
	return popupStyle.Render(strings.Join(lines, "\n"))
}
