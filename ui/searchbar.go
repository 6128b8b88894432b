package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var (
	searchQueryStyle  = lipgloss.NewStyle().Foreground(ColorGold)
	searchCursorStyle = lipgloss.NewStyle().Foreground(ColorGold).Blink(true)
)

// RenderSearchBar draws the one-line query box above the results pane.
// A block cursor marks the insertion point while the input is focused.
func RenderSearchBar(query string, focused bool, width int) string {
	pane, titleStyle := paneStyle, paneTitleStyle
	if focused {
		pane, titleStyle = focusedPaneStyle, focusedPaneTitleStyle
	}

	innerWidth := width - 2
	if innerWidth < 1 {
		return ""
	}

	// Keep the tail of long queries in view.
	visible := innerWidth - 1
	runes := []rune(query)
	if len(runes) > visible {
		runes = runes[len(runes)-visible:]
	}
	line := searchQueryStyle.Render(string(runes))
	if focused {
		line += searchCursorStyle.Render("█")
	}

	content := titleStyle.Render(truncate.String("Search", uint(innerWidth))) + "\n" + line
	return pane.Width(innerWidth).Render(content)
}
