package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// RenderListPane draws a bordered, titled list pane of the exact given
// size. selected is the highlighted index, or -1 for no highlight.
// When the list outgrows the pane, a window around the selection is
// shown.
func RenderListPane(title string, items []string, selected, width, height int, focused bool) string {
	pane, titleStyle := paneStyle, paneTitleStyle
	if focused {
		pane, titleStyle = focusedPaneStyle, focusedPaneTitleStyle
	}

	innerWidth := width - 2
	innerHeight := height - 2
	if innerWidth < 1 || innerHeight < 1 {
		return ""
	}

	lines := make([]string, 0, innerHeight)
	lines = append(lines, titleStyle.Render(truncate.String(title, uint(innerWidth))))

	visible := innerHeight - 1
	offset := windowOffset(selected, len(items), visible)
	for i := offset; i < len(items) && i < offset+visible; i++ {
		prefix, style := "  ", listItemStyle
		if i == selected {
			prefix, style = "❯ ", selectedListItemStyle
		}
		line := truncate.String(prefix+items[i], uint(innerWidth))
		line += strings.Repeat(" ", max(0, innerWidth-runewidth.StringWidth(line)))
		lines = append(lines, style.Render(line))
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	return pane.Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))
}

// windowOffset keeps the selection roughly centered once the list
// overflows the pane.
func windowOffset(selected, count, visible int) int {
	if visible <= 0 || count <= visible || selected < 0 {
		return 0
	}
	offset := selected - visible/2
	if offset < 0 {
		offset = 0
	}
	if offset > count-visible {
		offset = count - visible
	}
	return offset
}
