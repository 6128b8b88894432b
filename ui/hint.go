package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintKeyStyle  = lipgloss.NewStyle().Foreground(ColorGold)
	hintTextStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// RenderHelpHint draws the one-line key legend under the panes.
func RenderHelpHint(width int) string {
	entries := []struct {
		key  string
		desc string
	}{
		{"?", "for help"},
		{"Tab", "to switch panes"},
		{"q", "to quit"},
		{"Space", "for controls"},
		{"s", "for search"},
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = hintKeyStyle.Render(e.key) + hintTextStyle.Render(" "+e.desc)
	}
	line := strings.Join(parts, hintTextStyle.Render("  |  "))

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
}
