package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/spindle/ui"
)

var (
	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorIris).
			Background(ui.ColorSurface).
			Padding(0, 1)

	popupTitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorIris).
			Bold(true)

	errorPopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorLove).
			Background(ui.ColorSurface).
			Padding(0, 1)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorLove).
			Bold(true)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(ui.ColorLove).
			Width(56)

	statusTextStyle = lipgloss.NewStyle().
			Foreground(ui.ColorGold)
)

// RenderError draws the dismissible error banner.
func RenderError(message string) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		errorTitleStyle.Render("Error - Press any key to continue"),
		"",
		errorTextStyle.Render(message),
	)
	return errorPopupStyle.Render(content)
}

// RenderStatus draws the transient startup popup with a spinner.
func RenderStatus(status, spinnerView string) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		popupTitleStyle.Render("Status"),
		"",
		spinnerView+" "+statusTextStyle.Render(status),
	)
	return popupStyle.Render(content)
}
