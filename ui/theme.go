package ui

import "github.com/charmbracelet/lipgloss"

// Rosé Pine Moon palette
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning, paused
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // device, link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, playing, focused pane
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, primary
)

// Shared pane chrome. Focus is signalled by the border color alone so
// pane content keeps the same footprint either way.
var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorFoam)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Bold(true)

	focusedPaneTitleStyle = lipgloss.NewStyle().
				Foreground(ColorFoam).
				Bold(true)

	listItemStyle = lipgloss.NewStyle().Foreground(ColorText)

	selectedListItemStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorIris)

	mutedTextStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
