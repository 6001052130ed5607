package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	chanLabelW = 7 // visual width of the channel label column
)

// ampGlyphs is the envelope magnitude ramp used by the timeline sparklines.
var ampGlyphs = []rune("▁▂▃▄▅▆▇█")

// Lipgloss styles used across the TUI.
var (
	timelineStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	backendStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bb9af7")).
			Padding(1)

	controlsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	driveLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	crLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64"))

	measLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	pulsePosStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73daca"))

	pulseNegStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	acquireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	menuBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff9e64")).
			Padding(0, 1)

	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff9e64"))

	menuNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))
)

// labelStyle picks the label style for a channel kind.
func labelStyle(k ChannelKind) lipgloss.Style {
	switch k {
	case ControlChannel:
		return crLabelStyle
	case MeasureChannel, AcquireChannel:
		return measLabelStyle
	}
	return driveLabelStyle
}
