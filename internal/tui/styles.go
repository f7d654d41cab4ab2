package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	subtitleStyle = lipgloss.NewStyle().Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 4).
			Width(24).
			Align(lipgloss.Center)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("#22c55e"))

	nameStyle  = lipgloss.NewStyle().Bold(true)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#facc15"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)
