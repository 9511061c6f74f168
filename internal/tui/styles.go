package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary    = lipgloss.Color("39")  // blue
	ColorSuccess    = lipgloss.Color("42")  // green
	ColorMuted      = lipgloss.Color("241") // gray
	ColorBorder     = lipgloss.Color("238")
	ColorForeground = lipgloss.Color("252")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(22)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	BestValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)
