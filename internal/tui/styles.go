package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#F2A03D")
	muted  = lipgloss.Color("#7D7D7D")
	danger = lipgloss.Color("#E5484D")
	okay   = lipgloss.Color("#46A758")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2).
			Width(46)

	nameStyle  = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(muted)
	errStyle   = lipgloss.NewStyle().Foreground(danger)
	okStyle    = lipgloss.NewStyle().Foreground(okay)
	helpStyle  = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	labelStyle = lipgloss.NewStyle().Width(18)
	focusStyle = lipgloss.NewStyle().Foreground(accent)
)
