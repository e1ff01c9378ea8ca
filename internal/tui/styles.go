package tui

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3).
			Align(lipgloss.Center)

	headlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	encouragementStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Italic(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true).
			MarginBottom(1)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(cellWidth).
			Align(lipgloss.Center)

	dayStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	confirmedStyle = dayStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("35")).
			Bold(true)

	outsideMonthStyle = dayStyle.
				Foreground(lipgloss.Color("238"))

	futureStyle = dayStyle.
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().Underline(true)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

const cellWidth = 5
