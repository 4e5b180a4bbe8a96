package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles for the interactive session.
var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAFD7")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D787"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF005F")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C")).
			Italic(true)
)
