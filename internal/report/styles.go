package report

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // cyan: section headings
	colorAccent  = lipgloss.Color("#FFD700") // gold: headline numbers
	colorMuted   = lipgloss.Color("#8C8C8C") // gray: labels
)

var (
	styleHeading = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleValue = lipgloss.NewStyle().
			Foreground(colorAccent)
)
