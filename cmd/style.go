package cmd

import "github.com/charmbracelet/lipgloss"

// lipgloss drops the styling when stdout is not a terminal.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)
