package cli

import (
	"github.com/charmbracelet/lipgloss"

	"task-hunter/internal/domain"
)

// Adaptive colors so output stays readable on light and dark terminals.
var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
)

// Semantic styles for CLI output.
var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleDanger  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorDim)
)

// statusStyle returns the row style for a task status in list output.
func statusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusCurrent:
		return styleSuccess
	case domain.StatusInProgress:
		return styleWarning
	default:
		return lipgloss.NewStyle()
	}
}
