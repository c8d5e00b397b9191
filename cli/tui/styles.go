// Package tui provides Bubble Tea TUI components for the parlog CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only: it browses a finished pass, never writes files
//   - TUI uses the same Result as non-TUI rendering
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/parlog/reconcile"
)

// Color palette. Exported so table rendering can share it.
var (
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SuccessColor   = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	MutedColor     = lipgloss.Color("#6B7280") // Gray
	HighlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(16)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			MarginTop(1)

	// StatBoxStyle frames one bucket count.
	StatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(HighlightColor).
			Padding(0, 1).
			Width(16).
			Align(lipgloss.Center)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Align(lipgloss.Center)

	StatValueStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)
)

// StateColor returns the palette color for a bucket.
func StateColor(st reconcile.State) lipgloss.Color {
	switch {
	case st == reconcile.StateSuccessfulUnique:
		return SuccessColor
	case st.IsFailure():
		return ErrorColor
	case st.IsAnomaly(), st == reconcile.StateNotRun:
		return WarningColor
	default:
		return HighlightColor
	}
}

// StateStyle returns a text style for a bucket.
func StateStyle(st reconcile.State) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StateColor(st))
}
