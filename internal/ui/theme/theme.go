// Package theme holds the palette and styles shared by every screen.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm, high-contrast for long sittings
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Flagged = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	// TimerLow highlights the countdown in its final minutes.
	TimerLow = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	MeterFilled = lipgloss.NewStyle().
			Background(Secondary)

	MeterEmpty = lipgloss.NewStyle().
			Background(Border)

	TableHeader = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)
)
