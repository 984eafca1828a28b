package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette. Dark background, one accent per state.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgDark)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
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

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)

// Difficulty returns the badge color of a difficulty level. Both the
// backend spelling (easy) and the question bank spelling (Easy) are
// accepted.
func Difficulty(level string) color.Color {
	switch level {
	case "easy", "Easy":
		return Success
	case "medium", "Medium":
		return Warning
	case "hard", "Hard":
		return Error
	default:
		return TextDim
	}
}

// named maps the color names stored on knowledge bases and mind map nodes
// to terminal colors.
var named = map[string]color.Color{
	"blue":   lipgloss.Color("#3B82F6"),
	"green":  lipgloss.Color("#22C55E"),
	"purple": lipgloss.Color("#8B5CF6"),
	"orange": lipgloss.Color("#F97316"),
	"pink":   lipgloss.Color("#EC4899"),
	"red":    lipgloss.Color("#EF4444"),
	"yellow": lipgloss.Color("#EAB308"),
	"indigo": lipgloss.Color("#6366F1"),
}

// Named returns the terminal color for a stored color name. Hex values are
// used as given; unknown names fall back to Text.
func Named(name string) color.Color {
	if c, ok := named[name]; ok {
		return c
	}
	if len(name) == 7 && name[0] == '#' {
		return lipgloss.Color(name)
	}
	return Text
}
