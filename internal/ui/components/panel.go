package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// ContentWidth returns the inner width of a full-width panel, capped so
// text stays readable on wide terminals.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 4
	if w > 120 {
		w = 120
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel renders content under a title in a rounded card. A focused panel
// gets the primary border color.
func Panel(title, content string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	w := width - 2
	if w < 1 {
		w = 1
	}
	return style.Width(w).Render(content)
}

// ErrorLine renders an inline error with its dismiss hint. It is empty when
// msg is empty.
func ErrorLine(msg, dismissKey string) string {
	if msg == "" {
		return ""
	}
	line := theme.ErrorText.Render("✗ " + msg)
	if dismissKey != "" {
		line += "  " + theme.Hint.Render("("+dismissKey+" to dismiss)")
	}
	return line
}

// Badge renders a short colored label such as a difficulty.
func Badge(text string) string {
	return lipgloss.NewStyle().
		Foreground(theme.Difficulty(text)).
		Bold(true).
		Render(text)
}

// Tags renders tags as "#a #b".
func Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(parts, " "))
}

// Empty renders the placeholder shown for an empty list.
func Empty(msg string) string {
	return theme.Hint.Render(msg)
}
