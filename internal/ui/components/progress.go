package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const minBarWidth = 4

// ProgressBar is a one-line bar. Percent runs from 0 to 100; Caption is
// drawn to the right, e.g. "3 / 10" or "1:05 / 30:00". A playhead marks
// the current position, which suits seekable media.
type ProgressBar struct {
	Percent  float64
	Caption  string
	Playhead bool
	Width    int
}

// NewProgressBar returns a bar of the given total width.
func NewProgressBar(percent float64, caption string, width int) ProgressBar {
	return ProgressBar{Percent: percent, Caption: caption, Width: width}
}

// Filled returns how many of n cells are filled.
func (p ProgressBar) Filled(n int) int {
	return max(0, min(n, int(float64(n)*p.Percent/100)))
}

func (p ProgressBar) View() string {
	caption := ""
	if p.Caption != "" {
		caption = "  " + theme.Hint.Render(p.Caption)
	}
	n := max(p.Width-lipgloss.Width(caption), minBarWidth)
	filled := p.Filled(n)

	done := lipgloss.NewStyle().Foreground(theme.Secondary)
	rest := lipgloss.NewStyle().Foreground(theme.Border)

	var b strings.Builder
	if p.Playhead {
		head := min(filled, n-1)
		b.WriteString(done.Render(strings.Repeat("━", head)))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("●"))
		b.WriteString(rest.Render(strings.Repeat("─", n-head-1)))
	} else {
		b.WriteString(done.Render(strings.Repeat("█", filled)))
		b.WriteString(rest.Render(strings.Repeat("░", n-filled)))
	}
	b.WriteString(caption)
	return b.String()
}
