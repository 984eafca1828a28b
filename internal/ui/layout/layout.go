package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30

	appName  = "  prepdeck"
	hintGap  = "   "
	boxInset = 4 // border plus padding
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left between a rendered header and footer.
func ContentHeight(totalHeight int, header, footer string) int {
	return max(totalHeight-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderMinSizeMessage renders the "terminal too small" notice.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"终端窗口太小\n\n请调整到至少 %d x %d\n\n当前 %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: app name on the left, the screen
// title centered and status (backend host, busy marker) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-boxInset, 0)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	room := inner - lipgloss.Width(left) - leftGap - lipgloss.Width(center) - 1
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(ansi.Truncate(status, max(room, 0), "…"))

	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return box(content, width)
}

// RenderFooter renders the key hints. Hints that do not fit are dropped
// from the middle so the last one (usually quit) stays visible.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	parts = fitHints(parts, max(width-boxInset-2, 0))
	return box("  "+strings.Join(parts, hintGap), width)
}

func fitHints(parts []string, width int) []string {
	fits := func(p []string) bool {
		return lipgloss.Width(strings.Join(p, hintGap)) <= width
	}
	for len(parts) > 1 && !fits(parts) {
		parts = append(parts[:len(parts)-2:len(parts)-2], parts[len(parts)-1])
	}
	return parts
}

func box(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height in between.
func RenderFrame(header, content, footer string, width, height int) string {
	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(height, header, footer)).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
