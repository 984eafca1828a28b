package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// dashWidth returns the uniform inner width used for all sections so the
// boxes line up.
func dashWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

// stats is the summary shown above the menu.
type stats struct {
	Questions int
	Hard      int
	Bases     int
	Backend   string
}

// renderStatsBar renders the summary in a double-bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	count := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bases := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	backend := dim.Render("离线")
	if st.Backend != "" {
		backend = lipgloss.NewStyle().Foreground(theme.Success).Render("● " + st.Backend)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			count.Render(fmt.Sprintf("题%d", st.Questions)),
			bases.Render(fmt.Sprintf("库%d", st.Bases)),
			backend)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			count.Render(fmt.Sprintf("题库 %d 题 (困难 %d)", st.Questions, st.Hard)),
			bases.Render(fmt.Sprintf("知识库 %d 个", st.Bases)),
			backend)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(labels []string, selected, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	active := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		BorderForeground(theme.Accent)
	normal := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)

	buttons := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			buttons[i] = active.Render("▸ " + label)
		} else {
			buttons[i] = normal.Render(label)
		}
	}
	return centered(cw, strings.Join(buttons, "\n"))
}

// renderMenuCompact renders the items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(labels []string, selected, cw int) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(fmt.Sprintf(" ▸ %d. %s ", i+1, label))
		} else {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render(fmt.Sprintf("   %d. %s", i+1, label))
		}
	}
	return centered(cw, strings.Join(lines, "\n"))
}

// renderBackendBanner warns that backend features are unavailable.
func renderBackendBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ 未配置后端地址，练习与知识条目不可用 (见 prepdeck --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latest string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("新版本 %s 可用，运行 prepdeck update 升级", latest))
}

// renderFrame wraps content in a double border, centered within the given
// dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
