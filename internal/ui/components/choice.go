package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// Choice is a single-line selector cycled with left/right.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a selector with value preselected when present.
func NewChoice(label string, options []string, value string) Choice {
	c := Choice{Label: label, Options: options}
	if i := slices.Index(options, value); i >= 0 {
		c.Selected = i
	}
	return c
}

// Update cycles the selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// Value returns the selected option.
func (c Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Selected]
}

// SetValue selects value if it is one of the options.
func (c *Choice) SetValue(value string) {
	if i := slices.Index(c.Options, value); i >= 0 {
		c.Selected = i
	}
}

// View renders the label and every option, the selected one highlighted.
func (c Choice) View() string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	if c.focused {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		if i == c.Selected {
			parts[i] = theme.Selected.Render("[" + opt + "]")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + opt + " ")
		}
	}
	return style.Render(c.Label) + " " + strings.Join(parts, " ")
}
