package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// Cursor tracks the highlighted row of a list whose length may change
// between frames.
type Cursor struct {
	Index int
}

// Update moves the cursor on up/down/home/end keys. It reports whether the
// key was consumed.
func (c *Cursor) Update(msg tea.Msg, n int) bool {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch kmsg.String() {
	case "up", "k":
		c.Index--
	case "down", "j":
		c.Index++
	case "pgup":
		c.Index -= 10
	case "pgdown":
		c.Index += 10
	case "home", "g":
		c.Index = 0
	case "end", "G":
		c.Index = n - 1
	default:
		return false
	}
	c.Clamp(n)
	return true
}

// Clamp keeps the cursor inside [0, n).
func (c *Cursor) Clamp(n int) {
	if c.Index >= n {
		c.Index = n - 1
	}
	if c.Index < 0 {
		c.Index = 0
	}
}

// RenderList renders rows with the selected one marked, scrolled so the
// selection stays within height lines.
func RenderList(rows []string, selected, height int) string {
	if height < 1 {
		height = 1
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == selected {
			b.WriteString(theme.Selected.Render("▸ ") + rows[i])
		} else {
			b.WriteString("  " + rows[i])
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
