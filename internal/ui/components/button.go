package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// Button is a focusable action. Enter presses it while it is active.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton returns a button that runs onPress when pressed.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	if key.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render(" ▸ " + b.Label + " ")
	}
	return theme.ButtonInactive.Render("   " + b.Label + " ")
}
