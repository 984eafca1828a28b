package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// FormSubmitMsg is emitted when a form is submitted with enter on its
// button or ctrl+s anywhere.
type FormSubmitMsg struct {
	ID string
}

// FormCancelMsg is emitted when a form is dismissed with esc.
type FormCancelMsg struct {
	ID string
}

// Form is a vertical stack of text inputs followed by choices and a submit
// button. Tab and shift+tab move the focus.
type Form struct {
	ID      string
	Title   string
	Inputs  []TextInput
	Choices []Choice
	Err     string

	submit Button
	focus  int
}

// NewForm creates a form with the first input focused.
func NewForm(id, title, submitLabel string, inputs []TextInput, choices []Choice) Form {
	f := Form{
		ID:      id,
		Title:   title,
		Inputs:  inputs,
		Choices: choices,
	}
	f.submit = NewButton(submitLabel, false, func() tea.Cmd {
		return func() tea.Msg { return FormSubmitMsg{ID: id} }
	})
	f.setFocus(0)
	return f
}

func (f *Form) size() int {
	return len(f.Inputs) + len(f.Choices) + 1
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.focus = (i + f.size()) % f.size()
	var cmd tea.Cmd
	for j := range f.Inputs {
		if j == f.focus {
			cmd = f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
	for j := range f.Choices {
		f.Choices[j].focused = len(f.Inputs)+j == f.focus
	}
	f.submit.Active = f.focus == f.size()-1
	return cmd
}

// Init focuses the first input.
func (f Form) Init() tea.Cmd {
	return f.setFocus(f.focus)
}

// Update routes keys to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			id := f.ID
			return f, func() tea.Msg { return FormCancelMsg{ID: id} }
		case "ctrl+s":
			id := f.ID
			return f, func() tea.Msg { return FormSubmitMsg{ID: id} }
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		case "enter":
			if !f.submit.Active {
				return f, f.setFocus(f.focus + 1)
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case f.focus < len(f.Inputs):
		f.Inputs[f.focus], cmd = f.Inputs[f.focus].Update(msg)
	case f.focus < len(f.Inputs)+len(f.Choices):
		i := f.focus - len(f.Inputs)
		f.Choices[i], cmd = f.Choices[i].Update(msg)
	default:
		f.submit, cmd = f.submit.Update(msg)
	}
	return f, cmd
}

// Value returns the trimmed value of input i.
func (f Form) Value(i int) string {
	return f.Inputs[i].Value()
}

// Choice returns the selected option of choice i.
func (f Form) Choice(i int) string {
	return f.Choices[i].Value()
}

// View renders the form in a card of the given width.
func (f Form) View(width int) string {
	var b strings.Builder
	if f.Title != "" {
		b.WriteString(theme.Title.Render(f.Title) + "\n\n")
	}
	for _, in := range f.Inputs {
		b.WriteString(in.View() + "\n")
	}
	for _, c := range f.Choices {
		b.WriteString(c.View() + "\n")
	}
	b.WriteString("\n" + f.submit.View())
	if f.Err != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(f.Err))
	}
	b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("tab next · ctrl+s save · esc cancel"))
	return theme.FocusedCard.Width(width).Render(b.String())
}
