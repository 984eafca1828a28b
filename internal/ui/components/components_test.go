package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(f Form, s string) Form {
	for _, r := range s {
		f, _ = f.Update(keyPress(r))
	}
	return f
}

func TestMenuDigitSelects(t *testing.T) {
	picked := ""
	item := func(name string) MenuItem {
		return MenuItem{Label: name, Action: func() tea.Cmd {
			picked = name
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("a"), item("b"), item("c")})

	m, _ = m.Update(keyPress('2'))
	if m.Selected != 1 || picked != "b" {
		t.Errorf("Selected = %d, picked = %q; want 1, b", m.Selected, picked)
	}

	m, _ = m.Update(keyPress('9'))
	if m.Selected != 1 {
		t.Errorf("out of range digit moved selection to %d", m.Selected)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}, {Label: "c", Disabled: true}, {Label: "d"}})
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	if !strings.Contains(m.View(), "▸ 4. d") {
		t.Errorf("view does not mark the selection:\n%s", m.View())
	}
}

func TestChoiceCycles(t *testing.T) {
	c := NewChoice("Difficulty", []string{"easy", "medium", "hard"}, "medium")
	if c.Value() != "medium" {
		t.Fatalf("Value = %q, want medium", c.Value())
	}
	c, _ = c.Update(specialKey(tea.KeyRight))
	c, _ = c.Update(specialKey(tea.KeyRight))
	if c.Value() != "easy" {
		t.Errorf("after wrapping Value = %q, want easy", c.Value())
	}
	c, _ = c.Update(specialKey(tea.KeyLeft))
	if c.Value() != "hard" {
		t.Errorf("Value = %q, want hard", c.Value())
	}
	c.SetValue("nope")
	if c.Value() != "hard" {
		t.Errorf("unknown SetValue changed selection to %q", c.Value())
	}
}

func TestFormFocusAndSubmit(t *testing.T) {
	f := NewForm("create", "New", "Create",
		[]TextInput{NewTextInput("Name", "", 0), NewTextInput("Description", "", 0)},
		[]Choice{NewChoice("Type", []string{"notes", "mindmap"}, "notes")},
	)
	if !f.Inputs[0].Focused() {
		t.Fatal("first input should be focused")
	}

	f = typeText(f, "  go ")
	f, _ = f.Update(specialKey(tea.KeyEnter))
	if f.Inputs[0].Focused() || !f.Inputs[1].Focused() {
		t.Fatal("enter should move focus to the next input")
	}
	if f.Value(0) != "go" {
		t.Errorf("Value(0) = %q, want trimmed go", f.Value(0))
	}

	f, _ = f.Update(specialKey(tea.KeyTab))
	f, _ = f.Update(specialKey(tea.KeyRight))
	if f.Choice(0) != "mindmap" {
		t.Errorf("Choice(0) = %q, want mindmap", f.Choice(0))
	}

	f, _ = f.Update(specialKey(tea.KeyTab))
	_, cmd := f.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on the button should submit")
	}
	if msg, ok := cmd().(FormSubmitMsg); !ok || msg.ID != "create" {
		t.Errorf("got %#v, want FormSubmitMsg{create}", cmd())
	}
}

func TestFormShortcuts(t *testing.T) {
	f := NewForm("f", "", "Save", []TextInput{NewTextInput("A", "", 0)}, nil)

	_, cmd := f.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if _, ok := cmd().(FormSubmitMsg); !ok {
		t.Error("ctrl+s should submit")
	}
	_, cmd = f.Update(specialKey(tea.KeyEscape))
	if _, ok := cmd().(FormCancelMsg); !ok {
		t.Error("esc should cancel")
	}

	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if !f.submit.Active {
		t.Error("shift+tab from the first field should wrap to the button")
	}
}

func TestTextInputNumericOnly(t *testing.T) {
	in := NewTextInput("Seek", "", 3)
	in.NumericOnly = true
	in.Focus()
	for _, r := range "4x2" {
		in, _ = in.Update(keyPress(r))
	}
	n, err := in.NumericValue()
	if err != nil || n != 42 {
		t.Errorf("NumericValue = %d, %v; want 42", n, err)
	}
}

func TestCursorClamp(t *testing.T) {
	var c Cursor
	c.Update(specialKey(tea.KeyUp), 3)
	if c.Index != 0 {
		t.Errorf("Index = %d, want 0", c.Index)
	}
	c.Update(specialKey(tea.KeyEnd), 3)
	if c.Index != 2 {
		t.Errorf("Index = %d, want 2", c.Index)
	}
	c.Clamp(1)
	if c.Index != 0 {
		t.Errorf("after shrink Index = %d, want 0", c.Index)
	}
	if c.Update(keyPress('x'), 3) {
		t.Error("x should not be consumed")
	}
}

func TestRenderListScrolls(t *testing.T) {
	rows := []string{"r0", "r1", "r2", "r3", "r4"}
	out := RenderList(rows, 4, 2)
	if strings.Contains(out, "r2") || !strings.Contains(out, "r3") || !strings.Contains(out, "r4") {
		t.Errorf("window should show r3 and r4 only:\n%s", out)
	}
}

func TestErrorLine(t *testing.T) {
	if ErrorLine("", "x") != "" {
		t.Error("empty message should render nothing")
	}
	out := ErrorLine("boom", "x")
	if !strings.Contains(out, "boom") || !strings.Contains(out, "x to dismiss") {
		t.Errorf("ErrorLine = %q", out)
	}
}

func TestProgressBarFilled(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{-5, 0},
		{0, 0},
		{50, 10},
		{99.9, 19},
		{150, 20},
	}
	for _, tt := range tests {
		if got := NewProgressBar(tt.percent, "", 20).Filled(20); got != tt.want {
			t.Errorf("Filled(%v) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestProgressBarPlayheadAtEnd(t *testing.T) {
	bar := NewProgressBar(100, "30:00 / 30:00", 40)
	bar.Playhead = true
	v := bar.View()
	if strings.Count(v, "●") != 1 {
		t.Errorf("want exactly one playhead in %q", v)
	}
	if !strings.Contains(v, "30:00 / 30:00") {
		t.Errorf("caption missing from %q", v)
	}
}
