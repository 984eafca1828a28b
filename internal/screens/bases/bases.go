// Package bases is the knowledge base manager. Each base opens the tool
// screen of its type.
package bases

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const formID = "base"

// Opener builds the tool screen of a base.
type Opener func(kb *knowledge.Base) (screen.Screen, error)

// BasesScreen lists knowledge bases.
type BasesScreen struct {
	bases *knowledge.Bases
	open  Opener
	now   func() time.Time

	cursor    components.Cursor
	filter    components.TextInput
	filtering bool
	form      *components.Form
	confirm   string // id awaiting a second d
	err       string
}

var _ screen.Screen = (*BasesScreen)(nil)

// New creates the screen and loads the bases.
func New(bases *knowledge.Bases, open Opener) *BasesScreen {
	s := &BasesScreen{
		bases:  bases,
		open:   open,
		now:    time.Now,
		filter: components.NewTextInput("筛选", "名称 / 描述", 64),
	}
	s.reload()
	return s
}

func (s *BasesScreen) Title() string {
	return "知识库"
}

func (s *BasesScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the form or the filter owns the keyboard.
func (s *BasesScreen) CapturingInput() bool {
	return s.form != nil || s.filtering
}

func (s *BasesScreen) reload() {
	if err := s.bases.Load(context.Background()); err != nil {
		s.err = err.Error()
	}
	s.cursor.Clamp(len(s.visible()))
}

func (s *BasesScreen) visible() []*knowledge.Base {
	return s.bases.Filter(s.filter.Value())
}

func (s *BasesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		s.reload()
		return s, nil
	case components.FormSubmitMsg:
		if msg.ID == formID && s.form != nil {
			s.create()
		}
		return s, nil
	case components.FormCancelMsg:
		s.form = nil
		return s, nil
	}

	if s.form != nil {
		f, cmd := s.form.Update(msg)
		s.form = &f
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.filtering {
		switch kmsg.String() {
		case "esc", "enter":
			s.filtering = false
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.cursor.Index = 0
		return s, cmd
	}

	key := kmsg.String()
	if key != "d" {
		s.confirm = ""
	}
	list := s.visible()
	if s.cursor.Update(msg, len(list)) {
		return s, nil
	}
	var sel *knowledge.Base
	if len(list) > 0 {
		sel = list[s.cursor.Index]
	}

	switch key {
	case "enter":
		if sel == nil {
			return s, nil
		}
		scr, err := s.open(sel)
		if err != nil {
			s.err = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	case "n":
		return s, s.openForm()
	case "d":
		if sel == nil {
			return s, nil
		}
		if s.confirm != sel.ID {
			s.confirm = sel.ID
			return s, nil
		}
		s.confirm = ""
		if err := s.bases.Delete(context.Background(), sel.ID); err != nil {
			s.err = err.Error()
		}
		s.cursor.Clamp(len(s.visible()))
	case "/":
		s.filtering = true
		return s, s.filter.Focus()
	case "x":
		s.err = ""
	case "esc":
		if s.filter.Value() != "" {
			s.filter.SetValue("")
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func typeLabels() []string {
	labels := make([]string, len(knowledge.BaseTypes))
	for i, t := range knowledge.BaseTypes {
		labels[i] = t.Label()
	}
	return labels
}

func (s *BasesScreen) openForm() tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("名称", "例如: Go 并发", 40),
		components.NewTextInput("描述", "可选", 200),
	}
	inputs[0].Required = true
	labels := typeLabels()
	choices := []components.Choice{components.NewChoice("类型", labels, labels[0])}
	f := components.NewForm(formID, "新建知识库", "创建", inputs, choices)
	s.form = &f
	return f.Init()
}

func (s *BasesScreen) create() {
	f := s.form
	typ := knowledge.BaseTypes[0]
	for _, t := range knowledge.BaseTypes {
		if t.Label() == f.Choice(0) {
			typ = t
		}
	}
	kb, err := s.bases.Create(context.Background(), f.Value(0), f.Value(1), typ, s.now())
	if err != nil {
		f.Err = err.Error()
		return
	}
	s.form = nil
	s.filter.SetValue("")
	for i, b := range s.bases.All() {
		if b.ID == kb.ID {
			s.cursor.Index = i
		}
	}
}

func (s *BasesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.form != nil {
		return s.form.View(cw)
	}

	all := s.bases.All()
	header := theme.Hint.Render(fmt.Sprintf("共 %d 个知识库", len(all)))
	if s.filtering || s.filter.Value() != "" {
		header += "\n" + s.filter.View()
	}

	var body string
	list := s.visible()
	switch {
	case len(all) == 0:
		body = components.Empty("还没有知识库，按 n 新建")
	case len(list) == 0:
		body = components.Empty("没有匹配的知识库")
	default:
		rows := make([]string, len(list))
		for i, kb := range list {
			dot := lipgloss.NewStyle().Foreground(theme.Named(kb.Color)).Render("●")
			rows[i] = fmt.Sprintf("%s %s  %s  %s",
				dot, kb.Name,
				theme.Subtitle.Render(fmt.Sprintf("%s · %d 项", kb.Type.Label(), kb.ItemCount)),
				theme.Hint.Render(kb.UpdatedAt.Local().Format("2006-01-02")))
			if kb.Description != "" {
				rows[i] += "  " + theme.Hint.Render(kb.Description)
			}
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
	}
	if s.confirm != "" {
		if kb := s.bases.Get(s.confirm); kb != nil {
			body += "\n\n" + theme.Incorrect.Render("再按 d 删除「"+kb.Name+"」及其全部内容")
		}
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel("知识库", header+"\n\n"+body, cw, true)
}

func (s *BasesScreen) KeyHints() []layout.KeyHint {
	if s.form != nil {
		return []layout.KeyHint{{Key: "Tab", Description: "下一项"}, {Key: "Ctrl+S", Description: "创建"}, {Key: "Esc", Description: "取消"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "打开"},
		{Key: "n", Description: "新建"},
		{Key: "d", Description: "删除"},
		{Key: "/", Description: "筛选"},
		{Key: "Esc", Description: "返回"},
	}
}
