// Package questions is the local question bank screen.
package questions

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/questionbank"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const formID = "question"

// Form field order.
const (
	fieldTitle = iota
	fieldDescription
	fieldTags
	fieldSolution
	fieldHints
)

const (
	choiceDifficulty = iota
	choiceCategory
)

// QuestionsScreen lists, filters and edits the question bank.
type QuestionsScreen struct {
	bank *questionbank.Bank
	now  func() time.Time

	cursor    components.Cursor
	filter    components.TextInput
	filtering bool

	form      *components.Form
	editingID string

	err string
}

var _ screen.Screen = (*QuestionsScreen)(nil)

// New creates the question bank screen over a loaded bank.
func New(bank *questionbank.Bank) *QuestionsScreen {
	return &QuestionsScreen{
		bank:   bank,
		now:    time.Now,
		filter: components.NewTextInput("筛选", "标题 / 分类 / 标签", 64),
	}
}

func (s *QuestionsScreen) Title() string {
	return "题库"
}

func (s *QuestionsScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the form or the filter owns the keyboard.
func (s *QuestionsScreen) CapturingInput() bool {
	return s.form != nil || s.filtering
}

func (s *QuestionsScreen) visible() []*questionbank.Question {
	return s.bank.Filter(s.filter.Value())
}

func (s *QuestionsScreen) selected() *questionbank.Question {
	qs := s.visible()
	if len(qs) == 0 {
		return nil
	}
	s.cursor.Clamp(len(qs))
	return qs[s.cursor.Index]
}

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		if msg.ID == formID && s.form != nil {
			s.save()
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

	if s.bank.Selected != "" {
		return s, s.handleDetailKey(kmsg)
	}
	return s, s.handleListKey(kmsg)
}

func (s *QuestionsScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	if s.cursor.Update(msg, len(s.visible())) {
		return nil
	}
	switch msg.String() {
	case "enter":
		if q := s.selected(); q != nil {
			s.bank.Open(q.ID)
		}
	case "n":
		return s.openForm(nil)
	case "e":
		if q := s.selected(); q != nil {
			return s.openForm(q)
		}
	case "d":
		if q := s.selected(); q != nil {
			s.delete(q.ID)
		}
	case "/":
		s.filtering = true
		return s.filter.Focus()
	case "x":
		s.err = ""
	case "esc":
		if s.filter.Value() != "" {
			s.filter.SetValue("")
			return nil
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *QuestionsScreen) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	q := s.bank.Get(s.bank.Selected)
	switch msg.String() {
	case "esc", "q":
		s.bank.Close()
	case "e":
		if q != nil {
			return s.openForm(q)
		}
	case "d":
		if q != nil {
			s.delete(q.ID)
		}
	case "x":
		s.err = ""
	}
	return nil
}

func (s *QuestionsScreen) openForm(q *questionbank.Question) tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("标题", "两数之和", 200),
		components.NewTextInput("描述", "", 0),
		components.NewTextInput("标签", "数组, 哈希表", 0),
		components.NewTextInput("参考解答", "", 0),
		components.NewTextInput("提示", "用 ; 分隔多条提示", 0),
	}
	inputs[fieldTitle].Required = true
	choices := []components.Choice{
		components.NewChoice("难度", []string{questionbank.Easy, questionbank.Medium, questionbank.Hard}, questionbank.Medium),
		components.NewChoice("分类", questionbank.Categories, questionbank.Categories[0]),
	}

	title := "新建题目"
	s.editingID = ""
	if q != nil {
		title = "编辑题目"
		s.editingID = q.ID
		inputs[fieldTitle].SetValue(q.Title)
		inputs[fieldDescription].SetValue(q.Description)
		inputs[fieldTags].SetValue(strings.Join(q.Tags, ", "))
		inputs[fieldSolution].SetValue(q.Solution)
		inputs[fieldHints].SetValue(strings.Join(q.Hints, "; "))
		choices[choiceDifficulty].SetValue(q.Difficulty)
		choices[choiceCategory].SetValue(q.Category)
	}

	f := components.NewForm(formID, title, "保存", inputs, choices)
	s.form = &f
	return f.Init()
}

func (s *QuestionsScreen) save() {
	f := s.form
	q := questionbank.Question{
		ID:          s.editingID,
		Title:       f.Value(fieldTitle),
		Description: f.Value(fieldDescription),
		Difficulty:  f.Choice(choiceDifficulty),
		Category:    f.Choice(choiceCategory),
		Solution:    f.Value(fieldSolution),
		Hints:       splitList(f.Value(fieldHints), ";"),
	}
	for _, t := range splitList(f.Value(fieldTags), ",") {
		q.AddTag(t)
	}

	ctx := context.Background()
	var err error
	if s.editingID == "" {
		_, err = s.bank.Add(ctx, q, s.now())
		s.cursor.Index = 0
	} else {
		err = s.bank.Update(ctx, q)
	}
	if err != nil {
		f.Err = err.Error()
		return
	}
	s.form = nil
}

func (s *QuestionsScreen) delete(id string) {
	if err := s.bank.Delete(context.Background(), id); err != nil {
		s.err = err.Error()
		return
	}
	s.cursor.Clamp(len(s.visible()))
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *QuestionsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.form != nil {
		return s.form.View(cw)
	}
	if q := s.bank.Get(s.bank.Selected); q != nil {
		return s.viewDetail(q, cw)
	}

	st := s.bank.Stats()
	header := theme.Hint.Render(fmt.Sprintf("共 %d 题 · 简单 %d · 中等 %d · 困难 %d", st.Total, st.Easy, st.Medium, st.Hard))
	if s.filtering || s.filter.Value() != "" {
		header += "\n" + s.filter.View()
	}

	var body string
	qs := s.visible()
	switch {
	case len(s.bank.All()) == 0:
		body = components.Empty("题库为空，按 n 添加题目")
	case len(qs) == 0:
		body = components.Empty("没有匹配的题目")
	default:
		rows := make([]string, len(qs))
		for i, q := range qs {
			rows[i] = fmt.Sprintf("%s %s  %s %s", components.Badge(q.Difficulty), q.Title,
				theme.Hint.Render(q.Category), components.Tags(q.Tags))
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel("题库", header+"\n\n"+body, cw, true)
}

func (s *QuestionsScreen) viewDetail(q *questionbank.Question, width int) string {
	var b strings.Builder
	b.WriteString(components.Badge(q.Difficulty) + "  " + theme.Hint.Render(q.Category))
	if tags := components.Tags(q.Tags); tags != "" {
		b.WriteString("  " + tags)
	}
	if q.Description != "" {
		b.WriteString("\n\n" + theme.Body.Width(width-4).Render(q.Description))
	}
	if len(q.Hints) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("提示"))
		for i, h := range q.Hints {
			fmt.Fprintf(&b, "\n%d. %s", i+1, h)
		}
	}
	if q.Solution != "" {
		b.WriteString("\n\n" + theme.Subtitle.Render("参考解答") + "\n" + theme.Code.Render(q.Solution))
	}
	b.WriteString("\n\n" + theme.Hint.Render("创建于 "+q.CreatedAt.Local().Format("2006-01-02 15:04")))
	if line := components.ErrorLine(s.err, "x"); line != "" {
		b.WriteString("\n\n" + line)
	}
	return components.Panel(q.Title, b.String(), width, true)
}

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.form != nil:
		return []layout.KeyHint{
			{Key: "Tab", Description: "下一项"},
			{Key: "Ctrl+S", Description: "保存"},
			{Key: "Esc", Description: "取消"},
		}
	case s.bank.Selected != "":
		return []layout.KeyHint{
			{Key: "e", Description: "编辑"},
			{Key: "d", Description: "删除"},
			{Key: "Esc", Description: "返回列表"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "查看"},
		{Key: "n", Description: "新建"},
		{Key: "e", Description: "编辑"},
		{Key: "d", Description: "删除"},
		{Key: "/", Description: "筛选"},
		{Key: "Esc", Description: "返回"},
	}
}
