// Package flashcards is the flashcard deck and study screen.
package flashcards

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	fc "github.com/abhisek/prepdeck/internal/flashcards"
	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const formID = "flashcard"

// SaveFunc persists the deck after a change.
type SaveFunc func(*fc.Deck) error

var difficulties = []string{fc.Easy, fc.Medium, fc.Hard}

var modeLabels = map[fc.Mode]string{
	fc.ModeAll:    "全部卡片",
	fc.ModeDue:    "待复习",
	fc.ModeRandom: "随机 10 张",
}

var statusLabels = map[fc.ReviewStatus]string{
	fc.ReviewNew:     "新卡片",
	fc.ReviewDue:     "今日复习",
	fc.ReviewOverdue: "已逾期",
	fc.ReviewNotDue:  "未到期",
}

// FlashcardsScreen manages a deck and runs study sessions over it.
type FlashcardsScreen struct {
	title   string
	deck    *fc.Deck
	save    SaveFunc
	metrics *monitor.Metrics
	now     func() time.Time

	cursor components.Cursor
	form   *components.Form
	study  *fc.Study
	err    string
}

var _ screen.Screen = (*FlashcardsScreen)(nil)

// New creates the screen. save and metrics may be nil.
func New(title string, deck *fc.Deck, save SaveFunc, metrics *monitor.Metrics) *FlashcardsScreen {
	return &FlashcardsScreen{
		title:   title,
		deck:    deck,
		save:    save,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *FlashcardsScreen) Title() string {
	return s.title
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the form or a study session is open, so
// esc closes it instead of the screen.
func (s *FlashcardsScreen) CapturingInput() bool {
	return s.form != nil || s.study != nil
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
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
	if s.study != nil {
		s.handleStudyKey(kmsg)
		return s, nil
	}
	return s, s.handleListKey(kmsg)
}

func (s *FlashcardsScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	cards := s.deck.Cards()
	if s.cursor.Update(msg, len(cards)) {
		return nil
	}
	var cur *fc.Card
	if len(cards) > 0 {
		s.cursor.Clamp(len(cards))
		cur = cards[s.cursor.Index]
	}

	switch msg.String() {
	case "n":
		return s.openForm()
	case "d":
		if cur != nil && s.deck.Delete(cur.ID) {
			s.cursor.Clamp(s.deck.Len())
			s.persist()
		}
	case "e":
		if cur != nil {
			i := slices.Index(difficulties, cur.Difficulty)
			s.deck.SetDifficulty(cur.ID, difficulties[(i+1)%len(difficulties)])
			s.persist()
		}
	case "a", "enter":
		s.startStudy(fc.ModeAll)
	case "u":
		s.startStudy(fc.ModeDue)
	case "r":
		s.startStudy(fc.ModeRandom)
	case "x":
		s.err = ""
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *FlashcardsScreen) startStudy(mode fc.Mode) {
	st := s.deck.Study(mode, s.now())
	if st.Len() == 0 {
		s.err = "没有可学习的卡片: " + modeLabels[mode]
		return
	}
	s.err = ""
	s.study = st
}

func (s *FlashcardsScreen) handleStudyKey(msg tea.KeyMsg) {
	st := s.study
	if st.Done() {
		switch msg.String() {
		case "enter", "esc", "space":
			s.study = nil
		}
		return
	}

	switch msg.String() {
	case "space", "enter":
		st.Reveal()
	case "y", "1":
		if st.ShowAnswer {
			s.answer(true)
		}
	case "n", "2":
		if st.ShowAnswer {
			s.answer(false)
		}
	case "esc":
		s.study = nil
	}
}

func (s *FlashcardsScreen) answer(correct bool) {
	s.study.Answer(correct, s.now())
	s.metrics.ObserveFlashcard(correct)
	s.persist()
}

func (s *FlashcardsScreen) persist() {
	if s.save == nil {
		return
	}
	if err := s.save(s.deck); err != nil {
		s.err = err.Error()
	}
}

func (s *FlashcardsScreen) openForm() tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("正面", "问题", 0),
		components.NewTextInput("背面", "答案", 0),
		components.NewTextInput("标签", "用逗号分隔", 0),
	}
	inputs[0].Required = true
	inputs[1].Required = true
	f := components.NewForm(formID, "新建卡片", "创建", inputs, nil)
	s.form = &f
	return f.Init()
}

func (s *FlashcardsScreen) create() {
	f := s.form
	if _, err := s.deck.Create(f.Value(0), f.Value(1), f.Value(2)); err != nil {
		f.Err = "正面和背面不能为空"
		return
	}
	s.form = nil
	s.cursor.Index = s.deck.Len() - 1
	s.persist()
}

func (s *FlashcardsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case s.form != nil:
		return s.form.View(cw)
	case s.study != nil:
		return s.viewStudy(cw)
	}

	now := s.now()
	st := s.deck.Stats(now)
	header := theme.Hint.Render(fmt.Sprintf("共 %d 张 · 待复习 %d · 正确率 %d%%", st.Total, st.Due, st.Accuracy))

	var body string
	cards := s.deck.Cards()
	if len(cards) == 0 {
		body = components.Empty("还没有卡片，按 n 创建")
	} else {
		rows := make([]string, len(cards))
		for i, c := range cards {
			status := statusLabels[c.Status(now)]
			if c.Status(now) == fc.ReviewNotDue {
				status = fmt.Sprintf("%d 天后复习", c.DaysUntilReview(now))
			}
			rows[i] = fmt.Sprintf("%s %s  %s", components.Badge(c.Difficulty), oneLine(c.Front, cw-30), theme.Hint.Render(status))
			if c.TotalAttempts > 0 {
				rows[i] += theme.Hint.Render(fmt.Sprintf(" · %d%%", c.Accuracy()))
			}
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel(s.title, header+"\n\n"+body, cw, true)
}

func (s *FlashcardsScreen) viewStudy(width int) string {
	st := s.study
	title := "学习 · " + modeLabels[st.Mode]
	bar := components.NewProgressBar(st.Progress(), fmt.Sprintf("%d / %d", min(st.Index()+1, st.Len()), st.Len()), width-8).View()

	if st.Done() {
		acc := 0
		if st.Total > 0 {
			acc = st.Correct * 100 / st.Total
		}
		body := fmt.Sprintf("%s\n\n%s\n答对 %d / %d  (%d%%)\n\n%s",
			bar, theme.Title.Render("本轮完成"), st.Correct, st.Total, acc, theme.Hint.Render("Enter 返回卡片列表"))
		return components.Panel(title, body, width, true)
	}

	c := st.Current()
	var b strings.Builder
	b.WriteString(bar + "\n")
	fmt.Fprintf(&b, "%s  第 %d / %d 张\n\n", components.Badge(c.Difficulty), st.Index()+1, st.Len())
	b.WriteString(theme.Subtitle.Render("问题") + "\n" + theme.Body.Width(width-4).Render(c.Front) + "\n\n")
	if st.ShowAnswer {
		b.WriteString(theme.Subtitle.Render("答案") + "\n" + theme.Body.Width(width-4).Render(c.Back) + "\n\n")
		b.WriteString(theme.Correct.Render("y 记住了") + "    " + theme.Incorrect.Render("n 没记住"))
	} else {
		b.WriteString(theme.Hint.Render("空格 显示答案"))
	}
	if tags := components.Tags(c.Tags); tags != "" {
		b.WriteString("\n\n" + tags)
	}
	return components.Panel(title, b.String(), width, true)
}

func oneLine(s string, width int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	if r := []rune(s); width > 4 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.form != nil:
		return []layout.KeyHint{{Key: "Tab", Description: "下一项"}, {Key: "Ctrl+S", Description: "创建"}, {Key: "Esc", Description: "取消"}}
	case s.study != nil:
		return []layout.KeyHint{
			{Key: "Space", Description: "显示答案"},
			{Key: "y/n", Description: "记住/没记住"},
			{Key: "Esc", Description: "结束学习"},
		}
	}
	return []layout.KeyHint{
		{Key: "a/u/r", Description: "全部/待复习/随机"},
		{Key: "n", Description: "新建"},
		{Key: "e", Description: "难度"},
		{Key: "d", Description: "删除"},
		{Key: "Esc", Description: "返回"},
	}
}
