// Package items is the screen for backend knowledge items: AI-generated
// answers, pitfalls, code and mind maps derived from interview questions.
package items

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/knowledge"
	mm "github.com/abhisek/prepdeck/internal/mindmap"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	mindmapscreen "github.com/abhisek/prepdeck/internal/screens/mindmap"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const formID = "item"

// Backend is the part of the API client the screen uses.
type Backend interface {
	ListItems(ctx context.Context, q api.ItemQuery) ([]api.KnowledgeItem, error)
	CreateAndGenerate(ctx context.Context, in api.QuestionInput) (*api.KnowledgeItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// ItemsScreen lists knowledge items and shows their details.
type ItemsScreen struct {
	backend   Backend
	items     *knowledge.Items
	exportDir string

	cursor    components.Cursor
	filter    components.TextInput
	filtering bool
	form      *components.Form

	loading    bool
	generating bool
	deleting   string
	scroll     int
}

var _ screen.Screen = (*ItemsScreen)(nil)

// New creates the screen. exportDir is handed to the mind map viewer.
func New(backend Backend, exportDir string) *ItemsScreen {
	return &ItemsScreen{
		backend:   backend,
		items:     knowledge.NewItems(),
		exportDir: exportDir,
		filter:    components.NewTextInput("筛选", "题目 / 答案 / 标签", 64),
	}
}

func (s *ItemsScreen) Title() string {
	return "知识条目"
}

func (s *ItemsScreen) Init() tea.Cmd {
	return s.fetch()
}

// CapturingInput reports whether the form, the filter or the detail view
// owns the keyboard.
func (s *ItemsScreen) CapturingInput() bool {
	return s.form != nil || s.filtering || s.items.Selected != ""
}

func (s *ItemsScreen) fetch() tea.Cmd {
	if s.loading {
		return nil
	}
	s.loading = true
	backend := s.backend
	return func() tea.Msg {
		list, err := backend.ListItems(context.Background(), api.ItemQuery{})
		return itemsLoadedMsg{Items: list, Err: err}
	}
}

func (s *ItemsScreen) visible() []api.KnowledgeItem {
	return s.items.Filter(s.filter.Value())
}

func (s *ItemsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.items.Err = msg.Err.Error()
			return s, nil
		}
		s.items.Replace(msg.Items)
		s.cursor.Clamp(s.items.Len())
		return s, nil

	case itemCreatedMsg:
		s.generating = false
		if msg.Err != nil {
			s.items.Err = msg.Err.Error()
			return s, nil
		}
		s.items.Add(*msg.Item)
		s.filter.SetValue("")
		s.cursor.Index = 0
		return s, nil

	case itemDeletedMsg:
		s.deleting = ""
		if msg.Err != nil {
			s.items.Err = msg.Err.Error()
			return s, nil
		}
		s.items.Remove(msg.ID)
		s.cursor.Clamp(len(s.visible()))
		return s, nil

	case components.FormSubmitMsg:
		if msg.ID == formID && s.form != nil {
			return s, s.create()
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

	switch {
	case s.filtering:
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
	case s.items.Current() != nil:
		return s, s.handleDetailKey(kmsg)
	}
	return s, s.handleListKey(kmsg)
}

func (s *ItemsScreen) selected() *api.KnowledgeItem {
	list := s.visible()
	if len(list) == 0 {
		return nil
	}
	s.cursor.Clamp(len(list))
	return &list[s.cursor.Index]
}

func (s *ItemsScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	if s.cursor.Update(msg, len(s.visible())) {
		return nil
	}
	switch msg.String() {
	case "enter":
		if it := s.selected(); it != nil {
			s.items.Open(it.ID)
			s.scroll = 0
		}
	case "n":
		return s.openForm()
	case "d":
		if it := s.selected(); it != nil {
			return s.delete(it.ID)
		}
	case "m":
		if it := s.selected(); it != nil {
			return s.openMindmap(it)
		}
	case "u":
		return s.fetch()
	case "/":
		s.filtering = true
		return s.filter.Focus()
	case "x":
		s.items.Err = ""
	case "esc":
		if s.filter.Value() != "" {
			s.filter.SetValue("")
			return nil
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *ItemsScreen) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	it := s.items.Current()
	switch msg.String() {
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll++
	case "m":
		return s.openMindmap(it)
	case "d":
		return s.delete(it.ID)
	case "x":
		s.items.Err = ""
	case "esc", "q":
		s.items.Close()
	}
	return nil
}

func (s *ItemsScreen) openMindmap(it *api.KnowledgeItem) tea.Cmd {
	if len(it.Mindmap) == 0 {
		s.items.Err = "该条目没有思维导图"
		return nil
	}
	m := mm.FromKnowledge(it.Mindmap, it.Question.Text)
	scr := mindmapscreen.New(mm.Label(it.Question.Text), m, nil, s.exportDir)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *ItemsScreen) delete(id string) tea.Cmd {
	if s.deleting != "" {
		return nil
	}
	s.deleting = id
	backend := s.backend
	return func() tea.Msg {
		return itemDeletedMsg{ID: id, Err: backend.DeleteItem(context.Background(), id)}
	}
}

func (s *ItemsScreen) openForm() tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("面试题", "例如: Redis 为什么快?", 500),
		components.NewTextInput("标签", "用逗号分隔", 0),
	}
	inputs[0].Required = true
	choices := []components.Choice{
		components.NewChoice("难度", []string{api.DifficultyEasy, api.DifficultyMedium, api.DifficultyHard}, api.DifficultyMedium),
	}
	f := components.NewForm(formID, "生成知识条目", "生成", inputs, choices)
	s.form = &f
	return f.Init()
}

func (s *ItemsScreen) create() tea.Cmd {
	f := s.form
	if s.generating {
		f.Err = "正在生成上一个条目"
		return nil
	}
	text := f.Value(0)
	if text == "" {
		f.Err = "面试题不能为空"
		return nil
	}
	in := api.QuestionInput{Text: text, Difficulty: f.Choice(0)}
	for _, t := range strings.Split(f.Value(1), ",") {
		if t = strings.TrimSpace(t); t != "" {
			in.Tags = append(in.Tags, t)
		}
	}
	s.form = nil
	s.generating = true
	backend := s.backend
	return func() tea.Msg {
		item, err := backend.CreateAndGenerate(context.Background(), in)
		return itemCreatedMsg{Item: item, Err: err}
	}
}

func (s *ItemsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.form != nil {
		return s.form.View(cw)
	}
	if it := s.items.Current(); it != nil {
		return s.viewDetail(it, cw, height)
	}

	header := theme.Hint.Render(fmt.Sprintf("共 %d 条", s.items.Len()))
	if s.filtering || s.filter.Value() != "" {
		header += "\n" + s.filter.View()
	}

	var body string
	list := s.visible()
	switch {
	case s.loading && s.items.Len() == 0:
		body = theme.Hint.Render("加载中...")
	case s.items.Len() == 0:
		body = components.Empty("还没有知识条目，按 n 生成")
	case len(list) == 0:
		body = components.Empty("没有匹配的条目")
	default:
		rows := make([]string, len(list))
		for i, it := range list {
			rows[i] = fmt.Sprintf("%s %s  %s", components.Badge(it.Question.Difficulty), it.Question.Text, components.Tags(it.Question.Tags))
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
	}
	if s.generating {
		body += "\n\n" + theme.Hint.Render("正在生成知识条目...")
	}
	if line := components.ErrorLine(s.items.Err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel("知识条目", header+"\n\n"+body, cw, true)
}

func (s *ItemsScreen) viewDetail(it *api.KnowledgeItem, width, height int) string {
	wrap := theme.Body.Width(width - 4)
	var b strings.Builder
	b.WriteString(components.Badge(it.Question.Difficulty))
	if tags := components.Tags(it.Question.Tags); tags != "" {
		b.WriteString("  " + tags)
	}
	b.WriteString("\n\n" + theme.Subtitle.Render("答案") + "\n" + wrap.Render(it.Flashcard.Answer))
	if len(it.Flashcard.Pitfalls) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("易错点"))
		for _, p := range it.Flashcard.Pitfalls {
			b.WriteString("\n• " + p)
		}
	}
	if it.Code.Snippet != "" {
		b.WriteString("\n\n" + theme.Subtitle.Render("代码 · "+it.Code.Lang) + "\n" + theme.Code.Render(it.Code.Snippet))
		if it.Code.Explanation != "" {
			b.WriteString("\n" + wrap.Render(it.Code.Explanation))
		}
	}
	if it.ProjectUsage != "" {
		b.WriteString("\n\n" + theme.Subtitle.Render("项目实践") + "\n" + wrap.Render(it.ProjectUsage))
	}
	if len(it.Mindmap) > 0 {
		b.WriteString("\n\n" + theme.Hint.Render("m 查看思维导图"))
	}

	lines := strings.Split(b.String(), "\n")
	visible := max(height-8, 3)
	s.scroll = min(s.scroll, max(len(lines)-visible, 0))
	body := strings.Join(lines[s.scroll:min(s.scroll+visible, len(lines))], "\n")
	if line := components.ErrorLine(s.items.Err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel(it.Question.Text, body, width, true)
}

func (s *ItemsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.form != nil:
		return []layout.KeyHint{{Key: "Tab", Description: "下一项"}, {Key: "Ctrl+S", Description: "生成"}, {Key: "Esc", Description: "取消"}}
	case s.items.Selected != "":
		return []layout.KeyHint{
			{Key: "↑↓", Description: "滚动"},
			{Key: "m", Description: "思维导图"},
			{Key: "d", Description: "删除"},
			{Key: "Esc", Description: "返回列表"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "查看"},
		{Key: "n", Description: "生成"},
		{Key: "d", Description: "删除"},
		{Key: "m", Description: "思维导图"},
		{Key: "/", Description: "筛选"},
		{Key: "u", Description: "刷新"},
		{Key: "Esc", Description: "返回"},
	}
}
