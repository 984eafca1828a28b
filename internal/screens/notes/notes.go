// Package notes is the markdown notebook screen.
package notes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	nb "github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const (
	createFormID = "note-create"
	tagsFormID   = "note-tags"
)

// SaveFunc persists the notebook after a change.
type SaveFunc func(*nb.Book) error

// NotesScreen lists, reads and edits notes.
type NotesScreen struct {
	title     string
	book      *nb.Book
	save      SaveFunc
	renderer  *nb.Renderer
	exportDir string
	now       func() time.Time

	cursor    components.Cursor
	search    components.TextInput
	searching bool

	form       *components.Form
	titleInput components.TextInput
	editor     textarea.Model
	editTitle  bool

	scroll int
	status string
	err    string
}

var _ screen.Screen = (*NotesScreen)(nil)

// New creates the screen. save may be nil; exportDir empty disables export.
func New(title string, book *nb.Book, save SaveFunc, renderer *nb.Renderer, exportDir string) *NotesScreen {
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	if renderer == nil {
		renderer = nb.NewRenderer("notty")
	}
	return &NotesScreen{
		title:      title,
		book:       book,
		save:       save,
		renderer:   renderer,
		exportDir:  exportDir,
		now:        time.Now,
		search:     components.NewTextInput("搜索", "标题 / 内容 / 标签", 64),
		titleInput: components.NewTextInput("标题", "", 200),
		editor:     ed,
	}
}

func (s *NotesScreen) Title() string {
	return s.title
}

func (s *NotesScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether a form, the search box or the editor owns
// the keyboard.
func (s *NotesScreen) CapturingInput() bool {
	return s.form != nil || s.searching || s.book.Editing || s.book.Selected != ""
}

func (s *NotesScreen) visible() []*nb.Note {
	return s.book.Search(s.search.Value())
}

func (s *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		if s.form != nil {
			return s, s.submitForm(msg.ID)
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

	if s.book.Editing {
		return s, s.updateEditor(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case s.searching:
		switch kmsg.String() {
		case "esc", "enter":
			s.searching = false
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.cursor.Index = 0
		return s, cmd
	case s.book.Current() != nil:
		return s, s.handleReaderKey(kmsg)
	}
	return s, s.handleListKey(kmsg)
}

func (s *NotesScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	list := s.visible()
	if s.cursor.Update(msg, len(list)) {
		return nil
	}
	var cur *nb.Note
	if len(list) > 0 {
		s.cursor.Clamp(len(list))
		cur = list[s.cursor.Index]
	}

	switch msg.String() {
	case "enter":
		if cur != nil {
			s.book.Open(cur.ID)
			s.scroll = 0
		}
	case "n":
		return s.openCreateForm()
	case "e":
		if cur != nil {
			s.book.Open(cur.ID)
			return s.startEditing()
		}
	case "d":
		if cur != nil && s.book.Delete(cur.ID) {
			s.cursor.Clamp(len(s.visible()))
			s.persist()
		}
	case "/":
		s.searching = true
		return s.search.Focus()
	case "x":
		s.err = ""
		s.status = ""
	case "esc":
		if s.search.Value() != "" {
			s.search.SetValue("")
			return nil
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *NotesScreen) handleReaderKey(msg tea.KeyMsg) tea.Cmd {
	n := s.book.Current()
	switch msg.String() {
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll++
	case "e", "enter":
		return s.startEditing()
	case "t":
		return s.openTagsForm(n)
	case "o":
		s.export(n)
	case "d":
		s.book.Delete(n.ID)
		s.persist()
	case "x":
		s.err = ""
		s.status = ""
	case "esc", "q":
		s.book.Close()
	}
	return nil
}

func (s *NotesScreen) startEditing() tea.Cmd {
	n := s.book.Current()
	if n == nil {
		return nil
	}
	s.book.Edit()
	s.titleInput.SetValue(n.Title)
	s.titleInput.Blur()
	s.editTitle = false
	s.editor.SetValue(n.Content)
	return s.editor.Focus()
}

// Toolbar snippets are bound to alt+1 .. alt+8.
func snippetFor(key string) (nb.Snippet, bool) {
	d, ok := strings.CutPrefix(key, "alt+")
	if !ok {
		return nb.Snippet{}, false
	}
	i, err := strconv.Atoi(d)
	if err != nil || i < 1 || i > len(nb.Toolbar) {
		return nb.Snippet{}, false
	}
	return nb.Toolbar[i-1], true
}

func (s *NotesScreen) updateEditor(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		switch key {
		case "ctrl+s":
			s.saveEditor()
			return nil
		case "esc":
			s.book.Editing = false
			s.editor.Blur()
			s.titleInput.Blur()
			return nil
		case "tab":
			s.editTitle = !s.editTitle
			if s.editTitle {
				s.editor.Blur()
				return s.titleInput.Focus()
			}
			s.titleInput.Blur()
			return s.editor.Focus()
		}
		if snip, ok := snippetFor(key); ok && !s.editTitle {
			text, _ := snip.Insert("", 0, 0)
			s.editor.InsertString(text)
			return nil
		}
	}

	var cmd tea.Cmd
	if s.editTitle {
		s.titleInput, cmd = s.titleInput.Update(msg)
	} else {
		s.editor, cmd = s.editor.Update(msg)
	}
	return cmd
}

func (s *NotesScreen) saveEditor() {
	n := s.book.Current()
	if n == nil {
		return
	}
	if err := s.book.Save(n.ID, s.titleInput.Value(), s.editor.Value(), s.now()); err != nil {
		s.err = err.Error()
		return
	}
	s.err = ""
	s.editor.Blur()
	s.titleInput.Blur()
	s.persist()
}

func (s *NotesScreen) openCreateForm() tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("标题", "笔记标题", 200),
		components.NewTextInput("标签", "用逗号分隔", 0),
	}
	inputs[0].Required = true
	f := components.NewForm(createFormID, "新建笔记", "创建", inputs, nil)
	s.form = &f
	return f.Init()
}

func (s *NotesScreen) openTagsForm(n *nb.Note) tea.Cmd {
	in := components.NewTextInput("标签", "用逗号分隔", 0)
	in.SetValue(strings.Join(n.Tags, ", "))
	f := components.NewForm(tagsFormID, "编辑标签", "保存", []components.TextInput{in}, nil)
	s.form = &f
	return f.Init()
}

func (s *NotesScreen) submitForm(id string) tea.Cmd {
	f := s.form
	switch id {
	case createFormID:
		if _, err := s.book.Create(f.Value(0), f.Value(1), s.now()); err != nil {
			f.Err = "标题不能为空"
			return nil
		}
		s.form = nil
		s.search.SetValue("")
		s.cursor.Index = 0
		s.persist()
		return s.startEditing()
	case tagsFormID:
		if n := s.book.Current(); n != nil {
			if err := s.book.SetTags(n.ID, f.Value(0)); err != nil {
				f.Err = err.Error()
				return nil
			}
			s.persist()
		}
		s.form = nil
	}
	return nil
}

func (s *NotesScreen) export(n *nb.Note) {
	if s.exportDir == "" {
		s.err = "未配置导出目录"
		return
	}
	path, err := nb.Export(n, s.exportDir)
	if err != nil {
		s.err = err.Error()
		return
	}
	s.status = "已导出 " + path
}

func (s *NotesScreen) persist() {
	if s.save == nil {
		return
	}
	if err := s.save(s.book); err != nil {
		s.err = err.Error()
	}
}

func (s *NotesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.form != nil {
		return s.form.View(cw)
	}
	if n := s.book.Current(); n != nil {
		if s.book.Editing {
			return s.viewEditor(cw, height)
		}
		return s.viewReader(n, cw, height)
	}
	return s.viewList(cw, height)
}

func (s *NotesScreen) viewList(width, height int) string {
	header := theme.Hint.Render(fmt.Sprintf("共 %d 篇笔记", s.book.Len()))
	if s.searching || s.search.Value() != "" {
		header += "\n" + s.search.View()
	}

	var body string
	list := s.visible()
	switch {
	case s.book.Len() == 0:
		body = components.Empty("还没有笔记，按 n 新建")
	case len(list) == 0:
		body = components.Empty("没有匹配的笔记")
	default:
		rows := make([]string, len(list))
		for i, n := range list {
			rows[i] = fmt.Sprintf("%s  %s %s", n.Title,
				theme.Hint.Render(fmt.Sprintf("%d 词 · %s", n.WordCount, n.UpdatedAt.Local().Format("01-02 15:04"))),
				components.Tags(n.Tags))
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
	}
	body += s.footer()
	return components.Panel(s.title, header+"\n\n"+body, width, true)
}

func (s *NotesScreen) viewReader(n *nb.Note, width, height int) string {
	rendered := strings.TrimRight(s.renderer.Render(n.Content, width-6), "\n")
	lines := strings.Split(rendered, "\n")
	visible := max(height-8, 3)
	s.scroll = min(s.scroll, max(len(lines)-visible, 0))
	end := min(s.scroll+visible, len(lines))

	meta := theme.Hint.Render(fmt.Sprintf("%d 词 · 更新于 %s", n.WordCount, n.UpdatedAt.Local().Format("2006-01-02 15:04")))
	if tags := components.Tags(n.Tags); tags != "" {
		meta += "  " + tags
	}
	body := meta + "\n\n" + strings.Join(lines[s.scroll:end], "\n") + s.footer()
	return components.Panel(n.Title, body, width, true)
}

func (s *NotesScreen) viewEditor(width, height int) string {
	s.editor.SetWidth(width - 4)
	s.editor.SetHeight(max(height-10, 5))

	var tools []string
	for i, t := range nb.Toolbar {
		tools = append(tools, fmt.Sprintf("alt+%d %s", i+1, t.Name))
	}
	body := s.titleInput.View() + "\n\n" + s.editor.View() + "\n\n" +
		theme.Hint.Render(strings.Join(tools, " · ")) + s.footer()
	return components.Panel("编辑笔记", body, width, true)
}

func (s *NotesScreen) footer() string {
	var out string
	if s.status != "" {
		out += "\n\n" + theme.Hint.Render(s.status)
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		out += "\n\n" + line
	}
	return out
}

func (s *NotesScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.form != nil:
		return []layout.KeyHint{{Key: "Ctrl+S", Description: "保存"}, {Key: "Esc", Description: "取消"}}
	case s.book.Editing:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "保存"},
			{Key: "Tab", Description: "标题/正文"},
			{Key: "Alt+1-8", Description: "插入格式"},
			{Key: "Esc", Description: "放弃修改"},
		}
	case s.book.Current() != nil:
		return []layout.KeyHint{
			{Key: "e", Description: "编辑"},
			{Key: "t", Description: "标签"},
			{Key: "o", Description: "导出"},
			{Key: "d", Description: "删除"},
			{Key: "Esc", Description: "返回列表"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "阅读"},
		{Key: "n", Description: "新建"},
		{Key: "e", Description: "编辑"},
		{Key: "d", Description: "删除"},
		{Key: "/", Description: "搜索"},
		{Key: "Esc", Description: "返回"},
	}
}
