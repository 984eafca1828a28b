// Package importer is the problem import form.
package importer

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/api"
	prac "github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// Importer is the part of the API client the screen uses.
type Importer interface {
	ImportProblem(ctx context.Context, p api.ProblemImport) (*api.Problem, error)
}

type importDoneMsg struct {
	Problem *api.Problem
	Err     error
}

type rowKind int

const (
	rowTitle rowKind = iota
	rowDifficulty
	rowTags
	rowDescription
	rowEditorial
	rowCaseInput
	rowCaseOutput
	rowLangToggle
	rowLangCode
	rowLangExplanation
	rowSubmit
)

type row struct {
	kind  rowKind
	label string
	index int
	lang  string
}

var difficulties = []string{api.DifficultyEasy, api.DifficultyMedium, api.DifficultyHard}

// ImportScreen edits an ImportForm and sends it to the backend.
type ImportScreen struct {
	backend    Importer
	onImported func(*api.Problem)
	form       *prac.ImportForm

	cursor     components.Cursor
	editing    *row
	editor     textarea.Model
	pathInput  components.TextInput
	askingPath bool

	submitting bool
	err        string
}

var _ screen.Screen = (*ImportScreen)(nil)

// New creates the import screen. onImported runs on the UI loop after a
// successful import, before the screen closes.
func New(backend Importer, onImported func(*api.Problem)) *ImportScreen {
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	return &ImportScreen{
		backend:    backend,
		onImported: onImported,
		form:       prac.NewImportForm(),
		editor:     ed,
		pathInput:  components.NewTextInput("YAML 文件", "problem.yaml", 0),
	}
}

func (s *ImportScreen) Title() string {
	return "导入题目"
}

func (s *ImportScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether a field editor is open.
func (s *ImportScreen) CapturingInput() bool {
	return s.editing != nil || s.askingPath
}

func (s *ImportScreen) rows() []row {
	rows := []row{
		{kind: rowTitle, label: "标题 *"},
		{kind: rowDifficulty, label: "难度"},
		{kind: rowTags, label: "标签"},
		{kind: rowDescription, label: "描述"},
		{kind: rowEditorial, label: "讲解"},
	}
	for i := range s.form.TestCases {
		rows = append(rows,
			row{kind: rowCaseInput, label: fmt.Sprintf("用例 %d 输入", i+1), index: i},
			row{kind: rowCaseOutput, label: fmt.Sprintf("用例 %d 输出", i+1), index: i},
		)
	}
	for _, lang := range prac.Languages {
		rows = append(rows, row{kind: rowLangToggle, label: prac.LanguageLabel(lang), lang: lang})
		if s.form.Solutions[lang].Enabled {
			rows = append(rows,
				row{kind: rowLangCode, label: "  代码", lang: lang},
				row{kind: rowLangExplanation, label: "  说明", lang: lang},
			)
		}
	}
	return append(rows, row{kind: rowSubmit, label: "提交导入"})
}

func (s *ImportScreen) value(r row) string {
	f := s.form
	switch r.kind {
	case rowTitle:
		return f.Title
	case rowDifficulty:
		return f.Difficulty
	case rowTags:
		return f.Tags
	case rowDescription:
		return f.Description
	case rowEditorial:
		return f.Editorial
	case rowCaseInput:
		return f.TestCases[r.index].Input
	case rowCaseOutput:
		return f.TestCases[r.index].ExpectedOutput
	case rowLangCode:
		return f.Solutions[r.lang].Code
	case rowLangExplanation:
		return f.Solutions[r.lang].Explanation
	}
	return ""
}

func (s *ImportScreen) setValue(r row, v string) {
	f := s.form
	switch r.kind {
	case rowTitle:
		f.Title = strings.Join(strings.Fields(v), " ")
	case rowTags:
		f.Tags = strings.ReplaceAll(v, "\n", ",")
	case rowDescription:
		f.Description = v
	case rowEditorial:
		f.Editorial = v
	case rowCaseInput:
		f.TestCases[r.index].Input = v
	case rowCaseOutput:
		f.TestCases[r.index].ExpectedOutput = v
	case rowLangCode:
		f.Solutions[r.lang].Code = v
	case rowLangExplanation:
		f.Solutions[r.lang].Explanation = v
	}
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		s.submitting = false
		if msg.Err != nil {
			s.err = msg.Err.Error()
			return s, nil
		}
		if s.onImported != nil {
			s.onImported(msg.Problem)
		}
		s.form.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		switch {
		case s.editing != nil:
			return s, s.updateEditor(msg)
		case s.askingPath:
			return s, s.updatePath(msg)
		}
		return s, s.handleKey(msg)
	}

	if s.editing != nil {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ImportScreen) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+s":
		s.setValue(*s.editing, s.editor.Value())
		s.editing = nil
		s.editor.Blur()
		return nil
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return cmd
}

func (s *ImportScreen) updatePath(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.askingPath = false
		s.pathInput.Blur()
		return nil
	case "enter":
		s.askingPath = false
		s.pathInput.Blur()
		if err := s.loadFile(s.pathInput.Value()); err != nil {
			s.err = err.Error()
		} else {
			s.err = ""
			s.cursor.Index = 0
		}
		return nil
	}
	var cmd tea.Cmd
	s.pathInput, cmd = s.pathInput.Update(msg)
	return cmd
}

func (s *ImportScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := s.rows()
	if s.cursor.Update(msg, len(rows)) {
		return nil
	}
	s.cursor.Clamp(len(rows))
	cur := rows[s.cursor.Index]

	switch msg.String() {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "ctrl+s":
		return s.submit()
	case "left", "right":
		if cur.kind == rowDifficulty {
			s.cycleDifficulty(msg.String() == "right")
		}
	case "space":
		if cur.kind == rowLangToggle {
			s.form.ToggleLanguage(cur.lang)
		}
	case "a":
		s.form.AddTestCase()
	case "d":
		if cur.kind == rowCaseInput || cur.kind == rowCaseOutput {
			s.form.RemoveTestCase(cur.index)
			s.cursor.Clamp(len(s.rows()))
		}
	case "f":
		s.askingPath = true
		return s.pathInput.Focus()
	case "x":
		s.err = ""
	case "enter":
		switch cur.kind {
		case rowSubmit:
			return s.submit()
		case rowDifficulty:
			s.cycleDifficulty(true)
		case rowLangToggle:
			s.form.ToggleLanguage(cur.lang)
		default:
			r := cur
			s.editing = &r
			s.editor.SetValue(s.value(cur))
			return s.editor.Focus()
		}
	}
	return nil
}

func (s *ImportScreen) cycleDifficulty(forward bool) {
	i := slices.Index(difficulties, s.form.Difficulty)
	if forward {
		i = (i + 1) % len(difficulties)
	} else {
		i = (i - 1 + len(difficulties)) % len(difficulties)
	}
	s.form.Difficulty = difficulties[i]
}

func (s *ImportScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	payload, err := s.form.Payload()
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	s.submitting = true
	backend := s.backend
	return func() tea.Msg {
		p, err := backend.ImportProblem(context.Background(), payload)
		return importDoneMsg{Problem: p, Err: err}
	}
}

// loadFile fills the form from a YAML problem document.
func (s *ImportScreen) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	p, err := prac.DecodeImport(f)
	if err != nil {
		return err
	}
	s.fill(p)
	return nil
}

func (s *ImportScreen) fill(p api.ProblemImport) {
	form := s.form
	form.Reset()
	form.Title = p.Title
	if p.Difficulty != "" {
		form.Difficulty = p.Difficulty
	}
	form.Description = p.Description
	form.Tags = strings.Join(p.Tags, ", ")
	form.Editorial = p.Editorial
	if len(p.TestCases) > 0 {
		form.TestCases = slices.Clone(p.TestCases)
	}
	for _, d := range form.Solutions {
		d.Enabled = false
	}
	for _, sol := range p.Solutions {
		d, ok := form.Solutions[sol.Language]
		if !ok {
			continue
		}
		d.Enabled = true
		d.Code = sol.Code
		d.Explanation = sol.Explanation
	}
}

func (s *ImportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.editing != nil {
		s.editor.SetWidth(cw - 4)
		s.editor.SetHeight(max(height-8, 5))
		hint := theme.Hint.Render("esc / ctrl+s 保存并返回")
		return components.Panel(s.editing.label, s.editor.View()+"\n"+hint, cw, true)
	}

	rows := s.rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = s.renderRow(r, cw-20)
	}
	body := components.RenderList(lines, s.cursor.Index, height-8)
	if s.askingPath {
		body += "\n\n" + s.pathInput.View()
	}
	if s.submitting {
		body += "\n\n" + theme.Hint.Render("导入中...")
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel("导入题目", body, cw, true)
}

func (s *ImportScreen) renderRow(r row, width int) string {
	label := theme.Subtitle.Width(16).Render(r.label)
	switch r.kind {
	case rowSubmit:
		return theme.ButtonActive.Render(r.label)
	case rowDifficulty:
		return label + components.Badge(s.form.Difficulty) + " " + prac.DifficultyBadge(s.form.Difficulty)
	case rowLangToggle:
		box := "[ ]"
		if s.form.Solutions[r.lang].Enabled {
			box = theme.Correct.Render("[✓]")
		}
		return label + box
	}
	v := s.value(r)
	if strings.TrimSpace(v) == "" {
		return label + theme.Hint.Render("(空)")
	}
	v = strings.ReplaceAll(strings.TrimRight(v, "\n"), "\n", " ⏎ ")
	if r := []rune(v); width > 4 && len(r) > width {
		v = string(r[:width-1]) + "…"
	}
	return label + theme.Body.Render(v)
}

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	if s.editing != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "保存字段"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "编辑"},
		{Key: "Space", Description: "启用语言"},
		{Key: "a/d", Description: "增删用例"},
		{Key: "f", Description: "从文件载入"},
		{Key: "Ctrl+S", Description: "提交"},
		{Key: "Esc", Description: "返回"},
	}
}
