// Package practice is the algorithm practice screen: problem list, code
// editor, custom-input runs and graded submissions.
package practice

import (
	"context"
	"slices"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/monitor"
	prac "github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens/importer"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
)

// Backend is the part of the API client the screen uses.
type Backend interface {
	ListProblems(ctx context.Context, f api.ProblemFilter) ([]api.ProblemSummary, error)
	GetProblem(ctx context.Context, id string) (*api.Problem, error)
	Execute(ctx context.Context, req api.ExecutionRequest) (*api.ExecutionResult, error)
	GetSolution(ctx context.Context, id, language string) (*api.Solution, error)
	GetEditorial(ctx context.Context, id string) (string, error)
	ImportProblem(ctx context.Context, p api.ProblemImport) (*api.Problem, error)
}

type focusArea int

const (
	focusList focusArea = iota
	focusEditor
	focusInput
)

// PracticeScreen is the run/submit workbench.
type PracticeScreen struct {
	backend   Backend
	metrics   *monitor.Metrics
	session   *prac.Session
	defaultID string

	cursor      components.Cursor
	listLoading bool
	listErr     string

	editor textarea.Model
	input  textarea.Model
	focus  focusArea
}

var _ screen.Screen = (*PracticeScreen)(nil)

// New creates the practice screen. defaultID, when set, is loaded on open
// before the list arrives. metrics may be nil.
func New(backend Backend, metrics *monitor.Metrics, defaultID string) *PracticeScreen {
	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "在此编写代码"

	input := textarea.New()
	input.ShowLineNumbers = false
	input.Placeholder = "自定义输入 (stdin)"

	s := &PracticeScreen{
		backend:   backend,
		metrics:   metrics,
		session:   prac.NewSession(),
		defaultID: defaultID,
		editor:    editor,
		input:     input,
	}
	s.editor.SetValue(s.session.Code)
	return s
}

func (s *PracticeScreen) Title() string {
	return "算法练习"
}

func (s *PracticeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.fetchProblems()}
	if s.defaultID != "" {
		cmds = append(cmds, s.loadProblem(s.defaultID))
	}
	return tea.Batch(cmds...)
}

// CapturingInput reports whether a text area owns the keyboard.
func (s *PracticeScreen) CapturingInput() bool {
	return s.focus != focusList
}

func (s *PracticeScreen) fetchProblems() tea.Cmd {
	s.listLoading = true
	backend := s.backend
	return func() tea.Msg {
		list, err := backend.ListProblems(context.Background(), api.ProblemFilter{})
		return problemsLoadedMsg{Problems: list, Err: err}
	}
}

func (s *PracticeScreen) loadProblem(id string) tea.Cmd {
	token := s.session.BeginLoad(id)
	backend := s.backend
	return func() tea.Msg {
		p, err := backend.GetProblem(context.Background(), id)
		return problemLoadedMsg{Token: token, Problem: p, Err: err}
	}
}

func (s *PracticeScreen) execute(kind string, req api.ExecutionRequest) tea.Cmd {
	backend := s.backend
	return func() tea.Msg {
		res, err := backend.Execute(context.Background(), req)
		return executionDoneMsg{Kind: kind, Result: res, Err: err}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemsLoadedMsg:
		s.listLoading = false
		if msg.Err != nil {
			s.listErr = msg.Err.Error()
			return s, nil
		}
		s.listErr = ""
		id := s.session.SetProblems(msg.Problems)
		s.syncCursor()
		if id != "" && s.session.Problem == nil {
			return s, s.loadProblem(id)
		}
		return s, nil

	case problemLoadedMsg:
		if !s.session.FinishLoad(msg.Token, msg.Problem, msg.Err) {
			return s, nil
		}
		s.syncEditor()
		s.syncCursor()
		return s, nil

	case executionDoneMsg:
		if msg.Err != nil {
			s.session.Fail(msg.Err)
			s.metrics.ObserveExecution(msg.Kind, "error")
			return s, nil
		}
		s.session.Complete(msg.Result)
		s.metrics.ObserveExecution(msg.Kind, outcome(s.session))
		return s, nil

	case solutionLoadedMsg:
		if s.session.Problem == nil || s.session.Problem.ID != msg.ProblemID {
			return s, nil
		}
		s.session.SolutionLoaded(msg.Language, msg.Solution, msg.Err)
		return s, nil

	case editorialLoadedMsg:
		if s.session.Problem == nil || s.session.Problem.ID != msg.ProblemID {
			return s, nil
		}
		s.session.EditorialLoaded(msg.Text, msg.Err)
		return s, nil

	case router.ResumedMsg:
		// An import may have selected a new problem while we were hidden.
		s.syncCursor()
		if id := s.session.SelectedID; id != "" && (s.session.Problem == nil || s.session.Problem.ID != id) {
			return s, s.loadProblem(id)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, s.updateFocused(msg)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		return s, s.run()
	case "ctrl+s":
		return s, s.submit()
	case "tab":
		return s, s.setFocus((s.focus + 1) % 3)
	case "shift+tab":
		return s, s.setFocus((s.focus + 2) % 3)
	}

	if s.focus != focusList {
		if msg.String() == "esc" {
			return s, s.setFocus(focusList)
		}
		return s, s.updateFocused(msg)
	}

	if s.cursor.Update(msg, len(s.session.Problems)) {
		return s, nil
	}

	switch msg.String() {
	case "enter":
		if p := s.selected(); p != nil {
			return s, s.loadProblem(p.ID)
		}
	case "r":
		return s, s.run()
	case "s":
		return s, s.submit()
	case "l":
		s.cycleLanguage()
	case "v":
		return s, s.toggleSolution()
	case "e":
		return s, s.toggleEditorial()
	case "x":
		s.session.DismissError()
		s.session.EditorialError = ""
		s.listErr = ""
	case "i":
		return s, s.openImport()
	case "u":
		return s, s.fetchProblems()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *PracticeScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case focusEditor:
		s.editor, cmd = s.editor.Update(msg)
		s.session.SetCode(s.editor.Value())
	case focusInput:
		s.input, cmd = s.input.Update(msg)
		s.session.CustomInput = s.input.Value()
	}
	return cmd
}

func (s *PracticeScreen) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	s.editor.Blur()
	s.input.Blur()
	switch f {
	case focusEditor:
		return s.editor.Focus()
	case focusInput:
		return s.input.Focus()
	}
	return nil
}

func (s *PracticeScreen) run() tea.Cmd {
	req, err := s.session.BeginRun()
	if err != nil {
		return nil
	}
	return s.execute("run", req)
}

// submit is a no-op without a loaded problem.
func (s *PracticeScreen) submit() tea.Cmd {
	req, ok, err := s.session.BeginSubmit()
	if err != nil || !ok {
		return nil
	}
	return s.execute("submit", req)
}

func (s *PracticeScreen) cycleLanguage() {
	langs := s.session.SupportedLanguages()
	i := slices.Index(langs, s.session.Language)
	s.session.SwitchLanguage(langs[(i+1)%len(langs)])
	s.syncEditor()
}

func (s *PracticeScreen) toggleSolution() tea.Cmd {
	fetch, err := s.session.ToggleSolution()
	if err != nil || !fetch {
		return nil
	}
	id, lang := s.session.Problem.ID, s.session.Language
	backend := s.backend
	return func() tea.Msg {
		sol, err := backend.GetSolution(context.Background(), id, lang)
		return solutionLoadedMsg{ProblemID: id, Language: lang, Solution: sol, Err: err}
	}
}

func (s *PracticeScreen) toggleEditorial() tea.Cmd {
	fetch, err := s.session.ToggleEditorial()
	if err != nil || !fetch {
		return nil
	}
	id := s.session.Problem.ID
	backend := s.backend
	return func() tea.Msg {
		text, err := backend.GetEditorial(context.Background(), id)
		return editorialLoadedMsg{ProblemID: id, Text: text, Err: err}
	}
}

func (s *PracticeScreen) openImport() tea.Cmd {
	scr := importer.New(s.backend, func(p *api.Problem) {
		s.session.AddImported(p)
		s.cursor.Index = 0
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *PracticeScreen) selected() *api.ProblemSummary {
	if len(s.session.Problems) == 0 {
		return nil
	}
	s.cursor.Clamp(len(s.session.Problems))
	return &s.session.Problems[s.cursor.Index]
}

// syncCursor moves the list cursor onto the selected problem.
func (s *PracticeScreen) syncCursor() {
	for i, p := range s.session.Problems {
		if p.ID == s.session.SelectedID {
			s.cursor.Index = i
			return
		}
	}
}

// syncEditor copies the session code into the editor after the session
// replaced it.
func (s *PracticeScreen) syncEditor() {
	s.editor.SetValue(s.session.Code)
}

func outcome(s *prac.Session) string {
	switch s.Overall() {
	case prac.BadgePassed:
		return "passed"
	case prac.BadgeFailed:
		return "failed"
	}
	return s.Result.Status
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.focus != focusList {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "运行"},
			{Key: "Ctrl+S", Description: "提交"},
			{Key: "Tab", Description: "切换区域"},
			{Key: "Esc", Description: "返回列表"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "加载"},
		{Key: "r/s", Description: "运行/提交"},
		{Key: "l", Description: "语言"},
		{Key: "v/e", Description: "题解/讲解"},
		{Key: "i", Description: "导入"},
		{Key: "Tab", Description: "编辑"},
		{Key: "Esc", Description: "返回"},
	}
}
