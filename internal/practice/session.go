// Package practice holds the client-side state of a problem practice
// session: code drafts, run/submit phases and judged results.
package practice

import (
	"errors"
	"slices"
	"strings"

	"github.com/abhisek/prepdeck/internal/api"
)

// SubmitTolerance is the float tolerance sent with tolerant submissions.
const SubmitTolerance = 1e-6

var (
	// ErrEmptyCode is returned when a run is requested with blank code.
	ErrEmptyCode = errors.New("请先填写代码")

	// ErrBusy is returned while a run or submit is already in flight.
	ErrBusy = errors.New("execution already in progress")

	// ErrNoProblem is returned by problem-scoped actions before a load.
	ErrNoProblem = errors.New("no problem loaded")
)

// Phase is the execution phase of a session.
type Phase int

const (
	PhaseIdle       Phase = iota // Nothing in flight
	PhaseRunning                 // Custom-input run in flight
	PhaseSubmitting              // Graded submission in flight
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Result is the view of the last finished execution.
type Result struct {
	Rows          []ResultRow
	Stdout        string
	Stderr        string
	ExecutionTime string
	Memory        string
	Status        string
	Passed        *bool

	// Correlated counts rows whose input came from a known test case.
	Correlated int
}

// Empty reports whether no execution has produced output yet.
func (r Result) Empty() bool {
	return r.Status == "" && r.Stdout == "" && r.Stderr == "" && len(r.Rows) == 0
}

// Accepted reports whether the execution passed. Without case rows the
// backend's overall verdict decides.
func (r Result) Accepted() bool {
	if len(r.Rows) > 0 {
		return Overall(r.Rows) == BadgePassed
	}
	return r.Passed != nil && *r.Passed
}

// Session is the state of the practice view. It is not safe for concurrent
// use; the UI mutates it only from its update loop.
type Session struct {
	Problems   []api.ProblemSummary
	SelectedID string
	Problem    *api.Problem
	LoadError  string

	Language    string
	Code        string
	CustomInput string
	drafts      map[string]string

	Phase    Phase
	Result   Result
	RunError string

	SolutionVisible bool
	solutions       map[string]*api.Solution
	// solutionPending holds the languages whose solution is being fetched.
	solutionPending map[string]bool

	EditorialVisible bool
	Editorial        string
	EditorialError   string
	editorialLoaded  bool
	editorialPending bool

	loadSeq uint64
	// submitCases is the test-case list of the in-flight submission.
	submitCases []api.TestCase
}

// NewSession returns an idle session with the python template loaded.
func NewSession() *Session {
	return &Session{
		Language:  DefaultLanguage,
		Code:      Template(DefaultLanguage),
		drafts:    make(map[string]string),
		solutions: make(map[string]*api.Solution),

		solutionPending: make(map[string]bool),
	}
}

// SetProblems replaces the problem list. When nothing is selected yet the
// first entry becomes the selection; the returned id is what should be
// loaded, or "" when nothing changed.
func (s *Session) SetProblems(list []api.ProblemSummary) string {
	s.Problems = list
	if s.SelectedID == "" && len(list) > 0 {
		s.SelectedID = list[0].ID
		return s.SelectedID
	}
	return ""
}

// AddImported prepends a freshly imported problem and selects it.
func (s *Session) AddImported(p *api.Problem) {
	s.Problems = append([]api.ProblemSummary{p.Summary()}, s.Problems...)
	s.SelectedID = p.ID
}

// SupportedLanguages returns the languages of the loaded problem, or python
// when none is loaded.
func (s *Session) SupportedLanguages() []string {
	if s.Problem == nil || len(s.Problem.SolutionLanguages) == 0 {
		return []string{DefaultLanguage}
	}
	return s.Problem.SolutionLanguages
}

// TestCases returns the test cases of the loaded problem.
func (s *Session) TestCases() []api.TestCase {
	if s.Problem == nil {
		return nil
	}
	return s.Problem.TestCases
}

// Busy reports whether a run or submit is in flight.
func (s *Session) Busy() bool {
	return s.Phase != PhaseIdle
}

// CanSubmit reports whether submit is currently enabled.
func (s *Session) CanSubmit() bool {
	return s.Problem != nil && !s.Busy()
}

// BeginLoad selects id and returns the token that FinishLoad must present.
// Responses carrying an older token are dropped.
func (s *Session) BeginLoad(id string) uint64 {
	s.SelectedID = id
	s.loadSeq++
	return s.loadSeq
}

// FinishLoad applies a problem-load response. It reports false when the
// response is stale and was ignored.
func (s *Session) FinishLoad(token uint64, p *api.Problem, err error) bool {
	if token != s.loadSeq {
		return false
	}
	if err != nil {
		s.LoadError = err.Error()
		s.Problem = nil
		return true
	}
	s.LoadProblem(p)
	return true
}

// LoadProblem installs p, picks a language it supports and restores that
// language's draft. Execution state is reset and solution/editorial panels
// are hidden.
func (s *Session) LoadProblem(p *api.Problem) {
	if s.Problem == nil || s.Problem.ID != p.ID {
		clear(s.solutions)
		clear(s.solutionPending)
		s.Editorial = ""
		s.editorialLoaded = false
		s.editorialPending = false
	}
	s.Problem = p
	s.SelectedID = p.ID
	s.LoadError = ""

	s.Language = pickLanguage(s.Language, p)
	s.Code = s.draftOrTemplate(s.Language)
	s.resetExecution()
	s.SolutionVisible = false
	s.EditorialVisible = false
	s.EditorialError = ""
}

func pickLanguage(current string, p *api.Problem) string {
	if slices.Contains(p.SolutionLanguages, current) {
		return current
	}
	if p.DefaultLanguage != "" {
		return p.DefaultLanguage
	}
	if len(p.SolutionLanguages) > 0 {
		return p.SolutionLanguages[0]
	}
	return DefaultLanguage
}

// SetCode replaces the editor contents and records them as the draft of the
// current language.
func (s *Session) SetCode(code string) {
	s.Code = code
	s.drafts[s.Language] = code
}

// SwitchLanguage saves the current draft and loads the draft or template of
// lang.
func (s *Session) SwitchLanguage(lang string) {
	if lang == s.Language {
		return
	}
	s.drafts[s.Language] = s.Code
	s.Language = lang
	s.Code = s.draftOrTemplate(lang)
	s.resetExecution()
}

func (s *Session) draftOrTemplate(lang string) string {
	if d, ok := s.drafts[lang]; ok {
		return d
	}
	return Template(lang)
}

func (s *Session) resetExecution() {
	s.Result = Result{}
	s.RunError = ""
}

// BeginRun starts a custom-input run and returns the request to send.
func (s *Session) BeginRun() (api.ExecutionRequest, error) {
	if s.Busy() {
		return api.ExecutionRequest{}, ErrBusy
	}
	if strings.TrimSpace(s.Code) == "" {
		s.RunError = ErrEmptyCode.Error()
		return api.ExecutionRequest{}, ErrEmptyCode
	}
	s.Phase = PhaseRunning
	s.RunError = ""
	s.submitCases = nil
	return api.ExecutionRequest{
		Language: s.Language,
		Code:     s.Code,
		Stdin:    api.String(s.CustomInput),
	}, nil
}

// BeginSubmit starts a graded submission. ok is false, with no error, when
// no problem is loaded: nothing should be sent.
func (s *Session) BeginSubmit() (req api.ExecutionRequest, ok bool, err error) {
	if s.Problem == nil {
		return api.ExecutionRequest{}, false, nil
	}
	if s.Busy() {
		return api.ExecutionRequest{}, false, ErrBusy
	}
	s.Phase = PhaseSubmitting
	s.RunError = ""
	s.submitCases = s.Problem.TestCases
	return api.ExecutionRequest{
		Language:       s.Language,
		Code:           s.Code,
		ProblemID:      api.String(s.Problem.ID),
		Match:          api.String(api.MatchTolerant),
		FloatTolerance: api.Float(SubmitTolerance),
	}, true, nil
}

// Complete applies a finished execution and returns to idle.
func (s *Session) Complete(res *api.ExecutionResult) {
	s.RunError = ""
	s.Result = Result{
		Rows:          MergeCases(res, s.submitCases),
		Stdout:        res.Stdout,
		Stderr:        res.Stderr,
		ExecutionTime: res.ExecutionTime,
		Memory:        res.Memory,
		Status:        res.Status,
		Passed:        res.Passed,
		Correlated:    Correlated(res, s.submitCases),
	}
	s.submitCases = nil
	s.Phase = PhaseIdle
}

// Fail records a failed execution. The previous result stays visible.
func (s *Session) Fail(err error) {
	s.RunError = err.Error()
	s.submitCases = nil
	s.Phase = PhaseIdle
}

// DismissError clears the inline error message.
func (s *Session) DismissError() {
	s.RunError = ""
}

// Overall returns the badge for the current result rows.
func (s *Session) Overall() string {
	return Overall(s.Result.Rows)
}

// ToggleSolution hides a visible solution and reports false. Otherwise it
// reports whether the solution for the current language must be fetched
// first; when it is already cached the panel is shown immediately. While a
// fetch for the language is pending it reports false.
func (s *Session) ToggleSolution() (fetch bool, err error) {
	if s.Problem == nil {
		return false, ErrNoProblem
	}
	if s.SolutionVisible {
		s.SolutionVisible = false
		return false, nil
	}
	if _, ok := s.solutions[s.Language]; ok {
		s.SolutionVisible = true
		return false, nil
	}
	if s.solutionPending[s.Language] {
		return false, nil
	}
	s.solutionPending[s.Language] = true
	return true, nil
}

// SolutionLoading reports whether the current language's solution is being
// fetched.
func (s *Session) SolutionLoading() bool {
	return s.solutionPending[s.Language]
}

// SolutionLoaded caches a fetched solution and shows it. A failed fetch is
// surfaced as the run error.
func (s *Session) SolutionLoaded(lang string, sol *api.Solution, err error) {
	delete(s.solutionPending, lang)
	if err != nil {
		s.RunError = err.Error()
		return
	}
	s.solutions[lang] = sol
	if lang == s.Language {
		s.SolutionVisible = true
	}
}

// Solution returns the cached solution of the current language.
func (s *Session) Solution() *api.Solution {
	return s.solutions[s.Language]
}

// ToggleEditorial mirrors ToggleSolution for the editorial panel.
func (s *Session) ToggleEditorial() (fetch bool, err error) {
	if s.Problem == nil {
		return false, ErrNoProblem
	}
	if s.EditorialVisible {
		s.EditorialVisible = false
		return false, nil
	}
	if s.editorialPending {
		return false, nil
	}
	s.EditorialError = ""
	if s.editorialLoaded {
		s.EditorialVisible = true
		return false, nil
	}
	s.editorialPending = true
	return true, nil
}

// EditorialLoading reports whether the editorial is being fetched.
func (s *Session) EditorialLoading() bool {
	return s.editorialPending
}

// EditorialLoaded caches the fetched editorial and shows it.
func (s *Session) EditorialLoaded(text string, err error) {
	s.editorialPending = false
	if err != nil {
		s.EditorialError = err.Error()
		return
	}
	s.Editorial = text
	s.editorialLoaded = true
	s.EditorialVisible = true
}
