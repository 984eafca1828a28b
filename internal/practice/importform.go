package practice

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/prepdeck/internal/api"
)

var (
	// ErrNoSolution is returned when no enabled language has code.
	ErrNoSolution = errors.New("至少提供一种语言的参考解答")

	// ErrTitleRequired is returned when the import title is blank.
	ErrTitleRequired = errors.New("题目标题不能为空")
)

// SolutionDraft is the per-language solution entry of the import form.
type SolutionDraft struct {
	Enabled     bool
	Code        string
	Explanation string
}

// ImportForm is the editable draft of a problem import.
type ImportForm struct {
	Title       string
	Difficulty  string
	Description string
	Tags        string // comma separated
	Editorial   string
	TestCases   []api.TestCase
	Solutions   map[string]*SolutionDraft
}

// NewImportForm returns a blank form: medium difficulty, one empty test case
// and python enabled.
func NewImportForm() *ImportForm {
	f := &ImportForm{}
	f.Reset()
	return f
}

// Reset restores the blank state.
func (f *ImportForm) Reset() {
	f.Title = ""
	f.Difficulty = api.DifficultyMedium
	f.Description = ""
	f.Tags = ""
	f.Editorial = ""
	f.TestCases = []api.TestCase{{}}
	f.Solutions = make(map[string]*SolutionDraft, len(Languages))
	for _, lang := range Languages {
		f.Solutions[lang] = &SolutionDraft{Enabled: lang == DefaultLanguage}
	}
}

// AddTestCase appends an empty test case.
func (f *ImportForm) AddTestCase() {
	f.TestCases = append(f.TestCases, api.TestCase{})
}

// RemoveTestCase drops the case at i. The last remaining case is kept.
func (f *ImportForm) RemoveTestCase(i int) {
	if len(f.TestCases) <= 1 || i < 0 || i >= len(f.TestCases) {
		return
	}
	f.TestCases = append(f.TestCases[:i], f.TestCases[i+1:]...)
}

// ToggleLanguage flips whether lang's solution is included.
func (f *ImportForm) ToggleLanguage(lang string) {
	if d, ok := f.Solutions[lang]; ok {
		d.Enabled = !d.Enabled
	}
}

// Payload builds the import request. Solutions are emitted in Languages
// order; only enabled entries with non-blank code are kept.
func (f *ImportForm) Payload() (api.ProblemImport, error) {
	if strings.TrimSpace(f.Title) == "" {
		return api.ProblemImport{}, ErrTitleRequired
	}

	var solutions []api.Solution
	for _, lang := range Languages {
		d := f.Solutions[lang]
		if d == nil || !d.Enabled || strings.TrimSpace(d.Code) == "" {
			continue
		}
		solutions = append(solutions, api.Solution{
			Language:    lang,
			Code:        d.Code,
			Explanation: strings.TrimSpace(d.Explanation),
		})
	}
	if len(solutions) == 0 {
		return api.ProblemImport{}, ErrNoSolution
	}

	cases := make([]api.TestCase, len(f.TestCases))
	copy(cases, f.TestCases)

	return api.ProblemImport{
		Title:       f.Title,
		Description: f.Description,
		Difficulty:  f.Difficulty,
		Tags:        SplitTags(f.Tags),
		TestCases:   cases,
		Solutions:   solutions,
		Editorial:   strings.TrimSpace(f.Editorial),
	}, nil
}

// SplitTags splits a comma separated list, trimming entries and dropping
// blanks.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// DecodeImport reads a problem import document in YAML. Blank editorial and
// explanations are normalized the same way as the form.
func DecodeImport(r io.Reader) (api.ProblemImport, error) {
	var p api.ProblemImport
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return api.ProblemImport{}, fmt.Errorf("decode problem: %w", err)
	}
	if strings.TrimSpace(p.Title) == "" {
		return api.ProblemImport{}, ErrTitleRequired
	}
	p.Editorial = strings.TrimSpace(p.Editorial)
	kept := p.Solutions[:0]
	for _, sol := range p.Solutions {
		if strings.TrimSpace(sol.Code) == "" {
			continue
		}
		sol.Explanation = strings.TrimSpace(sol.Explanation)
		kept = append(kept, sol)
	}
	if len(kept) == 0 {
		return api.ProblemImport{}, ErrNoSolution
	}
	p.Solutions = kept
	return p, nil
}
