package api

// Difficulty labels used by the backend. An empty string means unlabeled.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Judging modes accepted by the execute endpoint.
const (
	MatchExact    = "exact"
	MatchTolerant = "tolerant"
)

// TestCase is one stored input/expected-output pair of a problem.
type TestCase struct {
	Input          string `json:"input" yaml:"input"`
	ExpectedOutput string `json:"expectedOutput" yaml:"expected_output"`
}

// Problem is the detail view of a coding exercise.
type Problem struct {
	ID                string     `json:"id" validate:"required"`
	Title             string     `json:"title" validate:"required"`
	Description       string     `json:"description,omitempty"`
	Difficulty        string     `json:"difficulty,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	TestCases         []TestCase `json:"test_cases" validate:"dive"`
	SolutionLanguages []string   `json:"solution_languages"`
	DefaultLanguage   string     `json:"default_language,omitempty"`
	HasEditorial      bool       `json:"has_editorial"`
}

// Summary returns the list-entry form of the problem.
func (p *Problem) Summary() ProblemSummary {
	return ProblemSummary{
		ID:                p.ID,
		Title:             p.Title,
		Difficulty:        p.Difficulty,
		Tags:              p.Tags,
		SolutionLanguages: p.SolutionLanguages,
	}
}

// ProblemSummary is a problem as returned by the list endpoint.
type ProblemSummary struct {
	ID                string   `json:"id" validate:"required"`
	Title             string   `json:"title" validate:"required"`
	Difficulty        string   `json:"difficulty,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	SolutionLanguages []string `json:"solution_languages"`
}

// ProblemFilter narrows the problem list.
type ProblemFilter struct {
	Difficulty string
	Tag        string
}

// ExecutionRequest is the body of POST /api/v1/execute. Optional fields are
// pointers so only what the caller set is sent.
type ExecutionRequest struct {
	Language       string   `json:"language" validate:"required"`
	Code           string   `json:"code" validate:"required"`
	Stdin          *string  `json:"stdin,omitempty"`
	ProblemID      *string  `json:"problem_id,omitempty"`
	Match          *string  `json:"match,omitempty"`
	FloatTolerance *float64 `json:"float_tolerance,omitempty"`
}

// CaseResult is the judged outcome of a single test case.
type CaseResult struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
}

// ExecutionResult is the response of the execute endpoint.
type ExecutionResult struct {
	Stdout        string       `json:"stdout"`
	Stderr        string       `json:"stderr"`
	ExecutionTime string       `json:"executionTime"`
	Memory        string       `json:"memory"`
	Status        string       `json:"status" validate:"required"`
	Passed        *bool        `json:"passed,omitempty"`
	Cases         []CaseResult `json:"cases,omitempty"`
}

// Solution is a reference solution for one language.
type Solution struct {
	Language    string `json:"language" yaml:"language" validate:"required"`
	Code        string `json:"code" yaml:"code" validate:"required"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// ProblemImport is the body of POST /api/v1/problems/import.
type ProblemImport struct {
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	TestCases   []TestCase `json:"test_cases" yaml:"test_cases" validate:"required,min=1"`
	Solutions   []Solution `json:"solutions" yaml:"solutions" validate:"required,min=1,dive"`
	Editorial   string     `json:"editorial,omitempty" yaml:"editorial,omitempty"`
}

// QuestionInput is one entry of POST /api/v1/questions.
type QuestionInput struct {
	Text       string   `json:"text" validate:"required"`
	Tags       []string `json:"tags,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// Question is a stored interview question.
type Question struct {
	ID         string   `json:"id" validate:"required"`
	Text       string   `json:"text"`
	Tags       []string `json:"tags,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// Flashcard is the generated answer card of a knowledge item.
type Flashcard struct {
	Answer   string   `json:"answer"`
	Pitfalls []string `json:"pitfalls"`
}

// CodeSnippet is the generated code note of a knowledge item.
type CodeSnippet struct {
	Lang        string `json:"lang"`
	Snippet     string `json:"snippet"`
	Explanation string `json:"explanation"`
}

// KnowledgeItem is an AI-generated bundle derived from a question.
type KnowledgeItem struct {
	ID           string         `json:"id" validate:"required"`
	Question     Question       `json:"question"`
	Flashcard    Flashcard      `json:"flashcard"`
	Mindmap      map[string]any `json:"mindmap"`
	Code         CodeSnippet    `json:"code"`
	ProjectUsage string         `json:"project_usage,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

// ItemQuery filters and paginates the knowledge item list. Zero values are
// left out of the query string.
type ItemQuery struct {
	Q          string
	Tag        string
	Difficulty string
	Page       int
	PageSize   int
}

// ItemPage is the paginated knowledge item response.
type ItemPage struct {
	Items    []KnowledgeItem `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }

// Float returns a pointer to f, for optional request fields.
func Float(f float64) *float64 { return &f }
