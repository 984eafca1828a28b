package practice

import "github.com/abhisek/prepdeck/internal/api"

// problemsLoadedMsg carries the problem list.
type problemsLoadedMsg struct {
	Problems []api.ProblemSummary
	Err      error
}

// problemLoadedMsg carries one problem. Token identifies the load request
// so that late responses for an earlier selection can be dropped.
type problemLoadedMsg struct {
	Token   uint64
	Problem *api.Problem
	Err     error
}

// executionDoneMsg carries the result of a run or submit.
type executionDoneMsg struct {
	Kind   string // "run" or "submit"
	Result *api.ExecutionResult
	Err    error
}

// solutionLoadedMsg carries a reference solution.
type solutionLoadedMsg struct {
	ProblemID string
	Language  string
	Solution  *api.Solution
	Err       error
}

// editorialLoadedMsg carries the editorial text.
type editorialLoadedMsg struct {
	ProblemID string
	Text      string
	Err       error
}
