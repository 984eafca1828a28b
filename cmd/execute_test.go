package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/practice"
)

type fakeExecutor struct {
	problem *api.Problem
	result  *api.ExecutionResult
	err     error
	got     []api.ExecutionRequest
}

func (f *fakeExecutor) GetProblem(_ context.Context, id string) (*api.Problem, error) {
	if f.problem == nil || f.problem.ID != id {
		return nil, &api.Error{Status: 404, Message: "problem not found"}
	}
	return f.problem, nil
}

func (f *fakeExecutor) Execute(_ context.Context, req api.ExecutionRequest) (*api.ExecutionResult, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func boolPtr(b bool) *bool { return &b }

func writeSource(t *testing.T, name, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(code), 0o600))
	return path
}

func TestRunSourceGuessesLanguage(t *testing.T) {
	f := &fakeExecutor{result: &api.ExecutionResult{Status: "Accepted", Stdout: "3\n"}}
	path := writeSource(t, "sum.go", "package main\n")

	s, err := runSource(context.Background(), f, path, "", "1 2")
	require.NoError(t, err)

	require.Len(t, f.got, 1)
	req := f.got[0]
	assert.Equal(t, "go", req.Language)
	assert.Equal(t, "package main\n", req.Code)
	require.NotNil(t, req.Stdin)
	assert.Equal(t, "1 2", *req.Stdin)
	assert.Nil(t, req.ProblemID)
	assert.Equal(t, "3\n", s.Result.Stdout)
	assert.Empty(t, s.Result.Rows)
}

func TestRunSourceUnknownExtension(t *testing.T) {
	f := &fakeExecutor{}
	path := writeSource(t, "notes.txt", "hello")

	_, err := runSource(context.Background(), f, path, "", "")
	assert.ErrorContains(t, err, "--lang")
	assert.Empty(t, f.got)

	_, err = runSource(context.Background(), f, path, "python", "")
	assert.NoError(t, err)
}

func TestRunSourceEmptyCode(t *testing.T) {
	f := &fakeExecutor{}
	path := writeSource(t, "empty.py", "  \n")

	_, err := runSource(context.Background(), f, path, "", "")
	assert.ErrorIs(t, err, practice.ErrEmptyCode)
	assert.Empty(t, f.got)
}

func TestSubmitSourceMergesCases(t *testing.T) {
	f := &fakeExecutor{
		problem: &api.Problem{
			ID:                "two-sum",
			SolutionLanguages: []string{"python", "go"},
			TestCases: []api.TestCase{
				{Input: "1 2", ExpectedOutput: "3"},
				{Input: "2 2", ExpectedOutput: "4"},
			},
		},
		result: &api.ExecutionResult{
			Status: "Wrong Answer",
			Cases: []api.CaseResult{
				{Expected: "3", Actual: "3", Passed: true},
				{Expected: "4", Actual: "5", Passed: false},
			},
		},
	}
	path := writeSource(t, "sol.py", "print(3)\n")

	s, err := submitSource(context.Background(), f, "two-sum", path, "")
	require.NoError(t, err)

	require.Len(t, f.got, 1)
	req := f.got[0]
	assert.Equal(t, "python", req.Language)
	require.NotNil(t, req.ProblemID)
	assert.Equal(t, "two-sum", *req.ProblemID)
	assert.Nil(t, req.Stdin)

	require.Len(t, s.Result.Rows, 2)
	assert.Equal(t, "2 2", s.Result.Rows[1].Input)
	assert.Equal(t, practice.BadgeFailed, s.Overall())

	var out bytes.Buffer
	printResult(&out, s.Result)
	assert.Contains(t, out.String(), "Status: Wrong Answer")
	assert.Contains(t, out.String(), "1/2")
	assert.Contains(t, out.String(), `actual   "5"`)
	assert.NotContains(t, out.String(), "correlated")
	assert.ErrorIs(t, verdict(s.Result), errCasesFailed)
}

func TestSubmitVerdictWithoutCases(t *testing.T) {
	tests := []struct {
		name    string
		passed  *bool
		wantErr error
	}{
		{"passed", boolPtr(true), nil},
		{"failed", boolPtr(false), errCasesFailed},
		{"no verdict", nil, errCasesFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeExecutor{
				problem: &api.Problem{ID: "echo", SolutionLanguages: []string{"python"}},
				result:  &api.ExecutionResult{Status: "success", Passed: tt.passed},
			}
			path := writeSource(t, "sol.py", "print(1)\n")

			s, err := submitSource(context.Background(), f, "echo", path, "")
			require.NoError(t, err)
			assert.Empty(t, s.Result.Rows)
			assert.Equal(t, tt.wantErr, verdict(s.Result))
		})
	}
}

func TestPrintResultNotesUncorrelatedCases(t *testing.T) {
	f := &fakeExecutor{
		problem: &api.Problem{
			ID:                "two-sum",
			SolutionLanguages: []string{"python"},
			TestCases:         []api.TestCase{{Input: "1 2", ExpectedOutput: "3"}},
		},
		result: &api.ExecutionResult{
			Status: "success",
			Cases: []api.CaseResult{
				{Expected: "3", Actual: "3", Passed: true},
				{Expected: "7", Actual: "7", Passed: true},
			},
		},
	}
	path := writeSource(t, "sol.py", "print(3)\n")

	s, err := submitSource(context.Background(), f, "two-sum", path, "")
	require.NoError(t, err)
	require.NoError(t, verdict(s.Result))

	var out bytes.Buffer
	printResult(&out, s.Result)
	assert.Contains(t, out.String(), "1/2 cases correlated")
}

func TestSubmitSourceUnknownProblem(t *testing.T) {
	f := &fakeExecutor{}
	path := writeSource(t, "sol.py", "print(3)\n")

	_, err := submitSource(context.Background(), f, "missing", path, "")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Empty(t, f.got)
}

func TestExecuteFailureKeepsError(t *testing.T) {
	f := &fakeExecutor{err: errors.New("connection refused")}
	path := writeSource(t, "a.cpp", "int main() {}\n")

	s, err := runSource(context.Background(), f, path, "", "")
	require.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "connection refused", s.RunError)
	assert.Equal(t, practice.PhaseIdle, s.Phase)
}
