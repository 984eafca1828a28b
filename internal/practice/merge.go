package practice

import (
	"strconv"
	"strings"

	"github.com/abhisek/prepdeck/internal/api"
)

// Overall badge labels.
const (
	BadgePassed = "通过"
	BadgeFailed = "未通过"
)

// ResultRow is one judged case as shown in the result panel.
type ResultRow struct {
	ID       string
	Input    string
	Expected string
	Actual   string
	Passed   bool
}

// MergeCases correlates result cases with the known test cases by position.
// Inputs missing on the test-case side are left empty. A result without
// case-level outcomes yields no rows.
func MergeCases(res *api.ExecutionResult, testCases []api.TestCase) []ResultRow {
	if res == nil || len(res.Cases) == 0 {
		return nil
	}
	rows := make([]ResultRow, len(res.Cases))
	for i, c := range res.Cases {
		input := ""
		if i < len(testCases) {
			input = testCases[i].Input
		}
		rows[i] = ResultRow{
			ID:       strconv.Itoa(i),
			Input:    input,
			Expected: c.Expected,
			Actual:   c.Actual,
			Passed:   c.Passed,
		}
	}
	return rows
}

// Correlated returns how many rows carry an input from a known test case,
// min(len(res.Cases), len(testCases)).
func Correlated(res *api.ExecutionResult, testCases []api.TestCase) int {
	if res == nil {
		return 0
	}
	return min(len(res.Cases), len(testCases))
}

// Overall returns the aggregate badge for rows, or "" when there are none.
func Overall(rows []ResultRow) string {
	if len(rows) == 0 {
		return ""
	}
	for _, r := range rows {
		if !r.Passed {
			return BadgeFailed
		}
	}
	return BadgePassed
}

// PassedCount returns how many rows passed.
func PassedCount(rows []ResultRow) int {
	n := 0
	for _, r := range rows {
		if r.Passed {
			n++
		}
	}
	return n
}

// DifficultyBadge maps a backend difficulty to its display label.
func DifficultyBadge(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case api.DifficultyEasy:
		return "简单"
	case api.DifficultyMedium:
		return "中等"
	case api.DifficultyHard:
		return "困难"
	default:
		return "未标注"
	}
}
