package practice

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/prepdeck/internal/api"
)

func TestMergeCases(t *testing.T) {
	cases := []api.TestCase{{Input: "a"}, {Input: "b"}}

	tests := []struct {
		name       string
		res        *api.ExecutionResult
		want       []ResultRow
		correlated int
	}{
		{
			name: "nil result",
			res:  nil,
		},
		{
			name: "no cases",
			res:  &api.ExecutionResult{Stdout: "x", Status: "success"},
		},
		{
			name: "equal length",
			res: &api.ExecutionResult{Cases: []api.CaseResult{
				{Expected: "1", Actual: "1", Passed: true},
				{Expected: "2", Actual: "3", Passed: false},
			}},
			want: []ResultRow{
				{ID: "0", Input: "a", Expected: "1", Actual: "1", Passed: true},
				{ID: "1", Input: "b", Expected: "2", Actual: "3", Passed: false},
			},
			correlated: 2,
		},
		{
			name: "more results than test cases",
			res: &api.ExecutionResult{Cases: []api.CaseResult{
				{Expected: "1", Actual: "1", Passed: true},
				{Expected: "2", Actual: "2", Passed: true},
				{Expected: "3", Actual: "3", Passed: true},
			}},
			want: []ResultRow{
				{ID: "0", Input: "a", Expected: "1", Actual: "1", Passed: true},
				{ID: "1", Input: "b", Expected: "2", Actual: "2", Passed: true},
				{ID: "2", Input: "", Expected: "3", Actual: "3", Passed: true},
			},
			correlated: 2,
		},
		{
			name: "fewer results than test cases",
			res: &api.ExecutionResult{Cases: []api.CaseResult{
				{Expected: "1", Actual: "0", Passed: false},
			}},
			want: []ResultRow{
				{ID: "0", Input: "a", Expected: "1", Actual: "0", Passed: false},
			},
			correlated: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeCases(tt.res, cases)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeCases mismatch (-want +got):\n%s", diff)
			}
			if n := Correlated(tt.res, cases); n != tt.correlated {
				t.Errorf("Correlated = %d, want %d", n, tt.correlated)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	if got := Overall(nil); got != "" {
		t.Errorf("Overall(nil) = %q", got)
	}
	rows := []ResultRow{{Passed: true}, {Passed: true}}
	if got := Overall(rows); got != BadgePassed {
		t.Errorf("Overall = %q, want %q", got, BadgePassed)
	}
	rows = append(rows, ResultRow{Passed: false})
	if got := Overall(rows); got != BadgeFailed {
		t.Errorf("Overall = %q, want %q", got, BadgeFailed)
	}
	if got := PassedCount(rows); got != 2 {
		t.Errorf("PassedCount = %d, want 2", got)
	}
}

func TestDifficultyBadge(t *testing.T) {
	tests := map[string]string{
		"easy":   "简单",
		"Medium": "中等",
		"HARD":   "困难",
		"":       "未标注",
		"insane": "未标注",
	}
	for in, want := range tests {
		if got := DifficultyBadge(in); got != want {
			t.Errorf("DifficultyBadge(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplates(t *testing.T) {
	for _, lang := range Languages {
		if Template(lang) == "" {
			t.Errorf("missing template for %s", lang)
		}
	}
	if Template("rust") != "" {
		t.Error("unexpected template for rust")
	}
	if LanguageLabel("cpp") != "C++" || LanguageLabel("rust") != "rust" {
		t.Error("LanguageLabel mismatch")
	}
}

func TestLanguageForFile(t *testing.T) {
	tests := map[string]string{
		"two_sum.py":    "python",
		"solution.CPP":  "cpp",
		"a/b/Main.java": "java",
		"main.go":       "go",
		"notes.md":      "",
		"Makefile":      "",
	}
	for path, want := range tests {
		if got := LanguageForFile(path); got != want {
			t.Errorf("LanguageForFile(%q) = %q, want %q", path, got, want)
		}
	}
}
