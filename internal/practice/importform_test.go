package practice

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/prepdeck/internal/api"
)

func TestNewImportFormDefaults(t *testing.T) {
	f := NewImportForm()
	if f.Difficulty != "medium" {
		t.Errorf("Difficulty = %q, want medium", f.Difficulty)
	}
	if len(f.TestCases) != 1 {
		t.Errorf("TestCases = %d, want 1", len(f.TestCases))
	}
	for _, lang := range Languages {
		want := lang == "python"
		if f.Solutions[lang].Enabled != want {
			t.Errorf("%s enabled = %v, want %v", lang, f.Solutions[lang].Enabled, want)
		}
	}
}

func TestImportFormTestCases(t *testing.T) {
	f := NewImportForm()
	f.RemoveTestCase(0)
	if len(f.TestCases) != 1 {
		t.Fatalf("last test case removed")
	}
	f.AddTestCase()
	f.TestCases[0].Input = "first"
	f.TestCases[1].Input = "second"
	f.RemoveTestCase(0)
	if len(f.TestCases) != 1 || f.TestCases[0].Input != "second" {
		t.Errorf("TestCases = %+v", f.TestCases)
	}
	f.RemoveTestCase(5)
	if len(f.TestCases) != 1 {
		t.Error("out of range remove changed the list")
	}
}

func TestImportFormPayload(t *testing.T) {
	f := NewImportForm()
	f.Title = "Binary Search"
	f.Tags = " array, ,binary-search ,"
	f.Editorial = "   "
	f.TestCases[0] = api.TestCase{Input: "1 2 3\n2", ExpectedOutput: "1"}
	f.Solutions["python"].Code = "print(1)"
	f.Solutions["python"].Explanation = "  classic  "
	f.Solutions["go"].Code = "package main"
	f.ToggleLanguage("go")
	f.Solutions["cpp"].Code = "int main(){}"

	got, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	want := api.ProblemImport{
		Title:      "Binary Search",
		Difficulty: "medium",
		Tags:       []string{"array", "binary-search"},
		TestCases:  []api.TestCase{{Input: "1 2 3\n2", ExpectedOutput: "1"}},
		Solutions: []api.Solution{
			{Language: "python", Code: "print(1)", Explanation: "classic"},
			{Language: "go", Code: "package main"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Payload mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFormPayloadErrors(t *testing.T) {
	f := NewImportForm()
	if _, err := f.Payload(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("err = %v, want ErrTitleRequired", err)
	}

	f.Title = "T"
	f.Solutions["python"].Code = "   "
	_, err := f.Payload()
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("err = %v, want ErrNoSolution", err)
	}
	if err.Error() != "至少提供一种语言的参考解答" {
		t.Errorf("message = %q", err.Error())
	}

	f.Solutions["python"].Code = "x"
	f.ToggleLanguage("python")
	if _, err := f.Payload(); !errors.Is(err, ErrNoSolution) {
		t.Errorf("disabled language counted: %v", err)
	}
}

func TestSplitTags(t *testing.T) {
	if got := SplitTags(""); got != nil {
		t.Errorf("SplitTags(\"\") = %v", got)
	}
	if diff := cmp.Diff([]string{"a", "b c"}, SplitTags("a, b c ,")); diff != "" {
		t.Errorf("SplitTags mismatch:\n%s", diff)
	}
}

func TestDecodeImport(t *testing.T) {
	doc := `title: Two Sum
difficulty: easy
tags: [array, hash-table]
test_cases:
  - input: "2 7 11 15\n9"
    expected_output: "[0,1]"
solutions:
  - language: python
    code: |
      print([0, 1])
    explanation: "  hash map  "
  - language: go
    code: "  "
editorial: "  "
`
	p, err := DecodeImport(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeImport: %v", err)
	}
	if p.Title != "Two Sum" || p.Difficulty != "easy" {
		t.Errorf("header = %q %q", p.Title, p.Difficulty)
	}
	if len(p.Solutions) != 1 || p.Solutions[0].Explanation != "hash map" {
		t.Errorf("Solutions = %+v", p.Solutions)
	}
	if p.TestCases[0].ExpectedOutput != "[0,1]" {
		t.Errorf("ExpectedOutput = %q", p.TestCases[0].ExpectedOutput)
	}
	if p.Editorial != "" {
		t.Errorf("Editorial = %q, want empty", p.Editorial)
	}

	if _, err := DecodeImport(strings.NewReader("title: x\nbogus: 1\n")); err == nil {
		t.Error("unknown field accepted")
	}
}
