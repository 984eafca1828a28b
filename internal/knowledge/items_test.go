package knowledge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/prepdeck/internal/api"
)

func item(id, text, answer string, tags ...string) api.KnowledgeItem {
	return api.KnowledgeItem{
		ID:        id,
		Question:  api.Question{ID: "q" + id, Text: text, Tags: tags},
		Flashcard: api.Flashcard{Answer: answer},
	}
}

func ids(items []api.KnowledgeItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func seededItems() *Items {
	l := NewItems()
	l.Replace([]api.KnowledgeItem{
		item("1", "What is a goroutine?", "A lightweight thread", "go", "concurrency"),
		item("2", "Explain TCP handshake", "SYN, SYN-ACK, ACK", "network"),
		item("3", "What is a B-tree?", "Balanced search tree used by databases", "db"),
	})
	return l
}

func TestItemsRemoveExactlyOne(t *testing.T) {
	l := seededItems()
	if !l.Remove("2") {
		t.Fatal("Remove(2) = false")
	}
	if diff := cmp.Diff([]string{"1", "3"}, ids(l.All())); diff != "" {
		t.Errorf("remaining ids mismatch:\n%s", diff)
	}
	if l.Remove("2") {
		t.Error("second Remove(2) = true")
	}
}

func TestItemsRemoveClosesDetail(t *testing.T) {
	l := seededItems()
	l.Open("3")
	l.Remove("1")
	if l.Selected != "3" {
		t.Errorf("Selected = %q, want detail of 3 kept open", l.Selected)
	}
	l.Remove("3")
	if l.Selected != "" || l.Current() != nil {
		t.Errorf("detail still open after its item was removed")
	}
}

func TestItemsAddPrepends(t *testing.T) {
	l := seededItems()
	l.Err = "boom"
	l.Add(item("4", "new", "answer"))
	if got := l.All()[0].ID; got != "4" {
		t.Errorf("first = %q, want 4", got)
	}
	if l.Len() != 4 || l.Err != "" {
		t.Errorf("Len = %d, Err = %q", l.Len(), l.Err)
	}
}

func TestItemsReplaceClosesStaleDetail(t *testing.T) {
	l := seededItems()
	l.Open("2")
	l.Replace([]api.KnowledgeItem{item("2", "x", "y")})
	if l.Selected != "2" {
		t.Error("detail closed although item still present")
	}
	l.Replace(nil)
	if l.Selected != "" {
		t.Error("detail kept for vanished item")
	}
}

func TestItemsFilter(t *testing.T) {
	l := seededItems()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"GOROUTINE", []string{"1"}},   // question text
		{"network", []string{"2"}},     // tag
		{"databases", []string{"3"}},   // answer
		{"what is", []string{"1", "3"}},
		{"kafka", nil},
	}
	for _, tt := range tests {
		got := ids(l.Filter(tt.query))
		if len(got) == 0 {
			got = nil
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Filter(%q) mismatch:\n%s", tt.query, diff)
		}
	}
}

func TestItemsOpenUnknown(t *testing.T) {
	l := seededItems()
	l.Open("missing")
	if l.Selected != "" {
		t.Errorf("Selected = %q", l.Selected)
	}
	l.Open("1")
	if c := l.Current(); c == nil || c.ID != "1" {
		t.Errorf("Current = %+v", c)
	}
	l.Close()
	if l.Current() != nil {
		t.Error("Close did not hide detail")
	}
}
