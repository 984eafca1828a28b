package notes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/prepdeck/internal/store"
)

var now = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func TestCreatePrependsAndOpensEditor(t *testing.T) {
	b := NewBook()
	if _, err := b.Create("  ", "", now); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title err = %v", err)
	}
	first, _ := b.Create("面试准备清单", "面试, 准备,,技术", now)
	second, err := b.Create("JavaScript核心概念", "", now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.All()[0] != second || b.All()[1] != first {
		t.Error("new note not prepended")
	}
	if diff := cmp.Diff([]string{"面试", "准备", "技术"}, first.Tags); diff != "" {
		t.Errorf("tags mismatch:\n%s", diff)
	}
	if !strings.HasPrefix(second.Content, "# JavaScript核心概念\n\n") {
		t.Errorf("Content = %q", second.Content)
	}
	if b.Selected != second.ID || !b.Editing {
		t.Error("new note not opened in the editor")
	}
}

func TestSaveUpdatesWordCount(t *testing.T) {
	b := NewBook()
	n, _ := b.Create("Go", "", now)
	later := now.Add(time.Hour)
	if err := b.Save(n.ID, "Go runtime", "# Go\n\nthe  scheduler\tparks goroutines\n", later); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", n.WordCount)
	}
	if n.Title != "Go runtime" || !n.UpdatedAt.Equal(later) || !n.CreatedAt.Equal(now) {
		t.Errorf("note = %+v", n)
	}
	if b.Editing {
		t.Error("editor still open after save")
	}
	if err := b.Save(n.ID, "", "x", later); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title err = %v", err)
	}
	if err := b.Save("missing", "t", "x", later); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing note err = %v", err)
	}
}

func TestDeleteClosesOpenNote(t *testing.T) {
	b := NewBook()
	a, _ := b.Create("A", "", now)
	c, _ := b.Create("C", "", now)
	b.Open(a.ID)
	if !b.Delete(c.ID) {
		t.Fatal("Delete(c) = false")
	}
	if b.Selected != a.ID {
		t.Error("deleting another note closed the open one")
	}
	b.Edit()
	b.Delete(a.ID)
	if b.Selected != "" || b.Editing || b.Current() != nil {
		t.Error("deleted note still open")
	}
	if b.Delete(a.ID) {
		t.Error("second delete reported a removal")
	}
}

func TestSearch(t *testing.T) {
	b := NewBook()
	n1, _ := b.Create("Closures", "javascript", now)
	b.Save(n1.ID, "Closures", "函数能够访问其外部作用域的变量", now)
	n2, _ := b.Create("STAR method", "behavioral", now)
	b.Save(n2.ID, "STAR method", "Situation Task Action Result", now)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"closures", 1},
		{"作用域", 1},
		{"BEHAVIORAL", 1},
		{"a", 2},
		{"rust", 0},
	}
	for _, tt := range tests {
		if got := len(b.Search(tt.query)); got != tt.want {
			t.Errorf("Search(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestSnippetInsert(t *testing.T) {
	tests := []struct {
		name       string
		snippet    Snippet
		content    string
		start, end int
		want       string
		cursor     int
	}{
		{"wrap selection", Toolbar[0], "make bold here", 5, 9, "make **bold** here", 13},
		{"placeholder", Toolbar[0], "", 0, 0, "**粗体文本**", len("**粗体文本**")},
		{"template", Toolbar[3], "a\n", 2, 2, "a\n- 列表项", len("a\n- 列表项")},
		{"link", Toolbar[2], "see x", 4, 5, "see [链接文本](x)", len("see [链接文本](x)")},
		{"clamped", Toolbar[6], "ab", 5, 9, "ab`代码`", len("ab`代码`")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := tt.snippet.Insert(tt.content, tt.start, tt.end)
			if got != tt.want || cursor != tt.cursor {
				t.Errorf("Insert = (%q, %d), want (%q, %d)", got, cursor, tt.want, tt.cursor)
			}
		})
	}
}

func TestRenderFallsBackToRaw(t *testing.T) {
	r := NewRenderer("notty")
	out := r.Render("# Title\n\nbody text", 40)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "body text") {
		t.Errorf("Render = %q", out)
	}
	if r.Render("", 40) != "" {
		t.Error("empty markdown rendered non-empty")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	n := &Note{ID: "n1", Title: "Go: channels / select?", Content: "# Go\n"}
	path, err := Export(n, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "Go-channels-select.md" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "# Go\n" {
		t.Errorf("exported = %q, %v", data, err)
	}
	if got := FileName(&Note{ID: "x", Title: "///"}); got != "x.md" {
		t.Errorf("FileName = %s, want x.md", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := NewBook()
	n, _ := b.Create("A", "t1, t2", now)
	b.Save(n.ID, "A", "one two three", now.Add(time.Minute))

	b2 := BookFromSnapshot(b.SnapshotData())
	got := b2.Get(n.ID)
	if got == nil {
		t.Fatal("note lost")
	}
	if got.WordCount != 3 || !got.UpdatedAt.Equal(now.Add(time.Minute)) || !got.CreatedAt.Equal(now) {
		t.Errorf("restored = %+v", got)
	}
}
