package questionbank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/prepdeck/internal/store"
)

// mockRepo is an in-memory QuestionRepo.
type mockRepo struct {
	saved   map[string]store.QuestionRecord
	deleted []string
	failOn  string
}

func newMockRepo() *mockRepo {
	return &mockRepo{saved: make(map[string]store.QuestionRecord)}
}

func (m *mockRepo) Save(_ context.Context, q *store.QuestionRecord) error {
	if q.Title == m.failOn {
		return errors.New("disk full")
	}
	m.saved[q.ID] = *q
	return nil
}

func (m *mockRepo) List(context.Context) ([]store.QuestionRecord, error) {
	var out []store.QuestionRecord
	for _, q := range m.saved {
		out = append(out, q)
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.saved, id)
	return nil
}

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) (*Bank, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	b := New(repo)
	ctx := context.Background()
	for _, q := range []Question{
		{Title: "Two Sum", Description: "Find indices", Difficulty: Easy, Category: "Array", Tags: []string{"Hash Table"}},
		{Title: "Binary Tree Inorder Traversal", Difficulty: Medium, Category: "Tree", Tags: []string{"Recursion"}},
		{Title: "Merge k Sorted Lists", Difficulty: Hard, Category: "Linked List", Tags: []string{"Heap"}},
	} {
		if _, err := b.Add(ctx, q, now); err != nil {
			t.Fatalf("Add(%s): %v", q.Title, err)
		}
	}
	return b, repo
}

func TestAddPrependsAndPersists(t *testing.T) {
	b, repo := seeded(t)
	all := b.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Title != "Merge k Sorted Lists" {
		t.Errorf("first = %q, want newest", all[0].Title)
	}
	if all[0].ID == "" || !all[0].CreatedAt.Equal(now) {
		t.Errorf("id/createdAt not assigned: %+v", all[0])
	}
	if len(repo.saved) != 3 {
		t.Errorf("persisted = %d, want 3", len(repo.saved))
	}
}

func TestAddValidation(t *testing.T) {
	b := New(nil)
	ctx := context.Background()
	if _, err := b.Add(ctx, Question{Difficulty: Easy}, now); err == nil {
		t.Error("missing title accepted")
	}
	if _, err := b.Add(ctx, Question{Title: "x", Difficulty: "easy"}, now); err == nil {
		t.Error("lowercase difficulty accepted")
	}
	if len(b.All()) != 0 {
		t.Error("invalid question stored")
	}
}

func TestAddPersistFailureLeavesListUnchanged(t *testing.T) {
	repo := newMockRepo()
	repo.failOn = "bad"
	b := New(repo)
	if _, err := b.Add(context.Background(), Question{Title: "bad", Difficulty: Easy}, now); err == nil {
		t.Fatal("expected error")
	}
	if len(b.All()) != 0 {
		t.Error("question added despite save failure")
	}
}

func TestFilter(t *testing.T) {
	b, _ := seeded(t)
	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"two", 1},     // title
		{"INDICES", 1}, // description
		{"tree", 1},    // category and title
		{"heap", 1},    // tag
		{"list", 1},    // category
		{"graph", 0},
	}
	for _, tt := range tests {
		if got := len(b.Filter(tt.query)); got != tt.want {
			t.Errorf("Filter(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestUpdateKeepsCreatedAt(t *testing.T) {
	b, repo := seeded(t)
	q := *b.All()[2]
	q.Title = "Two Sum II"
	q.CreatedAt = time.Time{}
	if err := b.Update(context.Background(), q); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := b.Get(q.ID)
	if got.Title != "Two Sum II" || !got.CreatedAt.Equal(now) {
		t.Errorf("updated = %+v", got)
	}
	if repo.saved[q.ID].Title != "Two Sum II" {
		t.Error("update not persisted")
	}

	err := b.Update(context.Background(), Question{ID: "missing", Title: "x", Difficulty: Easy})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteClosesDetail(t *testing.T) {
	b, repo := seeded(t)
	id := b.All()[1].ID
	b.Open(id)
	if b.Selected != id {
		t.Fatalf("Selected = %q, want %q", b.Selected, id)
	}
	if err := b.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Selected != "" {
		t.Error("detail view still open")
	}
	if b.Get(id) != nil || len(b.All()) != 2 {
		t.Error("question not removed")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != id {
		t.Errorf("deleted = %v", repo.deleted)
	}
}

func TestOpenUnknownIsIgnored(t *testing.T) {
	b, _ := seeded(t)
	b.Open("nope")
	if b.Selected != "" {
		t.Errorf("Selected = %q", b.Selected)
	}
}

func TestStats(t *testing.T) {
	b, _ := seeded(t)
	want := Stats{Total: 3, Easy: 1, Medium: 1, Hard: 1}
	if got := b.Stats(); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestLoad(t *testing.T) {
	repo := newMockRepo()
	repo.saved["a"] = store.QuestionRecord{ID: "a", Title: "A", Difficulty: Easy}
	b := New(repo)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(b.All()) != 1 || b.Get("a") == nil {
		t.Errorf("loaded = %+v", b.All())
	}
}

func TestTags(t *testing.T) {
	q := &Question{}
	if !q.AddTag(" dp ") || q.AddTag("dp") || q.AddTag("  ") {
		t.Error("AddTag dedupe/blank handling wrong")
	}
	q.AddTag("greedy")
	q.RemoveTag("dp")
	if len(q.Tags) != 1 || q.Tags[0] != "greedy" {
		t.Errorf("Tags = %v", q.Tags)
	}
}
