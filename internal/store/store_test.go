package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, want := range []string{"knowledge_bases", "workspaces", "questions", "llm_request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", want,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", want, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.BaseRepo().Save(ctx, &BaseRecord{ID: "b1", Name: "算法基础", Type: "flashcards"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.BaseRepo().Get(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "算法基础" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestBaseRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.BaseRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"系统设计", "面试经验"} {
		err := repo.Save(ctx, &BaseRecord{
			ID:        name,
			Name:      name,
			Type:      "notes",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	// Upsert replaces in place.
	err := repo.Save(ctx, &BaseRecord{ID: "系统设计", Name: "系统设计", Description: "架构", Type: "mindmap", CreatedAt: base, ItemCount: 3})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "系统设计" || list[0].Type != "mindmap" || list[0].ItemCount != 3 {
		t.Errorf("list[0] = %+v", list[0])
	}
	if !list[0].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", list[0].CreatedAt, base)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := s.WorkspaceRepo().Save(ctx, &Workspace{BaseID: "面试经验"}); err != nil {
		t.Fatalf("save workspace: %v", err)
	}
	if err := repo.Delete(ctx, "面试经验"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ws, err := s.WorkspaceRepo().Load(ctx, "面试经验")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ws != nil {
		t.Error("workspace survived base deletion")
	}
}

func TestWorkspaceSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.WorkspaceRepo()
	ctx := context.Background()

	ws, err := repo.Load(ctx, "b1")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if ws != nil {
		t.Fatal("expected nil workspace when none saved")
	}

	first := &Workspace{
		BaseID: "b1",
		Data: WorkspaceData{
			Flashcards: []FlashcardData{{ID: "c1", Front: "什么是时间复杂度？", Back: "大O", Difficulty: "medium", NextReview: "2025-01-17"}},
			Mindmap:    &MindmapData{Nodes: []MindmapNodeData{{ID: "root", Text: "中心主题"}}},
		},
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.Data.Version != WorkspaceVersion {
		t.Errorf("Version = %d, want %d", first.Data.Version, WorkspaceVersion)
	}

	second := &Workspace{
		BaseID: "b1",
		Data:   WorkspaceData{Notes: []NoteData{{ID: "n1", Title: "Go"}}},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if second.Sequence <= first.Sequence {
		t.Errorf("sequence %d not after %d", second.Sequence, first.Sequence)
	}

	ws, err = repo.Load(ctx, "b1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ws.Data.Notes) != 1 || ws.Data.Notes[0].Title != "Go" {
		t.Errorf("Notes = %+v", ws.Data.Notes)
	}
	if len(ws.Data.Flashcards) != 0 || ws.Data.Mindmap != nil {
		t.Error("save did not replace the previous document")
	}
	if ws.Sequence != second.Sequence {
		t.Errorf("Sequence = %d, want %d", ws.Sequence, second.Sequence)
	}
}

func TestQuestionRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	qs := []QuestionRecord{
		{ID: "q1", Title: "两数之和", Difficulty: "Easy", Category: "数组", Tags: []string{"数组", "哈希表"}, CreatedAt: base},
		{ID: "q2", Title: "LRU 缓存", Difficulty: "Medium", Category: "设计", Hints: []string{"双向链表"}, CreatedAt: base.Add(time.Hour)},
	}
	for i := range qs {
		if err := repo.Save(ctx, &qs[i]); err != nil {
			t.Fatalf("save %s: %v", qs[i].ID, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "q2" {
		t.Fatalf("list order = %+v, want newest first", list)
	}
	if len(list[1].Tags) != 2 || list[1].Tags[1] != "哈希表" {
		t.Errorf("Tags = %v", list[1].Tags)
	}
	if len(list[1].Hints) != 0 {
		t.Errorf("Hints = %v, want empty", list[1].Hints)
	}

	if err := repo.Delete(ctx, "q1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "q1"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("len = %d after delete, want 1", len(list))
	}
}

func TestEventRepoLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"podcast", "podcast", "check"} {
		errMsg := ""
		if i == 1 {
			errMsg = "rate limited"
		}
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "anthropic",
			Model:        "claude-sonnet-4-20250514",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 50,
			LatencyMs:    1200,
			Success:      i != 1,
			ErrorMessage: errMsg,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].Purpose != "check" || events[0].Sequence <= events[1].Sequence {
		t.Errorf("events not newest first: %+v", events)
	}
	if events[1].Success || events[1].ErrorMessage != "rate limited" {
		t.Errorf("events[1] = %+v", events[1])
	}

	limited, err := repo.QueryLLMRequests(ctx, QueryOpts{Limit: 1, Before: events[0].Sequence})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != events[1].Sequence {
		t.Errorf("limited = %+v", limited)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.BaseRepo().Save(ctx, &BaseRecord{ID: "b", Name: "b", Type: "notes"}); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	list, err := s.BaseRepo().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("bases after reset = %d", len(list))
	}
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestDateHelpers(t *testing.T) {
	d := time.Date(2025, 1, 17, 15, 4, 5, 0, time.UTC)
	if got := FormatDate(d); got != "2025-01-17" {
		t.Errorf("FormatDate = %q", got)
	}
	if FormatDate(time.Time{}) != "" || FormatTime(time.Time{}) != "" {
		t.Error("zero time should format as empty")
	}
	if got := ParseDate("2025-01-17", time.UTC); !got.Equal(time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate = %v", got)
	}
	if !ParseDate("bogus", time.UTC).IsZero() || !ParseTime("").IsZero() {
		t.Error("invalid input should parse to zero")
	}
	if got := ParseTime(FormatTime(d)); !got.Equal(d) {
		t.Errorf("ParseTime(FormatTime) = %v", got)
	}
}
