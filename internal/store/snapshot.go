package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// WorkspaceVersion is the current workspace document version.
const WorkspaceVersion = 1

// WorkspaceData is the tool state of one knowledge base. Each tool module
// owns its section; timestamps are RFC 3339 strings and dates are YYYY-MM-DD.
type WorkspaceData struct {
	Version    int             `json:"version"`
	Flashcards []FlashcardData `json:"flashcards,omitempty"`
	Notes      []NoteData      `json:"notes,omitempty"`
	Mindmap    *MindmapData    `json:"mindmap,omitempty"`
	Podcasts   []EpisodeData   `json:"podcasts,omitempty"`
}

// FlashcardData is the persisted form of a flashcard.
type FlashcardData struct {
	ID            string   `json:"id"`
	Front         string   `json:"front"`
	Back          string   `json:"back"`
	Difficulty    string   `json:"difficulty"`
	LastReviewed  string   `json:"last_reviewed,omitempty"`
	NextReview    string   `json:"next_review,omitempty"`
	CorrectCount  int      `json:"correct_count"`
	TotalAttempts int      `json:"total_attempts"`
	Tags          []string `json:"tags,omitempty"`
}

// NoteData is the persisted form of a markdown note.
type NoteData struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// MindmapNodeData is the persisted form of a mind map node.
type MindmapNodeData struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Color    string   `json:"color"`
	ParentID string   `json:"parent_id,omitempty"`
	Children []string `json:"children,omitempty"`
	Level    int      `json:"level"`
}

// MindmapData is the persisted form of a mind map.
type MindmapData struct {
	Nodes []MindmapNodeData `json:"nodes"`
}

// EpisodeData is the persisted form of a podcast episode.
type EpisodeData struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	CreatedAt   string   `json:"created_at"`
	Status      string   `json:"status"`
	Transcript  string   `json:"transcript,omitempty"`
	AudioURL    string   `json:"audio_url,omitempty"`
	Hosts       []string `json:"hosts,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Style       string   `json:"style,omitempty"`
}

// Workspace is a stored workspace document.
type Workspace struct {
	BaseID    string
	Sequence  int64
	UpdatedAt time.Time
	Data      WorkspaceData
}

// workspaceRepo implements WorkspaceRepo with one row per knowledge base.
type workspaceRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *workspaceRepo) Save(ctx context.Context, ws *Workspace) error {
	if ws.Data.Version == 0 {
		ws.Data.Version = WorkspaceVersion
	}
	data, err := json.Marshal(ws.Data)
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if ws.UpdatedAt.IsZero() {
		ws.UpdatedAt = time.Now()
	}

	query, args := builder().Insert(tableWorkspaces).
		Columns("base_id", "sequence", "updated_at", "data").
		Values(ws.BaseID, seqNum, ws.UpdatedAt.UnixMilli(), string(data)).
		OnConflict(
			entsql.ConflictColumns("base_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	ws.Sequence = seqNum
	return nil
}

func (r *workspaceRepo) Load(ctx context.Context, baseID string) (*Workspace, error) {
	b := builder()
	query, args := b.Select("base_id", "sequence", "updated_at", "data").
		From(b.Table(tableWorkspaces)).
		Where(entsql.EQ("base_id", baseID)).
		Query()

	var (
		ws      Workspace
		updated int64
		data    string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&ws.BaseID, &ws.Sequence, &updated, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &ws.Data); err != nil {
		return nil, fmt.Errorf("unmarshal workspace: %w", err)
	}
	ws.UpdatedAt = time.UnixMilli(updated)
	return &ws, nil
}

// FormatTime renders t for a workspace document. The zero time is "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseTime parses a FormatTime value. Invalid input yields the zero time.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate renders the civil date of t. The zero time is "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// ParseDate parses a FormatDate value in loc. Invalid input yields the zero
// time.
func ParseDate(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
