package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// BaseRecord is a persisted knowledge base.
type BaseRecord struct {
	ID          string
	Name        string
	Description string
	Type        string
	Color       string
	ItemCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BaseRepo manages knowledge bases.
type BaseRepo interface {
	// Save inserts or replaces a knowledge base.
	Save(ctx context.Context, b *BaseRecord) error

	// List returns all knowledge bases, oldest first.
	List(ctx context.Context) ([]BaseRecord, error)

	// Get returns one knowledge base or ErrNotFound.
	Get(ctx context.Context, id string) (*BaseRecord, error)

	// Delete removes a knowledge base and its workspace.
	Delete(ctx context.Context, id string) error
}

// QuestionRecord is a persisted question-bank entry. Tags and hints are
// stored as JSON arrays.
type QuestionRecord struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	Category    string
	Tags        []string
	Solution    string
	Hints       []string
	CreatedAt   time.Time
}

// QuestionRepo manages the local question bank.
type QuestionRepo interface {
	// Save inserts or replaces a question.
	Save(ctx context.Context, q *QuestionRecord) error

	// List returns all questions, newest first.
	List(ctx context.Context) ([]QuestionRecord, error)

	// Delete removes a question. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// WorkspaceRepo stores the tool state of each knowledge base.
type WorkspaceRepo interface {
	// Save replaces the workspace of ws.BaseID and stamps it with a new
	// global sequence number.
	Save(ctx context.Context, ws *Workspace) error

	// Load returns the workspace of baseID, or nil if none was saved.
	Load(ctx context.Context, baseID string) (*Workspace, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns events in sequence order, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
