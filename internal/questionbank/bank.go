// Package questionbank is the local interview question bank.
package questionbank

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/store"
)

// Difficulties accepted by the bank.
const (
	Easy   = "Easy"
	Medium = "Medium"
	Hard   = "Hard"
)

// Categories offered by the question form.
var Categories = []string{
	"Array", "String", "Linked List", "Tree", "Graph", "Dynamic Programming",
	"Sorting", "Searching", "Hash Table", "Stack", "Queue", "Heap", "Math", "Other",
}

// Question is one entry of the bank.
type Question struct {
	ID          string
	Title       string `validate:"required"`
	Description string
	Difficulty  string `validate:"required,oneof=Easy Medium Hard"`
	Category    string
	Tags        []string
	Solution    string
	Hints       []string
	CreatedAt   time.Time
}

// AddTag appends tag when it is non-blank and not already present.
func (q *Question) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(q.Tags, tag) {
		return false
	}
	q.Tags = append(q.Tags, tag)
	return true
}

// RemoveTag drops tag.
func (q *Question) RemoveTag(tag string) {
	q.Tags = slices.DeleteFunc(q.Tags, func(t string) bool { return t == tag })
}

// Matches reports whether the lowercase query occurs in the title,
// description, category or any tag.
func (q *Question) Matches(query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(q.Title), query) ||
		strings.Contains(strings.ToLower(q.Description), query) ||
		strings.Contains(strings.ToLower(q.Category), query) {
		return true
	}
	for _, t := range q.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// Stats counts questions by difficulty.
type Stats struct {
	Total  int
	Easy   int
	Medium int
	Hard   int
}

// Bank is the question list plus the open detail view.
type Bank struct {
	questions []*Question
	repo      store.QuestionRepo
	validate  *validator.Validate

	// Selected is the id shown in the detail view, or "".
	Selected string
}

// New returns a bank persisted through repo. A nil repo keeps everything in
// memory.
func New(repo store.QuestionRepo) *Bank {
	return &Bank{
		repo:     repo,
		validate: validator.New(),
	}
}

// Load replaces the in-memory list with the persisted questions.
func (b *Bank) Load(ctx context.Context) error {
	if b.repo == nil {
		return nil
	}
	recs, err := b.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	b.questions = b.questions[:0]
	for _, r := range recs {
		b.questions = append(b.questions, fromRecord(r))
	}
	return nil
}

// All returns every question, newest first.
func (b *Bank) All() []*Question {
	return b.questions
}

// Get returns the question with id, or nil.
func (b *Bank) Get(id string) *Question {
	for _, q := range b.questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Filter returns the questions matching query. An empty query matches all.
func (b *Bank) Filter(query string) []*Question {
	if query == "" {
		return b.questions
	}
	var out []*Question
	for _, q := range b.questions {
		if q.Matches(query) {
			out = append(out, q)
		}
	}
	return out
}

// Add validates q, assigns an id and creation time, and prepends it.
func (b *Bank) Add(ctx context.Context, q Question, now time.Time) (*Question, error) {
	if err := b.validate.Struct(&q); err != nil {
		return nil, fmt.Errorf("invalid question: %w", err)
	}
	q.ID = uuid.NewString()
	q.CreatedAt = now
	if err := b.persist(ctx, &q); err != nil {
		return nil, err
	}
	b.questions = append([]*Question{&q}, b.questions...)
	return &q, nil
}

// Update replaces the question with the same id. The creation time is kept.
func (b *Bank) Update(ctx context.Context, q Question) error {
	if err := b.validate.Struct(&q); err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	for i, existing := range b.questions {
		if existing.ID != q.ID {
			continue
		}
		q.CreatedAt = existing.CreatedAt
		if err := b.persist(ctx, &q); err != nil {
			return err
		}
		b.questions[i] = &q
		return nil
	}
	return fmt.Errorf("question %s: %w", q.ID, store.ErrNotFound)
}

// Delete removes the question and closes the detail view.
func (b *Bank) Delete(ctx context.Context, id string) error {
	if b.repo != nil {
		if err := b.repo.Delete(ctx, id); err != nil {
			return err
		}
	}
	b.questions = slices.DeleteFunc(b.questions, func(q *Question) bool { return q.ID == id })
	b.Selected = ""
	return nil
}

// Open shows the detail view of id.
func (b *Bank) Open(id string) {
	if b.Get(id) != nil {
		b.Selected = id
	}
}

// Close hides the detail view.
func (b *Bank) Close() {
	b.Selected = ""
}

// Stats counts the questions by difficulty.
func (b *Bank) Stats() Stats {
	st := Stats{Total: len(b.questions)}
	for _, q := range b.questions {
		switch q.Difficulty {
		case Easy:
			st.Easy++
		case Medium:
			st.Medium++
		case Hard:
			st.Hard++
		}
	}
	return st
}

func (b *Bank) persist(ctx context.Context, q *Question) error {
	if b.repo == nil {
		return nil
	}
	rec := toRecord(q)
	if err := b.repo.Save(ctx, &rec); err != nil {
		return fmt.Errorf("save question: %w", err)
	}
	return nil
}

func toRecord(q *Question) store.QuestionRecord {
	return store.QuestionRecord{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Difficulty:  q.Difficulty,
		Category:    q.Category,
		Tags:        q.Tags,
		Solution:    q.Solution,
		Hints:       q.Hints,
		CreatedAt:   q.CreatedAt,
	}
}

func fromRecord(r store.QuestionRecord) *Question {
	return &Question{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Difficulty:  r.Difficulty,
		Category:    r.Category,
		Tags:        r.Tags,
		Solution:    r.Solution,
		Hints:       r.Hints,
		CreatedAt:   r.CreatedAt,
	}
}
