// Package notes is the markdown notebook of a knowledge base.
package notes

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/store"
)

// ErrTitleRequired is returned when a note is created or saved without a title.
var ErrTitleRequired = errors.New("note title is required")

// Note is one markdown note.
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	WordCount int
}

// WordCount counts the whitespace separated words of content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Book is the note list plus the open note.
type Book struct {
	notes []*Note

	// Selected is the id of the open note, or "".
	Selected string
	// Editing is true while the open note is in the editor.
	Editing bool
}

// NewBook returns an empty notebook.
func NewBook() *Book {
	return &Book{}
}

// All returns the notes, newest first.
func (b *Book) All() []*Note {
	return b.notes
}

// Len returns the number of notes.
func (b *Book) Len() int {
	return len(b.notes)
}

// Get returns the note with id, or nil.
func (b *Book) Get(id string) *Note {
	for _, n := range b.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Current returns the open note, or nil.
func (b *Book) Current() *Note {
	if b.Selected == "" {
		return nil
	}
	return b.Get(b.Selected)
}

// Create prepends a note seeded with a heading and opens it in the editor.
// tags is a comma separated list.
func (b *Book) Create(title, tags string, now time.Time) (*Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	content := fmt.Sprintf("# %s\n\n开始编写你的笔记...", title)
	n := &Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      SplitTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
		WordCount: WordCount(content),
	}
	b.notes = append([]*Note{n}, b.notes...)
	b.Selected = n.ID
	b.Editing = true
	return n, nil
}

// Save replaces the title and content of id, refreshes the word count and
// leaves the editor.
func (b *Book) Save(id, title, content string, now time.Time) error {
	n := b.Get(id)
	if n == nil {
		return fmt.Errorf("note %s: %w", id, store.ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = now
	n.WordCount = WordCount(content)
	if b.Selected == id {
		b.Editing = false
	}
	return nil
}

// SetTags replaces the tags of id from a comma separated list.
func (b *Book) SetTags(id, tags string) error {
	n := b.Get(id)
	if n == nil {
		return fmt.Errorf("note %s: %w", id, store.ErrNotFound)
	}
	n.Tags = SplitTags(tags)
	return nil
}

// Delete removes id and closes it if open.
func (b *Book) Delete(id string) bool {
	n := len(b.notes)
	b.notes = slices.DeleteFunc(b.notes, func(x *Note) bool { return x.ID == id })
	if b.Selected == id {
		b.Selected = ""
		b.Editing = false
	}
	return len(b.notes) != n
}

// Open shows id in the reader.
func (b *Book) Open(id string) {
	if b.Get(id) != nil {
		b.Selected = id
		b.Editing = false
	}
}

// Edit switches the open note to the editor.
func (b *Book) Edit() {
	if b.Current() != nil {
		b.Editing = true
	}
}

// Close returns to the note list.
func (b *Book) Close() {
	b.Selected = ""
	b.Editing = false
}

// Search returns the notes whose title, content or tags contain query,
// case-insensitively.
func (b *Book) Search(query string) []*Note {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return b.notes
	}
	var out []*Note
	for _, n := range b.notes {
		if matches(n, query) {
			out = append(out, n)
		}
	}
	return out
}

func matches(n *Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// SplitTags splits a comma separated tag list, dropping blanks.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SnapshotData exports the notebook for persistence.
func (b *Book) SnapshotData() []store.NoteData {
	out := make([]store.NoteData, len(b.notes))
	for i, n := range b.notes {
		out[i] = store.NoteData{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Tags:      n.Tags,
			CreatedAt: store.FormatTime(n.CreatedAt),
			UpdatedAt: store.FormatTime(n.UpdatedAt),
		}
	}
	return out
}

// BookFromSnapshot rebuilds a notebook. Word counts are recomputed.
func BookFromSnapshot(data []store.NoteData) *Book {
	b := NewBook()
	for _, nd := range data {
		b.notes = append(b.notes, &Note{
			ID:        nd.ID,
			Title:     nd.Title,
			Content:   nd.Content,
			Tags:      nd.Tags,
			CreatedAt: store.ParseTime(nd.CreatedAt),
			UpdatedAt: store.ParseTime(nd.UpdatedAt),
			WordCount: WordCount(nd.Content),
		})
	}
	return b
}
