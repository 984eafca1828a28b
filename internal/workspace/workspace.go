// Package workspace loads and saves the tool state behind a knowledge base.
// Every tool reads its own section of the document and writes the whole
// document back.
package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/prepdeck/internal/flashcards"
	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/mindmap"
	"github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/podcast"
	"github.com/abhisek/prepdeck/internal/store"
)

// Workspace is the opened document of one knowledge base.
type Workspace struct {
	Base *knowledge.Base
	Data store.WorkspaceData

	bases *knowledge.Bases
	repo  store.WorkspaceRepo
}

// Open loads the workspace of baseID. A base that was never saved gets an
// empty document. A nil repo keeps the workspace in memory.
func Open(ctx context.Context, bases *knowledge.Bases, repo store.WorkspaceRepo, baseID string) (*Workspace, error) {
	kb := bases.Get(baseID)
	if kb == nil {
		return nil, fmt.Errorf("knowledge base %s: %w", baseID, store.ErrNotFound)
	}
	w := &Workspace{
		Base:  kb,
		Data:  store.WorkspaceData{Version: store.WorkspaceVersion},
		bases: bases,
		repo:  repo,
	}
	if repo == nil {
		return w, nil
	}
	ws, err := repo.Load(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if ws != nil {
		w.Data = ws.Data
	}
	return w, nil
}

// Save writes the document and records count as the item count of the
// base.
func (w *Workspace) Save(ctx context.Context, count int, now time.Time) error {
	if w.repo != nil {
		err := w.repo.Save(ctx, &store.Workspace{
			BaseID:    w.Base.ID,
			UpdatedAt: now,
			Data:      w.Data,
		})
		if err != nil {
			return err
		}
	}
	return w.bases.Touch(ctx, w.Base.ID, count, now)
}

// Deck rebuilds the flashcard deck. Review dates are read in the local
// time zone.
func (w *Workspace) Deck() *flashcards.Deck {
	return flashcards.DeckFromSnapshot(w.Data.Flashcards, time.Local)
}

// SaveDeck stores d.
func (w *Workspace) SaveDeck(ctx context.Context, d *flashcards.Deck, now time.Time) error {
	w.Data.Flashcards = d.SnapshotData()
	return w.Save(ctx, d.Len(), now)
}

// Book rebuilds the notebook.
func (w *Workspace) Book() *notes.Book {
	return notes.BookFromSnapshot(w.Data.Notes)
}

// SaveBook stores b.
func (w *Workspace) SaveBook(ctx context.Context, b *notes.Book, now time.Time) error {
	w.Data.Notes = b.SnapshotData()
	return w.Save(ctx, b.Len(), now)
}

// Library rebuilds the podcast library.
func (w *Workspace) Library() *podcast.Library {
	return podcast.LibraryFromSnapshot(w.Data.Podcasts)
}

// SaveLibrary stores l.
func (w *Workspace) SaveLibrary(ctx context.Context, l *podcast.Library, now time.Time) error {
	w.Data.Podcasts = l.SnapshotData()
	return w.Save(ctx, len(l.All()), now)
}

// Mindmap rebuilds the mind map. A base without one gets a fresh map
// rooted at the base name.
func (w *Workspace) Mindmap() (*mindmap.Map, error) {
	return mindmap.FromSnapshot(w.Data.Mindmap, w.Base.Name)
}

// SaveMindmap stores m. The root does not count as an item.
func (w *Workspace) SaveMindmap(ctx context.Context, m *mindmap.Map, now time.Time) error {
	w.Data.Mindmap = m.SnapshotData()
	return w.Save(ctx, m.Len()-1, now)
}
