package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/prepdeck/internal/flashcards"
	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/mindmap"
	"github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/podcast"
	"github.com/abhisek/prepdeck/internal/screen"
	fcscreen "github.com/abhisek/prepdeck/internal/screens/flashcards"
	mmscreen "github.com/abhisek/prepdeck/internal/screens/mindmap"
	notesscreen "github.com/abhisek/prepdeck/internal/screens/notes"
	podcastscreen "github.com/abhisek/prepdeck/internal/screens/podcast"
	"github.com/abhisek/prepdeck/internal/workspace"
)

// openBase loads the workspace of kb and returns the tool screen of its
// type. Every mutation in the tool writes the workspace back.
func (o Options) openBase(kb *knowledge.Base) (screen.Screen, error) {
	ctx := context.Background()
	ws, err := workspace.Open(ctx, o.Bases, o.Workspaces, kb.ID)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", kb.Name, err)
	}
	saved := func(err error) error {
		if err != nil {
			log.Error().Err(err).Str("base", kb.ID).Msg("save workspace")
		}
		return err
	}

	switch kb.Type {
	case knowledge.TypeFlashcards:
		save := func(d *flashcards.Deck) error { return saved(ws.SaveDeck(ctx, d, time.Now())) }
		return fcscreen.New(kb.Name, ws.Deck(), save, o.Metrics), nil
	case knowledge.TypeNotes:
		save := func(b *notes.Book) error { return saved(ws.SaveBook(ctx, b, time.Now())) }
		return notesscreen.New(kb.Name, ws.Book(), save, o.Renderer, o.ExportDir), nil
	case knowledge.TypeMindmap:
		m, err := ws.Mindmap()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", kb.Name, err)
		}
		save := func(m *mindmap.Map) error { return saved(ws.SaveMindmap(ctx, m, time.Now())) }
		return mmscreen.New(kb.Name, m, save, o.ExportDir), nil
	case knowledge.TypePodcast:
		save := func(l *podcast.Library) error { return saved(ws.SaveLibrary(ctx, l, time.Now())) }
		gen := o.Transcriber
		if gen == nil {
			gen = podcast.NewGenerator(nil, podcast.DefaultConfig())
		}
		return podcastscreen.New(kb.Name, ws.Library(), gen, save, o.Metrics), nil
	}
	return nil, fmt.Errorf("%w: %q", knowledge.ErrUnknownType, kb.Type)
}
