package knowledge

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/store"
)

// BaseType is the tool a knowledge base opens.
type BaseType string

const (
	TypeFlashcards BaseType = "flashcards"
	TypeNotes      BaseType = "notes"
	TypeMindmap    BaseType = "mindmap"
	TypePodcast    BaseType = "podcast"
)

// BaseTypes lists the types in menu order.
var BaseTypes = []BaseType{TypeFlashcards, TypeNotes, TypeMindmap, TypePodcast}

// Valid reports whether t is a known type.
func (t BaseType) Valid() bool {
	return slices.Contains(BaseTypes, t)
}

// Label returns the display name of t.
func (t BaseType) Label() string {
	switch t {
	case TypeFlashcards:
		return "闪卡"
	case TypeMindmap:
		return "思维导图"
	case TypeNotes:
		return "笔记"
	case TypePodcast:
		return "播客"
	default:
		return "未知"
	}
}

// Colors a new base is painted with.
var Colors = []string{"blue", "green", "purple", "orange", "pink"}

var (
	// ErrNameRequired is returned when a base is created without a name.
	ErrNameRequired = errors.New("knowledge base name is required")
	// ErrUnknownType is returned for a type outside BaseTypes.
	ErrUnknownType = errors.New("unknown knowledge base type")
)

// Base is a named collection handled by one tool.
type Base struct {
	ID          string
	Name        string
	Description string
	Type        BaseType
	Color       string
	ItemCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bases is the knowledge base list. A nil repo keeps everything in memory.
type Bases struct {
	bases []*Base
	repo  store.BaseRepo
	rng   *rand.Rand
}

// NewBases returns an empty list persisted through repo.
func NewBases(repo store.BaseRepo) *Bases {
	return &Bases{repo: repo}
}

// Load replaces the list with the persisted bases.
func (b *Bases) Load(ctx context.Context) error {
	if b.repo == nil {
		return nil
	}
	recs, err := b.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load knowledge bases: %w", err)
	}
	b.bases = b.bases[:0]
	for _, r := range recs {
		b.bases = append(b.bases, &Base{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Type:        BaseType(r.Type),
			Color:       r.Color,
			ItemCount:   r.ItemCount,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return nil
}

// All returns the bases, oldest first.
func (b *Bases) All() []*Base {
	return b.bases
}

// Get returns the base with id, or nil.
func (b *Bases) Get(id string) *Base {
	for _, kb := range b.bases {
		if kb.ID == id {
			return kb
		}
	}
	return nil
}

// Create appends a new empty base.
func (b *Bases) Create(ctx context.Context, name, description string, typ BaseType, now time.Time) (*Base, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	kb := &Base{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Type:        typ,
		Color:       b.pickColor(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.persist(ctx, kb); err != nil {
		return nil, err
	}
	b.bases = append(b.bases, kb)
	return kb, nil
}

// Delete removes the base with id and its stored workspace.
func (b *Bases) Delete(ctx context.Context, id string) error {
	if b.repo != nil {
		if err := b.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete knowledge base: %w", err)
		}
	}
	b.bases = slices.DeleteFunc(b.bases, func(kb *Base) bool { return kb.ID == id })
	return nil
}

// Touch records that the workspace of id now holds count items.
func (b *Bases) Touch(ctx context.Context, id string, count int, now time.Time) error {
	kb := b.Get(id)
	if kb == nil {
		return fmt.Errorf("knowledge base %s: %w", id, store.ErrNotFound)
	}
	kb.ItemCount = count
	kb.UpdatedAt = now
	return b.persist(ctx, kb)
}

// Filter returns the bases whose name or description contain query,
// case-insensitively.
func (b *Bases) Filter(query string) []*Base {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return b.bases
	}
	var out []*Base
	for _, kb := range b.bases {
		if strings.Contains(strings.ToLower(kb.Name), query) ||
			strings.Contains(strings.ToLower(kb.Description), query) {
			out = append(out, kb)
		}
	}
	return out
}

func (b *Bases) pickColor() string {
	if b.rng != nil {
		return Colors[b.rng.IntN(len(Colors))]
	}
	return Colors[rand.IntN(len(Colors))]
}

func (b *Bases) persist(ctx context.Context, kb *Base) error {
	if b.repo == nil {
		return nil
	}
	err := b.repo.Save(ctx, &store.BaseRecord{
		ID:          kb.ID,
		Name:        kb.Name,
		Description: kb.Description,
		Type:        string(kb.Type),
		Color:       kb.Color,
		ItemCount:   kb.ItemCount,
		CreatedAt:   kb.CreatedAt,
		UpdatedAt:   kb.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	return nil
}
