// Package flashcards is the flashcard deck of a knowledge base with
// fixed-interval review scheduling.
package flashcards

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/store"
)

// RandomSessionSize caps the number of cards in a random study session.
const RandomSessionSize = 10

// ErrEmptyCard is returned when a card is created without front or back.
var ErrEmptyCard = errors.New("front and back are required")

// Card is one question/answer flashcard.
type Card struct {
	ID            string
	Front         string
	Back          string
	Difficulty    string
	LastReviewed  time.Time // zero when never reviewed
	NextReview    time.Time // zero when never scheduled
	CorrectCount  int
	TotalAttempts int
	Tags          []string
}

// Mode selects the cards of a study session.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeDue    Mode = "due"
	ModeRandom Mode = "random"
)

// Deck holds the cards of one knowledge base.
type Deck struct {
	cards []*Card
	rng   *rand.Rand
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{}
}

// Cards returns the cards in creation order.
func (d *Deck) Cards() []*Card {
	return d.cards
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Get returns the card with id, or nil.
func (d *Deck) Get(id string) *Card {
	for _, c := range d.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Create appends a new medium-difficulty card. tags is a comma separated list.
func (d *Deck) Create(front, back, tags string) (*Card, error) {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return nil, ErrEmptyCard
	}
	c := &Card{
		ID:         uuid.NewString(),
		Front:      front,
		Back:       back,
		Difficulty: Medium,
		Tags:       splitTags(tags),
	}
	d.cards = append(d.cards, c)
	return c, nil
}

// SetDifficulty changes the difficulty of the card with id. Unknown
// difficulties are ignored.
func (d *Deck) SetDifficulty(id, difficulty string) bool {
	c := d.Get(id)
	if c == nil {
		return false
	}
	if _, ok := reviewDays[difficulty]; !ok {
		return false
	}
	c.Difficulty = difficulty
	return true
}

// Delete removes the card with id. It reports whether a card was removed.
func (d *Deck) Delete(id string) bool {
	n := len(d.cards)
	d.cards = slices.DeleteFunc(d.cards, func(c *Card) bool { return c.ID == id })
	return len(d.cards) != n
}

// Due returns the cards due on now.
func (d *Deck) Due(now time.Time) []*Card {
	var out []*Card
	for _, c := range d.cards {
		if c.IsDue(now) {
			out = append(out, c)
		}
	}
	return out
}

// Study starts a study session in mode. The session may be empty.
func (d *Deck) Study(mode Mode, now time.Time) *Study {
	var cards []*Card
	switch mode {
	case ModeDue:
		cards = d.Due(now)
	case ModeRandom:
		cards = slices.Clone(d.cards)
		d.shuffle(cards)
		if len(cards) > RandomSessionSize {
			cards = cards[:RandomSessionSize]
		}
	default:
		cards = slices.Clone(d.cards)
	}
	return &Study{Mode: mode, cards: cards}
}

func (d *Deck) shuffle(cards []*Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(cards), swap)
		return
	}
	rand.Shuffle(len(cards), swap)
}

// Answer records a review of c on now.
func Answer(c *Card, correct bool, now time.Time) {
	if correct {
		c.CorrectCount++
	}
	c.TotalAttempts++
	c.LastReviewed = Day(now)
	c.NextReview = NextReview(correct, c.Difficulty, now)
}

// Study is an in-progress study session. Answers update the deck's cards
// in place.
type Study struct {
	Mode       Mode
	cards      []*Card
	index      int
	ShowAnswer bool
	Correct    int
	Total      int
}

// Len returns the number of cards in the session.
func (s *Study) Len() int {
	return len(s.cards)
}

// Index returns the position of the current card.
func (s *Study) Index() int {
	return s.index
}

// Done reports whether every card has been answered.
func (s *Study) Done() bool {
	return s.index >= len(s.cards)
}

// Current returns the card being studied, or nil when done.
func (s *Study) Current() *Card {
	if s.Done() {
		return nil
	}
	return s.cards[s.index]
}

// Reveal shows the answer of the current card.
func (s *Study) Reveal() {
	s.ShowAnswer = true
}

// Answer records the result for the current card and advances.
func (s *Study) Answer(correct bool, now time.Time) {
	c := s.Current()
	if c == nil {
		return
	}
	Answer(c, correct, now)
	if correct {
		s.Correct++
	}
	s.Total++
	s.index++
	s.ShowAnswer = false
}

// Progress returns the completion percentage, counting a revealed card as
// half done.
func (s *Study) Progress() float64 {
	if len(s.cards) == 0 {
		return 0
	}
	pos := float64(s.index)
	if s.ShowAnswer {
		pos += 0.5
	}
	return pos / float64(len(s.cards)) * 100
}

// Stats summarizes the deck.
type Stats struct {
	Total    int
	Due      int
	Accuracy int // mean of per-card accuracy over attempted cards
}

// Stats computes deck statistics on now.
func (d *Deck) Stats(now time.Time) Stats {
	st := Stats{Total: len(d.cards)}
	sum, attempted := 0, 0
	for _, c := range d.cards {
		if c.IsDue(now) {
			st.Due++
		}
		if c.TotalAttempts > 0 {
			sum += c.Accuracy()
			attempted++
		}
	}
	if attempted > 0 {
		st.Accuracy = sum / attempted
	}
	return st
}

// SnapshotData exports the deck for persistence.
func (d *Deck) SnapshotData() []store.FlashcardData {
	out := make([]store.FlashcardData, len(d.cards))
	for i, c := range d.cards {
		out[i] = store.FlashcardData{
			ID:            c.ID,
			Front:         c.Front,
			Back:          c.Back,
			Difficulty:    c.Difficulty,
			LastReviewed:  store.FormatDate(c.LastReviewed),
			NextReview:    store.FormatDate(c.NextReview),
			CorrectCount:  c.CorrectCount,
			TotalAttempts: c.TotalAttempts,
			Tags:          c.Tags,
		}
	}
	return out
}

// DeckFromSnapshot rebuilds a deck. Dates are interpreted in loc.
func DeckFromSnapshot(data []store.FlashcardData, loc *time.Location) *Deck {
	d := NewDeck()
	for _, fd := range data {
		diff := fd.Difficulty
		if diff == "" {
			diff = Medium
		}
		d.cards = append(d.cards, &Card{
			ID:            fd.ID,
			Front:         fd.Front,
			Back:          fd.Back,
			Difficulty:    diff,
			LastReviewed:  store.ParseDate(fd.LastReviewed, loc),
			NextReview:    store.ParseDate(fd.NextReview, loc),
			CorrectCount:  fd.CorrectCount,
			TotalAttempts: fd.TotalAttempts,
			Tags:          fd.Tags,
		})
	}
	return d
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
