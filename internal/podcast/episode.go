// Package podcast manages the AI podcast episodes of a knowledge base and
// the playback state of the open episode.
package podcast

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/store"
)

// Status is the generation state of an episode.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Label returns the display name of s.
func (s Status) Label() string {
	switch s {
	case StatusGenerating:
		return "生成中"
	case StatusReady:
		return "就绪"
	case StatusError:
		return "失败"
	default:
		return string(s)
	}
}

// Style is the conversation format of an episode.
type Style string

const (
	StyleConversational Style = "conversational"
	StyleInterview      Style = "interview"
	StyleEducational    Style = "educational"
)

// Styles lists the styles in menu order.
var Styles = []Style{StyleConversational, StyleInterview, StyleEducational}

// Label returns the display name of s.
func (s Style) Label() string {
	switch s {
	case StyleInterview:
		return "访谈式"
	case StyleEducational:
		return "教学式"
	default:
		return "对话式"
	}
}

// Description returns a one-line description of s.
func (s Style) Description() string {
	switch s {
	case StyleInterview:
		return "深度问答形式"
	case StyleEducational:
		return "结构化讲解"
	default:
		return "轻松的双人对话"
	}
}

// DefaultHosts are the two voices of every episode.
var DefaultHosts = []string{"Alice", "Bob"}

var (
	ErrTitleRequired = errors.New("episode title is required")
	ErrNotReady      = errors.New("episode is not ready")
	ErrNotFound      = errors.New("episode not found")
)

// Episode is one podcast episode.
type Episode struct {
	ID          string
	Title       string
	Description string
	Duration    int // seconds
	CreatedAt   time.Time
	Status      Status
	Transcript  string
	AudioURL    string
	Hosts       []string
	Topics      []string
	Style       Style
	Err         string
}

// Library is the episode list plus the player of the open episode.
type Library struct {
	episodes []*Episode

	// Player is non-nil while an episode is open.
	Player *Player
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// All returns the episodes, newest first.
func (l *Library) All() []*Episode {
	return l.episodes
}

// Get returns the episode with id, or nil.
func (l *Library) Get(id string) *Episode {
	for _, ep := range l.episodes {
		if ep.ID == id {
			return ep
		}
	}
	return nil
}

// Generating reports whether any episode is still being generated.
func (l *Library) Generating() bool {
	return slices.ContainsFunc(l.episodes, func(ep *Episode) bool { return ep.Status == StatusGenerating })
}

// Create prepends a new episode in the generating state. topics is a comma
// separated list.
func (l *Library) Create(title, description, topics string, style Style, now time.Time) (*Episode, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !slices.Contains(Styles, style) {
		style = StyleConversational
	}
	ep := &Episode{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		Status:      StatusGenerating,
		Hosts:       slices.Clone(DefaultHosts),
		Topics:      splitList(topics),
		Style:       style,
	}
	l.episodes = append([]*Episode{ep}, l.episodes...)
	return ep, nil
}

// Complete stores a generated transcript and marks id ready. Results for
// deleted episodes are dropped.
func (l *Library) Complete(id string, tr Transcript) bool {
	ep := l.Get(id)
	if ep == nil {
		return false
	}
	ep.Status = StatusReady
	ep.Transcript = tr.Text
	ep.Duration = tr.Duration
	ep.AudioURL = tr.AudioURL
	ep.Err = ""
	return true
}

// Fail marks id as failed.
func (l *Library) Fail(id string, err error) bool {
	ep := l.Get(id)
	if ep == nil {
		return false
	}
	ep.Status = StatusError
	if err != nil {
		ep.Err = err.Error()
	}
	return true
}

// Retry puts a failed episode back into the generating state.
func (l *Library) Retry(id string) (*Episode, error) {
	ep := l.Get(id)
	if ep == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if ep.Status != StatusError {
		return nil, fmt.Errorf("episode %s is %s", id, ep.Status)
	}
	ep.Status = StatusGenerating
	ep.Err = ""
	return ep, nil
}

// Delete removes id. The player is closed when it shows that episode.
func (l *Library) Delete(id string) bool {
	n := len(l.episodes)
	l.episodes = slices.DeleteFunc(l.episodes, func(ep *Episode) bool { return ep.ID == id })
	if l.Player != nil && l.Player.EpisodeID == id {
		l.Player = nil
	}
	return len(l.episodes) != n
}

// Open starts a player for a ready episode.
func (l *Library) Open(id string) (*Player, error) {
	ep := l.Get(id)
	if ep == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if ep.Status != StatusReady {
		return nil, ErrNotReady
	}
	l.Player = NewPlayer(ep.ID, ep.Duration)
	return l.Player, nil
}

// Close closes the player.
func (l *Library) Close() {
	l.Player = nil
}

// Current returns the episode shown by the player, or nil.
func (l *Library) Current() *Episode {
	if l.Player == nil {
		return nil
	}
	return l.Get(l.Player.EpisodeID)
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SnapshotData exports the library for persistence. Episodes still
// generating are stored as failed since their generation does not survive a
// restart.
func (l *Library) SnapshotData() []store.EpisodeData {
	out := make([]store.EpisodeData, len(l.episodes))
	for i, ep := range l.episodes {
		status := ep.Status
		if status == StatusGenerating {
			status = StatusError
		}
		out[i] = store.EpisodeData{
			ID:          ep.ID,
			Title:       ep.Title,
			Description: ep.Description,
			Duration:    ep.Duration,
			CreatedAt:   store.FormatTime(ep.CreatedAt),
			Status:      string(status),
			Transcript:  ep.Transcript,
			AudioURL:    ep.AudioURL,
			Hosts:       ep.Hosts,
			Topics:      ep.Topics,
			Style:       string(ep.Style),
		}
	}
	return out
}

// LibraryFromSnapshot rebuilds a library.
func LibraryFromSnapshot(data []store.EpisodeData) *Library {
	l := NewLibrary()
	for _, d := range data {
		l.episodes = append(l.episodes, &Episode{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Duration:    d.Duration,
			CreatedAt:   store.ParseTime(d.CreatedAt),
			Status:      Status(d.Status),
			Transcript:  d.Transcript,
			AudioURL:    d.AudioURL,
			Hosts:       d.Hosts,
			Topics:      d.Topics,
			Style:       Style(d.Style),
		})
	}
	return l
}
