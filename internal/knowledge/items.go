// Package knowledge holds the view state of backend knowledge items and the
// locally stored knowledge bases.
package knowledge

import (
	"slices"
	"strings"

	"github.com/abhisek/prepdeck/internal/api"
)

// Items is the knowledge item list plus the open detail view.
type Items struct {
	items []api.KnowledgeItem

	// Selected is the id shown in the detail view, or "".
	Selected string
	// Err is the last load or mutation error, shown inline.
	Err string
}

// NewItems returns an empty list.
func NewItems() *Items {
	return &Items{}
}

// All returns the items in display order.
func (l *Items) All() []api.KnowledgeItem {
	return l.items
}

// Len returns the number of items.
func (l *Items) Len() int {
	return len(l.items)
}

// Replace swaps in a freshly loaded list. An open detail whose item is gone
// is closed.
func (l *Items) Replace(items []api.KnowledgeItem) {
	l.items = slices.Clone(items)
	l.Err = ""
	if l.Selected != "" && l.Get(l.Selected) == nil {
		l.Selected = ""
	}
}

// Add prepends a newly generated item.
func (l *Items) Add(item api.KnowledgeItem) {
	l.items = append([]api.KnowledgeItem{item}, l.items...)
	l.Err = ""
}

// Remove drops the item with id and closes the detail view if it shows that
// item. Other items are untouched.
func (l *Items) Remove(id string) bool {
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(it api.KnowledgeItem) bool { return it.ID == id })
	if l.Selected == id {
		l.Selected = ""
	}
	return len(l.items) != n
}

// Get returns the item with id, or nil.
func (l *Items) Get(id string) *api.KnowledgeItem {
	for i := range l.items {
		if l.items[i].ID == id {
			return &l.items[i]
		}
	}
	return nil
}

// Open shows the detail view of id. Unknown ids are ignored.
func (l *Items) Open(id string) {
	if l.Get(id) != nil {
		l.Selected = id
	}
}

// Close hides the detail view.
func (l *Items) Close() {
	l.Selected = ""
}

// Current returns the item in the detail view, or nil.
func (l *Items) Current() *api.KnowledgeItem {
	if l.Selected == "" {
		return nil
	}
	return l.Get(l.Selected)
}

// Filter returns the items whose question text, tags or answer contain
// query, case-insensitively.
func (l *Items) Filter(query string) []api.KnowledgeItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return l.items
	}
	var out []api.KnowledgeItem
	for _, it := range l.items {
		if itemMatches(it, query) {
			out = append(out, it)
		}
	}
	return out
}

func itemMatches(it api.KnowledgeItem, query string) bool {
	if strings.Contains(strings.ToLower(it.Question.Text), query) ||
		strings.Contains(strings.ToLower(it.Flashcard.Answer), query) {
		return true
	}
	for _, t := range it.Question.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}
