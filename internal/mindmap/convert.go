package mindmap

import (
	"fmt"

	"github.com/abhisek/prepdeck/internal/store"
)

// Default canvas centre of a new map.
const (
	CenterX = 400.0
	CenterY = 300.0
)

// FromKnowledge builds a map from the generated mind map of a knowledge
// item, a tree of {"text": ..., "children": [...]} objects. Children may also
// be bare strings. fallback labels the root when the tree has no text.
func FromKnowledge(tree map[string]any, fallback string) *Map {
	title := nodeText(tree)
	if title == "" {
		title = fallback
	}
	m := New(title, CenterX, CenterY)
	m.addTree(RootID, tree["children"])
	return m
}

func (m *Map) addTree(parentID string, children any) {
	list, ok := children.([]any)
	if !ok {
		return
	}
	for _, c := range list {
		switch v := c.(type) {
		case string:
			m.AddChild(parentID, v)
		case map[string]any:
			n, err := m.AddChild(parentID, nodeText(v))
			if err != nil {
				continue
			}
			m.addTree(n.ID, v["children"])
		}
	}
}

func nodeText(obj map[string]any) string {
	for _, key := range []string{"text", "title", "name"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// SnapshotData exports the map for persistence.
func (m *Map) SnapshotData() *store.MindmapData {
	out := &store.MindmapData{Nodes: make([]store.MindmapNodeData, len(m.nodes))}
	for i, n := range m.nodes {
		out.Nodes[i] = store.MindmapNodeData{
			ID:       n.ID,
			Text:     n.Text,
			X:        n.X,
			Y:        n.Y,
			Color:    n.Color,
			ParentID: n.ParentID,
			Children: n.Children,
			Level:    n.Level,
		}
	}
	return out
}

// FromSnapshot rebuilds a map and validates it. A nil or empty snapshot
// yields a fresh map titled title.
func FromSnapshot(data *store.MindmapData, title string) (*Map, error) {
	if data == nil || len(data.Nodes) == 0 {
		return New(title, CenterX, CenterY), nil
	}
	m := &Map{index: make(map[string]*Node), Zoom: 1}
	for _, nd := range data.Nodes {
		if _, dup := m.index[nd.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %s", nd.ID)
		}
		m.insert(&Node{
			ID:       nd.ID,
			Text:     nd.Text,
			X:        nd.X,
			Y:        nd.Y,
			Color:    nd.Color,
			ParentID: nd.ParentID,
			Children: nd.Children,
			Level:    nd.Level,
		})
	}
	m.seq = len(m.nodes)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mind map: %w", err)
	}
	return m, nil
}
