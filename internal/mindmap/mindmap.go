// Package mindmap is an editable mind map stored as an adjacency list.
//
// Every node except the root names its parent, and every parent lists its
// children. Validate checks that both directions agree and that the map is a
// single tree rooted at RootID.
package mindmap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// RootID is the id of the root node.
const RootID = "root"

// Layout constants for new children.
const (
	ChildDistance = 150.0
	childSpread   = 60.0
	childOffset   = -30.0
)

// Zoom bounds.
const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1
)

// DefaultNodeText is the label of a freshly added node.
const DefaultNodeText = "新节点"

// Colors are assigned to children by the level of their parent.
var Colors = []string{"blue", "green", "orange", "purple", "pink", "indigo", "red", "yellow"}

var (
	ErrNotFound = errors.New("node not found")
	ErrRootNode = errors.New("operation not allowed on the root node")
	ErrCycle    = errors.New("node cannot become a descendant of itself")
)

// Node is one mind map node.
type Node struct {
	ID       string
	Text     string
	X, Y     float64
	Color    string
	ParentID string // "" for the root
	Children []string
	Level    int
}

// Map is a mind map plus its editing state.
type Map struct {
	nodes []*Node
	index map[string]*Node
	seq   int

	Selected string
	Zoom     float64
}

// New returns a map holding only the root, labelled title and centred on
// (x, y).
func New(title string, x, y float64) *Map {
	m := &Map{index: make(map[string]*Node), Zoom: 1}
	m.insert(&Node{ID: RootID, Text: title, X: x, Y: y, Color: Colors[0]})
	return m
}

func (m *Map) insert(n *Node) {
	m.nodes = append(m.nodes, n)
	m.index[n.ID] = n
}

// Nodes returns the nodes in insertion order.
func (m *Map) Nodes() []*Node {
	return m.nodes
}

// Len returns the number of nodes.
func (m *Map) Len() int {
	return len(m.nodes)
}

// Get returns the node with id, or nil.
func (m *Map) Get(id string) *Node {
	return m.index[id]
}

// Root returns the root node.
func (m *Map) Root() *Node {
	return m.index[RootID]
}

func (m *Map) nextID(parentID string) string {
	for {
		m.seq++
		id := parentID + "-" + strconv.Itoa(m.seq)
		if _, taken := m.index[id]; !taken {
			return id
		}
	}
}

// AddChild appends a child to parentID. Children fan out from the parent at
// 60° steps starting at -30°, ChildDistance away.
func (m *Map) AddChild(parentID, text string) (*Node, error) {
	parent := m.index[parentID]
	if parent == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, parentID)
	}
	if text == "" {
		text = DefaultNodeText
	}
	x, y := ChildPosition(parent.X, parent.Y, len(parent.Children))
	n := &Node{
		ID:       m.nextID(parentID),
		Text:     text,
		X:        x,
		Y:        y,
		Color:    Colors[parent.Level%len(Colors)],
		ParentID: parentID,
		Level:    parent.Level + 1,
	}
	m.insert(n)
	parent.Children = append(parent.Children, n.ID)
	return n, nil
}

// ChildPosition returns where the child number index of a parent at
// (px, py) is placed.
func ChildPosition(px, py float64, index int) (float64, float64) {
	angle := (float64(index)*childSpread + childOffset) * math.Pi / 180
	return px + math.Cos(angle)*ChildDistance, py + math.Sin(angle)*ChildDistance
}

// Delete removes id and all of its descendants. Deleting the root is a
// no-op that returns ErrRootNode.
func (m *Map) Delete(id string) error {
	if id == RootID {
		return ErrRootNode
	}
	n := m.index[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	doomed := map[string]bool{}
	for _, d := range m.subtree(id) {
		doomed[d] = true
		delete(m.index, d)
	}
	m.nodes = slices.DeleteFunc(m.nodes, func(x *Node) bool { return doomed[x.ID] })
	if p := m.index[n.ParentID]; p != nil {
		p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == id })
	}
	if doomed[m.Selected] {
		m.Selected = ""
	}
	return nil
}

// subtree returns id followed by all of its descendants, depth first.
func (m *Map) subtree(id string) []string {
	out := []string{id}
	n := m.index[id]
	if n == nil {
		return out
	}
	for _, c := range n.Children {
		out = append(out, m.subtree(c)...)
	}
	return out
}

// IsDescendant reports whether id lies below ancestor.
func (m *Map) IsDescendant(id, ancestor string) bool {
	seen := map[string]bool{}
	for n := m.index[id]; n != nil && n.ParentID != ""; n = m.index[n.ParentID] {
		if n.ParentID == ancestor {
			return true
		}
		if seen[n.ID] {
			return false
		}
		seen[n.ID] = true
	}
	return false
}

// Rename sets the text of id. Blank text is rejected.
func (m *Map) Rename(id, text string) error {
	n := m.index[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("node text is required")
	}
	n.Text = text
	return nil
}

// Move places id at (x, y).
func (m *Map) Move(id string, x, y float64) error {
	n := m.index[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n.X, n.Y = x, y
	return nil
}

// Nudge shifts id by (dx, dy).
func (m *Map) Nudge(id string, dx, dy float64) error {
	n := m.index[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.Move(id, n.X+dx, n.Y+dy)
}

// Reparent moves id under newParent. The root cannot move and a node cannot
// move below itself.
func (m *Map) Reparent(id, newParent string) error {
	if id == RootID {
		return ErrRootNode
	}
	n := m.index[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	np := m.index[newParent]
	if np == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, newParent)
	}
	if newParent == id || m.IsDescendant(newParent, id) {
		return ErrCycle
	}
	if n.ParentID == newParent {
		return nil
	}
	if old := m.index[n.ParentID]; old != nil {
		old.Children = slices.DeleteFunc(old.Children, func(c string) bool { return c == id })
	}
	np.Children = append(np.Children, id)
	n.ParentID = newParent
	n.Color = Colors[np.Level%len(Colors)]
	m.relevel(n, np.Level+1)
	return nil
}

func (m *Map) relevel(n *Node, level int) {
	n.Level = level
	for _, c := range n.Children {
		if child := m.index[c]; child != nil {
			m.relevel(child, level+1)
		}
	}
}

// Select marks id as the selected node. Unknown ids clear the selection.
func (m *Map) Select(id string) {
	if m.index[id] == nil {
		id = ""
	}
	m.Selected = id
}

// ZoomIn and ZoomOut step the zoom within [MinZoom, MaxZoom].
func (m *Map) ZoomIn() {
	m.Zoom = math.Min(MaxZoom, round1(m.Zoom+ZoomStep))
}

func (m *Map) ZoomOut() {
	m.Zoom = math.Max(MinZoom, round1(m.Zoom-ZoomStep))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Label shortens text to eight characters for display.
func Label(text string) string {
	r := []rune(text)
	if len(r) > 8 {
		return string(r[:8]) + "..."
	}
	return text
}

// Validate checks the adjacency list: exactly one root, every referenced id
// exists, parent and child links agree, levels increase by one and every
// node is reachable from the root.
func (m *Map) Validate() error {
	var errs []error
	root := m.index[RootID]
	if root == nil {
		return errors.New("missing root node")
	}
	if root.ParentID != "" {
		errs = append(errs, errors.New("root node has a parent"))
	}
	for _, n := range m.nodes {
		if n.ID != RootID && n.ParentID == "" {
			errs = append(errs, fmt.Errorf("node %s has no parent", n.ID))
		}
		if n.ParentID != "" {
			p := m.index[n.ParentID]
			switch {
			case p == nil:
				errs = append(errs, fmt.Errorf("node %s: unknown parent %s", n.ID, n.ParentID))
			case !slices.Contains(p.Children, n.ID):
				errs = append(errs, fmt.Errorf("node %s: not listed by parent %s", n.ID, n.ParentID))
			case n.Level != p.Level+1:
				errs = append(errs, fmt.Errorf("node %s: level %d under level %d", n.ID, n.Level, p.Level))
			}
		}
		for _, c := range n.Children {
			child := m.index[c]
			if child == nil {
				errs = append(errs, fmt.Errorf("node %s: unknown child %s", n.ID, c))
			} else if child.ParentID != n.ID {
				errs = append(errs, fmt.Errorf("node %s: child %s names parent %q", n.ID, c, child.ParentID))
			}
		}
	}

	seen := map[string]bool{}
	var walk func(id string) error
	walk = func(id string) error {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrCycle, id)
		}
		seen[id] = true
		n := m.index[id]
		if n == nil {
			return nil
		}
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(RootID); err != nil {
		errs = append(errs, err)
	}
	for _, n := range m.nodes {
		if !seen[n.ID] {
			errs = append(errs, fmt.Errorf("node %s is unreachable from the root", n.ID))
		}
	}
	return errors.Join(errs...)
}

// Outline renders the map as a nested markdown list.
func (m *Map) Outline() string {
	var b strings.Builder
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		n := m.index[id]
		if n == nil {
			return
		}
		if depth == 0 {
			fmt.Fprintf(&b, "# %s\n\n", n.Text)
		} else {
			fmt.Fprintf(&b, "%s- %s\n", strings.Repeat("  ", depth-1), n.Text)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(RootID, 0)
	return b.String()
}
