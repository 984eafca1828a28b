// Package mindmap is the mind map editor screen.
package mindmap

import (
	"fmt"
	"math"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	mm "github.com/abhisek/prepdeck/internal/mindmap"
	"github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// NudgeStep is how far shift+arrow moves a node on the canvas.
const NudgeStep = 10.0

// Canvas units per terminal cell at zoom 1.
const (
	unitsPerCol = 10.0
	unitsPerRow = 25.0
)

// SaveFunc persists the map after an edit.
type SaveFunc func(*mm.Map) error

type viewMode int

const (
	modeTree viewMode = iota
	modeCanvas
)

// MindmapScreen edits one mind map.
type MindmapScreen struct {
	title     string
	m         *mm.Map
	save      SaveFunc
	exportDir string

	mode     viewMode
	renaming bool
	rename   components.TextInput
	moving   string // node being reparented
	target   string
	status   string
	err      string
}

var _ screen.Screen = (*MindmapScreen)(nil)

// New creates the editor. save may be nil for a throwaway map; exportDir
// empty disables outline export.
func New(title string, m *mm.Map, save SaveFunc, exportDir string) *MindmapScreen {
	s := &MindmapScreen{
		title:     title,
		m:         m,
		save:      save,
		exportDir: exportDir,
		rename:    components.NewTextInput("节点名称", mm.DefaultNodeText, 80),
	}
	if m.Selected == "" {
		m.Select(mm.RootID)
	}
	return s
}

func (s *MindmapScreen) Title() string {
	return s.title
}

func (s *MindmapScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether a rename or reparent is in progress.
func (s *MindmapScreen) CapturingInput() bool {
	return s.renaming || s.moving != ""
}

// order returns the node ids depth first from the root.
func (s *MindmapScreen) order() []string {
	var out []string
	var walk func(id string)
	walk = func(id string) {
		n := s.m.Get(id)
		if n == nil {
			return
		}
		out = append(out, id)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(mm.RootID)
	return out
}

func (s *MindmapScreen) current() *mm.Node {
	if n := s.m.Get(s.m.Selected); n != nil {
		return n
	}
	return s.m.Root()
}

func (s *MindmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.renaming {
			var cmd tea.Cmd
			s.rename, cmd = s.rename.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch {
	case s.renaming:
		return s, s.updateRename(kmsg)
	case s.moving != "":
		s.updateMove(kmsg)
		return s, nil
	}

	cur := s.current()
	switch kmsg.String() {
	case "up", "k":
		s.step(-1)
	case "down", "j":
		s.step(1)
	case "left", "h":
		if cur.ParentID != "" {
			s.m.Select(cur.ParentID)
		}
	case "right", "l":
		if len(cur.Children) > 0 {
			s.m.Select(cur.Children[0])
		}
	case "a", "tab":
		n, err := s.m.AddChild(cur.ID, "")
		if s.apply(err) {
			s.m.Select(n.ID)
			return s, s.startRename(n)
		}
	case "r", "enter":
		return s, s.startRename(cur)
	case "d", "delete":
		parent := cur.ParentID
		if s.apply(s.m.Delete(cur.ID)) {
			s.m.Select(parent)
		}
	case "p":
		if cur.ID == mm.RootID {
			s.err = mm.ErrRootNode.Error()
			break
		}
		s.moving, s.target = cur.ID, cur.ParentID
	case "shift+up":
		s.apply(s.m.Nudge(cur.ID, 0, -NudgeStep))
	case "shift+down":
		s.apply(s.m.Nudge(cur.ID, 0, NudgeStep))
	case "shift+left":
		s.apply(s.m.Nudge(cur.ID, -NudgeStep, 0))
	case "shift+right":
		s.apply(s.m.Nudge(cur.ID, NudgeStep, 0))
	case "+", "=":
		s.m.ZoomIn()
	case "-":
		s.m.ZoomOut()
	case "c":
		if s.mode == modeTree {
			s.mode = modeCanvas
		} else {
			s.mode = modeTree
		}
	case "o":
		s.export()
	case "x":
		s.err = ""
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *MindmapScreen) step(delta int) {
	ids := s.order()
	i := slices.Index(ids, s.current().ID)
	i = min(max(i+delta, 0), len(ids)-1)
	s.m.Select(ids[i])
}

func (s *MindmapScreen) startRename(n *mm.Node) tea.Cmd {
	s.renaming = true
	s.rename.SetValue(n.Text)
	return s.rename.Focus()
}

func (s *MindmapScreen) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.renaming = false
		s.rename.Blur()
		return nil
	case "enter":
		if s.apply(s.m.Rename(s.current().ID, s.rename.Value())) {
			s.renaming = false
			s.rename.Blur()
		}
		return nil
	}
	var cmd tea.Cmd
	s.rename, cmd = s.rename.Update(msg)
	return cmd
}

func (s *MindmapScreen) updateMove(msg tea.KeyMsg) {
	ids := s.order()
	i := slices.Index(ids, s.target)
	switch msg.String() {
	case "up", "k":
		s.target = ids[max(i-1, 0)]
	case "down", "j":
		s.target = ids[min(i+1, len(ids)-1)]
	case "esc":
		s.moving, s.target = "", ""
	case "enter":
		if s.apply(s.m.Reparent(s.moving, s.target)) {
			s.moving, s.target = "", ""
		}
	}
}

// apply records err, or persists the map after a successful edit. It
// reports whether the edit succeeded.
func (s *MindmapScreen) apply(err error) bool {
	if err != nil {
		s.err = err.Error()
		return false
	}
	s.err = ""
	if s.save != nil {
		if err := s.save(s.m); err != nil {
			s.err = err.Error()
		}
	}
	return true
}

func (s *MindmapScreen) export() {
	if s.exportDir == "" {
		s.err = "未配置导出目录"
		return
	}
	n := &notes.Note{Title: s.m.Root().Text + " 思维导图", Content: s.m.Outline()}
	path, err := notes.Export(n, s.exportDir)
	if err != nil {
		s.err = err.Error()
		return
	}
	s.status = "已导出 " + path
}

func (s *MindmapScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if s.mode == modeCanvas {
		body = s.viewCanvas(cw-4, max(height-8, 5))
	} else {
		body = s.viewTree(max(height-8, 5))
	}

	cur := s.current()
	info := theme.Hint.Render(fmt.Sprintf("%d 个节点 · 选中 %s · 层级 %d · 位置 (%.0f, %.0f) · 缩放 %d%%",
		s.m.Len(), mm.Label(cur.Text), cur.Level, cur.X, cur.Y, int(math.Round(s.m.Zoom*100))))
	body += "\n\n" + info
	switch {
	case s.renaming:
		body += "\n" + s.rename.View()
	case s.moving != "":
		body += "\n" + theme.Subtitle.Render("移动 "+s.m.Get(s.moving).Text+" 到: "+s.m.Get(s.target).Text)
	}
	if s.status != "" {
		body += "\n" + theme.Hint.Render(s.status)
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n" + line
	}
	return components.Panel(s.title, body, cw, true)
}

func (s *MindmapScreen) viewTree(height int) string {
	ids := s.order()
	rows := make([]string, len(ids))
	selected := 0
	for i, id := range ids {
		n := s.m.Get(id)
		prefix := ""
		if n.Level > 0 {
			prefix = strings.Repeat("  ", n.Level-1) + connector(s.m, n)
		}
		text := lipgloss.NewStyle().Foreground(theme.Named(n.Color)).Render("● ") + n.Text
		if id == s.target && s.moving != "" {
			text += theme.Selected.Render("  ← 新父节点")
		}
		rows[i] = theme.Hint.Render(prefix) + text
		if id == s.current().ID {
			selected = i
		}
	}
	return components.RenderList(rows, selected, height)
}

func connector(m *mm.Map, n *mm.Node) string {
	p := m.Get(n.ParentID)
	if p != nil && len(p.Children) > 0 && p.Children[len(p.Children)-1] == n.ID {
		return "└─ "
	}
	return "├─ "
}

// viewCanvas places every node label on a width x height grid centred on
// the root and scaled by the zoom.
func (s *MindmapScreen) viewCanvas(width, height int) string {
	root := s.m.Root()
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", width)+"\n", height), "\n")
	layers := []*lipgloss.Layer{lipgloss.NewLayer(bg)}

	for _, n := range s.m.Nodes() {
		label := mm.Label(n.Text)
		style := lipgloss.NewStyle().Foreground(theme.Named(n.Color))
		z := 1
		if n.ID == s.current().ID {
			style = style.Reverse(true).Bold(true)
			z = 2
		}
		label = style.Render(label)
		col := width/2 + int(math.Round((n.X-root.X)*s.m.Zoom/unitsPerCol)) - lipgloss.Width(label)/2
		row := height/2 + int(math.Round((n.Y-root.Y)*s.m.Zoom/unitsPerRow))
		if row < 0 || row >= height || col < 0 || col+lipgloss.Width(label) > width {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(label).X(col).Y(row).Z(z).ID(n.ID))
	}
	return lipgloss.NewCanvas(layers...).Render()
}

func (s *MindmapScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.renaming:
		return []layout.KeyHint{{Key: "Enter", Description: "确定"}, {Key: "Esc", Description: "取消"}}
	case s.moving != "":
		return []layout.KeyHint{{Key: "↑↓", Description: "选择父节点"}, {Key: "Enter", Description: "移动"}, {Key: "Esc", Description: "取消"}}
	}
	return []layout.KeyHint{
		{Key: "a", Description: "添加子节点"},
		{Key: "r", Description: "重命名"},
		{Key: "d", Description: "删除"},
		{Key: "p", Description: "移动"},
		{Key: "Shift+方向", Description: "微调位置"},
		{Key: "+/-", Description: "缩放"},
		{Key: "c", Description: "画布"},
		{Key: "o", Description: "导出大纲"},
		{Key: "Esc", Description: "返回"},
	}
}
