// Package home is the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/questionbank"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens/bases"
	"github.com/abhisek/prepdeck/internal/screens/importer"
	"github.com/abhisek/prepdeck/internal/screens/items"
	"github.com/abhisek/prepdeck/internal/screens/placeholder"
	"github.com/abhisek/prepdeck/internal/screens/practice"
	"github.com/abhisek/prepdeck/internal/screens/questions"
	"github.com/abhisek/prepdeck/internal/screens/welcome"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
)

// Deps are the services the menu entries open screens with. A nil Client
// disables the backend entries.
type Deps struct {
	Client           *api.Client
	Bank             *questionbank.Bank
	Bases            *knowledge.Bases
	OpenBase         bases.Opener
	Metrics          *monitor.Metrics
	DefaultProblemID string
	ExportDir        string
	LatestVersion    string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)

const offlineMsg = "未配置后端地址。\n\n使用 --api 或 PREPDECK_API_BASE_URL 指定后端。"

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	push := func(title string, build func() screen.Screen, needsBackend bool) func() tea.Cmd {
		return func() tea.Cmd {
			var s screen.Screen
			if needsBackend && deps.Client == nil {
				s = placeholder.New(title, offlineMsg)
			} else {
				s = build()
			}
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	entries := []components.MenuItem{
		{Label: "算法练习", Action: push("算法练习", func() screen.Screen {
			return practice.New(deps.Client, deps.Metrics, deps.DefaultProblemID)
		}, true)},
		{Label: "导入题目", Action: push("导入题目", func() screen.Screen {
			return importer.New(deps.Client, nil)
		}, true)},
		{Label: "知识条目", Action: push("知识条目", func() screen.Screen {
			return items.New(deps.Client, deps.ExportDir)
		}, true)},
		{Label: "题库", Action: push("题库", func() screen.Screen {
			return questions.New(deps.Bank)
		}, false)},
		{Label: "知识库", Action: push("知识库", func() screen.Screen {
			return bases.New(deps.Bases, deps.OpenBase)
		}, false)},
		{Label: "退出", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menuLabels = make([]string, len(entries))
	for i, e := range entries {
		h.menuLabels[i] = e.Label
	}
	h.menu = components.NewMenu(entries)
	h.refresh()
	return h
}

func (h *HomeScreen) refresh() {
	h.stats = stats{}
	if h.deps.Bank != nil {
		st := h.deps.Bank.Stats()
		h.stats.Questions = st.Total
		h.stats.Hard = st.Hard
	}
	if h.deps.Bases != nil {
		h.stats.Bases = len(h.deps.Bases.All())
	}
	if h.deps.Client != nil {
		h.stats.Backend = h.deps.Client.BaseURL()
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := dashWidth(width)

	var sections []string
	if !compact {
		sections = append(sections, centered(cw, welcome.RenderBanner(cw)))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.deps.Client == nil {
		sections = append(sections, renderBackendBanner(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}
	if h.deps.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.deps.LatestVersion, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "主页"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "进入"},
		{Key: "1-6", Description: "快捷进入"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}
