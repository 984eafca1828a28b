// Package app wires the screen stack into the root Bubble Tea model.
package app

import (
	"fmt"
	"net/url"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/questionbank"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens/home"
	podcastscreen "github.com/abhisek/prepdeck/internal/screens/podcast"
	"github.com/abhisek/prepdeck/internal/screens/welcome"
	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/ui/layout"
)

// Options are the services the screens run on.
type Options struct {
	// Client is nil when no backend is configured.
	Client      *api.Client
	Bank        *questionbank.Bank
	Bases       *knowledge.Bases
	Workspaces  store.WorkspaceRepo
	Transcriber podcastscreen.Transcriber
	Metrics     *monitor.Metrics
	Renderer    *notes.Renderer

	DefaultProblemID string
	ExportDir        string
	LatestVersion    string

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates the model with the welcome screen leading to home.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(home.Deps{
			Client:           opts.Client,
			Bank:             opts.Bank,
			Bases:            opts.Bases,
			OpenBase:         opts.openBase,
			Metrics:          opts.Metrics,
			DefaultProblemID: opts.DefaultProblemID,
			ExportDir:        opts.ExportDir,
			LatestVersion:    opts.LatestVersion,
		})
	}
	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}
	return AppModel{
		router: router.New(first),
		status: backendStatus(opts.Client),
	}
}

// backendStatus is the header label of the configured backend.
func backendStatus(c *api.Client) string {
	if c == nil {
		return "离线"
	}
	u, err := url.Parse(c.BaseURL())
	if err != nil || u.Host == "" {
		return c.BaseURL()
	}
	return u.Host
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// capturing reports whether the active screen wants every key.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "返回"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "退出"})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height, header, footer))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	log.Info().Str("backend", backendStatus(opts.Client)).Msg("starting tui")
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
