// Package podcast is the podcast library and player screen.
package podcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/monitor"
	pc "github.com/abhisek/prepdeck/internal/podcast"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const (
	formID       = "episode"
	tickInterval = time.Second
	volumeStep   = 5
)

// Transcriber writes episode transcripts.
type Transcriber interface {
	Generate(ctx context.Context, ep pc.Episode) (pc.Transcript, error)
}

// SaveFunc persists the library after a change.
type SaveFunc func(*pc.Library) error

// PodcastScreen lists episodes, generates new ones and plays them.
type PodcastScreen struct {
	title   string
	lib     *pc.Library
	gen     Transcriber
	save    SaveFunc
	metrics *monitor.Metrics
	now     func() time.Time

	cursor  components.Cursor
	form    *components.Form
	tickSeq int
	scroll  int
	err     string
}

var _ screen.Screen = (*PodcastScreen)(nil)

// New creates the screen. save and metrics may be nil.
func New(title string, lib *pc.Library, gen Transcriber, save SaveFunc, metrics *monitor.Metrics) *PodcastScreen {
	return &PodcastScreen{
		title:   title,
		lib:     lib,
		gen:     gen,
		save:    save,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *PodcastScreen) Title() string {
	return s.title
}

func (s *PodcastScreen) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the form or the player is open.
func (s *PodcastScreen) CapturingInput() bool {
	return s.form != nil || s.lib.Player != nil
}

func (s *PodcastScreen) generate(ep *pc.Episode) tea.Cmd {
	gen, snapshot := s.gen, *ep
	return func() tea.Msg {
		tr, err := gen.Generate(context.Background(), snapshot)
		return generatedMsg{EpisodeID: snapshot.ID, Transcript: tr, Err: err}
	}
}

func (s *PodcastScreen) tick() tea.Cmd {
	seq := s.tickSeq
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Seq: seq, Time: t}
	})
}

func (s *PodcastScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.metrics.ObserveLLM("podcast", msg.Err == nil)
		if msg.Err != nil {
			s.lib.Fail(msg.EpisodeID, msg.Err)
		} else {
			s.lib.Complete(msg.EpisodeID, msg.Transcript)
		}
		s.persist()
		return s, nil

	case tickMsg:
		p := s.lib.Player
		if p == nil || !p.Playing || msg.Seq != s.tickSeq {
			return s, nil
		}
		p.Advance(tickInterval)
		if !p.Playing {
			return s, nil
		}
		return s, s.tick()

	case components.FormSubmitMsg:
		if msg.ID == formID && s.form != nil {
			return s, s.create()
		}
		return s, nil

	case components.FormCancelMsg:
		s.form = nil
		return s, nil
	}

	if s.form != nil {
		f, cmd := s.form.Update(msg)
		s.form = &f
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.lib.Player != nil {
		return s, s.handlePlayerKey(kmsg)
	}
	return s, s.handleListKey(kmsg)
}

func (s *PodcastScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	eps := s.lib.All()
	if s.cursor.Update(msg, len(eps)) {
		return nil
	}
	var cur *pc.Episode
	if len(eps) > 0 {
		s.cursor.Clamp(len(eps))
		cur = eps[s.cursor.Index]
	}

	switch msg.String() {
	case "n":
		return s.openForm()
	case "enter":
		if cur == nil {
			return nil
		}
		if _, err := s.lib.Open(cur.ID); err != nil {
			s.err = "节目尚未就绪: " + cur.Status.Label()
			return nil
		}
		s.err = ""
		s.scroll = 0
	case "r":
		if cur == nil {
			return nil
		}
		ep, err := s.lib.Retry(cur.ID)
		if err != nil {
			s.err = err.Error()
			return nil
		}
		s.err = ""
		s.persist()
		return s.generate(ep)
	case "d":
		if cur != nil && s.lib.Delete(cur.ID) {
			s.cursor.Clamp(len(s.lib.All()))
			s.persist()
		}
	case "x":
		s.err = ""
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *PodcastScreen) handlePlayerKey(msg tea.KeyMsg) tea.Cmd {
	p := s.lib.Player
	key := msg.String()
	switch key {
	case "space", "p":
		p.Toggle()
		if p.Playing {
			s.tickSeq++
			return s.tick()
		}
	case "left", "h":
		p.SkipBack()
	case "right", "l":
		p.SkipForward()
	case "+", "=":
		p.SetVolume(p.Volume + volumeStep)
	case "-":
		p.SetVolume(p.Volume - volumeStep)
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll++
	case "esc", "q":
		s.lib.Close()
		s.tickSeq++
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			p.Seek(float64(key[0]-'0') * 10)
		}
	}
	return nil
}

func (s *PodcastScreen) openForm() tea.Cmd {
	inputs := []components.TextInput{
		components.NewTextInput("标题", "例如: Redis 持久化", 200),
		components.NewTextInput("描述", "", 0),
		components.NewTextInput("主题", "用逗号分隔", 0),
	}
	inputs[0].Required = true
	labels := make([]string, len(pc.Styles))
	for i, st := range pc.Styles {
		labels[i] = st.Label()
	}
	choices := []components.Choice{components.NewChoice("风格", labels, labels[0])}
	f := components.NewForm(formID, "新建播客", "生成", inputs, choices)
	s.form = &f
	return f.Init()
}

func (s *PodcastScreen) create() tea.Cmd {
	f := s.form
	style := pc.Styles[f.Choices[0].Selected]
	ep, err := s.lib.Create(f.Value(0), f.Value(1), f.Value(2), style, s.now())
	if err != nil {
		f.Err = "标题不能为空"
		return nil
	}
	s.form = nil
	s.cursor.Index = 0
	s.persist()
	return s.generate(ep)
}

func (s *PodcastScreen) persist() {
	if s.save == nil {
		return
	}
	if err := s.save(s.lib); err != nil {
		s.err = err.Error()
	}
}

func (s *PodcastScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case s.form != nil:
		return s.form.View(cw)
	case s.lib.Current() != nil:
		return s.viewPlayer(s.lib.Current(), cw, height)
	}

	var body string
	eps := s.lib.All()
	if len(eps) == 0 {
		body = components.Empty("还没有节目，按 n 生成第一期")
	} else {
		rows := make([]string, len(eps))
		for i, ep := range eps {
			status := theme.Hint.Render(ep.Status.Label())
			switch ep.Status {
			case pc.StatusReady:
				status = theme.Correct.Render(pc.FormatTime(float64(ep.Duration)))
			case pc.StatusError:
				status = theme.Incorrect.Render(ep.Status.Label())
			}
			rows[i] = fmt.Sprintf("%s  %s  %s", ep.Title, status, theme.Hint.Render(ep.Style.Label()))
		}
		body = components.RenderList(rows, s.cursor.Index, height-8)
		if ep := eps[min(s.cursor.Index, len(eps)-1)]; ep.Status == pc.StatusError && ep.Err != "" {
			body += "\n\n" + theme.ErrorText.Render(ep.Err) + "  " + theme.Hint.Render("(r 重试)")
		}
	}
	if s.lib.Generating() {
		body += "\n\n" + theme.Hint.Render("正在生成节目...")
	}
	if line := components.ErrorLine(s.err, "x"); line != "" {
		body += "\n\n" + line
	}
	return components.Panel(s.title, body, cw, true)
}

func (s *PodcastScreen) viewPlayer(ep *pc.Episode, width, height int) string {
	p := s.lib.Player
	state := "▶ 播放"
	if p.Playing {
		state = "❚❚ 暂停"
	}

	var b strings.Builder
	if ep.Description != "" {
		b.WriteString(theme.Body.Render(ep.Description) + "\n")
	}
	fmt.Fprintf(&b, "%s  %s\n\n", theme.Hint.Render("主持: "+strings.Join(ep.Hosts, " & ")), components.Tags(ep.Topics))
	bar := components.NewProgressBar(p.Progress(), pc.FormatTime(p.Position)+" / "+pc.FormatTime(p.Duration), width-8)
	bar.Playhead = true
	b.WriteString(bar.View() + "\n")
	fmt.Fprintf(&b, "%s    %s\n\n", theme.ButtonActive.Render(state), theme.Hint.Render(fmt.Sprintf("音量 %d%%", p.Volume)))

	lines := strings.Split(ep.Transcript, "\n")
	visible := max(height-16, 3)
	s.scroll = min(s.scroll, max(len(lines)-visible, 0))
	end := min(s.scroll+visible, len(lines))
	b.WriteString(theme.Subtitle.Render("文字稿") + "\n")
	b.WriteString(theme.Body.Width(width - 4).Render(strings.Join(lines[s.scroll:end], "\n")))
	return components.Panel(ep.Title, b.String(), width, true)
}

func (s *PodcastScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.form != nil:
		return []layout.KeyHint{{Key: "Tab", Description: "下一项"}, {Key: "Ctrl+S", Description: "生成"}, {Key: "Esc", Description: "取消"}}
	case s.lib.Player != nil:
		return []layout.KeyHint{
			{Key: "Space", Description: "播放/暂停"},
			{Key: "←→", Description: "±15 秒"},
			{Key: "0-9", Description: "跳转"},
			{Key: "+/-", Description: "音量"},
			{Key: "Esc", Description: "关闭"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "播放"},
		{Key: "n", Description: "新建"},
		{Key: "r", Description: "重试"},
		{Key: "d", Description: "删除"},
		{Key: "Esc", Description: "返回"},
	}
}
