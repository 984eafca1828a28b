package podcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/prepdeck/internal/llm"
)

// DefaultDuration is the length of an episode whose script gives no
// estimate, in seconds.
const DefaultDuration = 1800

// Transcript is the generated content of an episode.
type Transcript struct {
	Text     string
	Duration int // seconds
	AudioURL string
}

// Config holds transcript generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// TranscriptSchema defines the JSON schema for podcast scripts.
var TranscriptSchema = &llm.Schema{
	Name:        "podcast-transcript",
	Description: "A two-host technical podcast script",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"segments": map[string]any{
				"type":        "array",
				"description": "Dialogue lines in speaking order",
				"minItems":    2,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"host": map[string]any{
							"type":        "string",
							"description": "Name of the speaking host",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "What the host says",
						},
					},
					"required":             []any{"host", "text"},
					"additionalProperties": false,
				},
			},
			"estimated_minutes": map[string]any{
				"type":        "integer",
				"description": "Estimated spoken length in minutes",
				"minimum":     1,
				"maximum":     60,
			},
		},
		"required":             []any{"segments", "estimated_minutes"},
		"additionalProperties": false,
	},
}

type transcriptOutput struct {
	Segments []struct {
		Host string `json:"host"`
		Text string `json:"text"`
	} `json:"segments"`
	EstimatedMinutes int `json:"estimated_minutes"`
}

// Generator writes episode transcripts. Without a provider it produces a
// fixed template script.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator returns a generator. provider may be nil.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate writes the transcript of ep.
func (g *Generator) Generate(ctx context.Context, ep Episode) (Transcript, error) {
	if g == nil || g.provider == nil {
		return TemplateTranscript(ep), nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePodcast)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(ep)},
		},
		Schema:      TranscriptSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Transcript{}, fmt.Errorf("podcast generation: %w", err)
	}

	var out transcriptOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Transcript{}, fmt.Errorf("parse podcast response: %w", err)
	}
	if len(out.Segments) == 0 {
		return Transcript{}, fmt.Errorf("parse podcast response: empty script")
	}

	var b strings.Builder
	for i, seg := range out.Segments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s: %s", speaker(ep.Hosts, seg.Host), strings.TrimSpace(seg.Text))
	}
	duration := out.EstimatedMinutes * 60
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Transcript{Text: b.String(), Duration: duration}, nil
}

// speaker maps a host name to its "主持人A"/"主持人B" label. Unknown names
// are kept as they are.
func speaker(hosts []string, name string) string {
	for i, h := range hosts {
		if strings.EqualFold(h, name) {
			return "主持人" + string(rune('A'+i))
		}
	}
	return name
}

const systemPrompt = `You write scripts for a Chinese-language technical podcast that helps engineers prepare for interviews.
Two hosts talk to each other. Keep each line short and conversational, explain concepts with concrete examples,
and end with a short recap. Respond only with the requested JSON.`

func buildUserMessage(ep Episode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", ep.Title)
	if ep.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", ep.Description)
	}
	if len(ep.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(ep.Topics, ", "))
	}
	fmt.Fprintf(&b, "Hosts: %s\n", strings.Join(ep.Hosts, " and "))
	fmt.Fprintf(&b, "Style: %s (%s)\n", ep.Style, ep.Style.Description())
	return b.String()
}

// TemplateTranscript returns the placeholder script used when no language
// model is configured.
func TemplateTranscript(ep Episode) Transcript {
	lines := []string{
		fmt.Sprintf("主持人A: 欢迎收听今天关于\"%s\"的播客。", ep.Title),
		fmt.Sprintf("主持人B: 今天我们要深入探讨%s等话题。", strings.Join(ep.Topics, "、")),
		fmt.Sprintf("主持人A: %s", ep.Description),
		"主持人B: 这确实是一个很有趣的话题。让我们从基础概念开始讲起...",
		"[AI生成的播客内容会在这里展开，包含详细的对话和讨论]",
		"主持人A: 总结一下今天的内容，我们讨论了很多实用的知识点。",
		"主持人B: 希望对大家有所帮助。感谢收听！",
	}
	return Transcript{Text: strings.Join(lines, "\n\n"), Duration: DefaultDuration}
}
