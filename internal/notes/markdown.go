package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Snippet is a markdown toolbar action. Syntax either wraps the selection
// or, when it contains "{}", has the selection substituted for it.
type Snippet struct {
	Name        string
	Syntax      string
	Placeholder string
}

// Toolbar lists the editor snippets.
var Toolbar = []Snippet{
	{"粗体", "**", "粗体文本"},
	{"斜体", "*", "斜体文本"},
	{"链接", "[链接文本]({})", "https://example.com"},
	{"无序列表", "- {}", "列表项"},
	{"有序列表", "1. {}", "列表项"},
	{"引用", "> {}", "引用文本"},
	{"行内代码", "`", "代码"},
	{"图片", "![图片描述]({})", "图片链接"},
}

// Insert applies s to content[start:end] (byte offsets) and returns the new
// content and the cursor position after the insertion. The placeholder is
// used when the selection is empty.
func (s Snippet) Insert(content string, start, end int) (string, int) {
	start = max(0, min(start, len(content)))
	end = max(start, min(end, len(content)))
	sel := content[start:end]
	if sel == "" {
		sel = s.Placeholder
	}
	var text string
	if strings.Contains(s.Syntax, "{}") {
		text = strings.Replace(s.Syntax, "{}", sel, 1)
	} else {
		text = s.Syntax + sel + s.Syntax
	}
	return content[:start] + text + content[end:], start + len(text)
}

// Renderer renders notes for the terminal. Renderers are cached per wrap
// width.
type Renderer struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewRenderer returns a renderer using a glamour style name ("dark",
// "light", "notty"). An empty style picks one from the terminal.
func NewRenderer(style string) *Renderer {
	return &Renderer{style: style, cache: make(map[int]*glamour.TermRenderer)}
}

func (r *Renderer) term(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.cache[width]; ok {
		return tr, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(r.style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	r.cache[width] = tr
	return tr, nil
}

// Render renders markdown wrapped at width. On failure the raw markdown is
// returned.
func (r *Renderer) Render(markdown string, width int) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = markdown
		}
	}()
	if markdown == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	tr, err := r.term(width)
	if err != nil {
		return markdown
	}
	rendered, err := tr.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|\s]+`)

// FileName returns the export file name of a note.
func FileName(n *Note) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(n.Title, "-"), "-.")
	if name == "" {
		name = n.ID
	}
	return name + ".md"
}

// Export writes the note to dir and returns the written path.
func Export(n *Note, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(n))
	if err := os.WriteFile(path, []byte(n.Content), 0o644); err != nil {
		return "", fmt.Errorf("export note: %w", err)
	}
	return path, nil
}
