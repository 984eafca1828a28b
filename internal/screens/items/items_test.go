package items

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/ui/components"
)

type fakeBackend struct {
	items   []api.KnowledgeItem
	listErr error
	created []api.QuestionInput
	deleted []string
}

func (f *fakeBackend) ListItems(context.Context, api.ItemQuery) ([]api.KnowledgeItem, error) {
	return f.items, f.listErr
}

func (f *fakeBackend) CreateAndGenerate(_ context.Context, in api.QuestionInput) (*api.KnowledgeItem, error) {
	f.created = append(f.created, in)
	return &api.KnowledgeItem{ID: "new", Question: api.Question{Text: in.Text, Tags: in.Tags, Difficulty: in.Difficulty}}, nil
}

func (f *fakeBackend) DeleteItem(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleItems() []api.KnowledgeItem {
	return []api.KnowledgeItem{
		{
			ID:        "a",
			Question:  api.Question{Text: "Redis 为什么快", Tags: []string{"redis"}, Difficulty: api.DifficultyMedium},
			Flashcard: api.Flashcard{Answer: "单线程 + IO 多路复用", Pitfalls: []string{"不是纯内存就快"}},
			Mindmap: map[string]any{
				"text":     "Redis",
				"children": []any{map[string]any{"text": "内存"}},
			},
		},
		{
			ID:       "b",
			Question: api.Question{Text: "TCP 三次握手", Tags: []string{"network"}, Difficulty: api.DifficultyEasy},
		},
	}
}

// loaded returns a screen with the backend items already fetched.
func loaded(t *testing.T, b *fakeBackend) *ItemsScreen {
	t.Helper()
	s := New(b, t.TempDir())
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	return s
}

func TestLoadAndFilter(t *testing.T) {
	s := loaded(t, &fakeBackend{items: sampleItems()})
	assert.Equal(t, 2, s.items.Len())
	assert.Contains(t, s.View(100, 30), "共 2 条")

	s.Update(keyPress('/'))
	assert.True(t, s.CapturingInput())
	for _, r := range "tcp" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))
	require.Len(t, s.visible(), 1)
	assert.Equal(t, "b", s.visible()[0].ID)

	// First esc clears the filter, the second pops.
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd)
	assert.Len(t, s.visible(), 2)
	_, cmd = s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestLoadError(t *testing.T) {
	s := loaded(t, &fakeBackend{listErr: errors.New("connection refused")})
	assert.Equal(t, "connection refused", s.items.Err)
	assert.Contains(t, s.View(100, 30), "connection refused")

	s.Update(keyPress('x'))
	assert.Empty(t, s.items.Err)
}

func TestCreate(t *testing.T) {
	b := &fakeBackend{}
	s := loaded(t, b)

	s.Update(keyPress('n'))
	require.NotNil(t, s.form)

	// Blank question is rejected without a request.
	_, cmd := s.Update(components.FormSubmitMsg{ID: formID})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.form.Err)

	s.form.Inputs[0].SetValue("什么是 CAP")
	s.form.Inputs[1].SetValue("分布式, 理论 ,")
	_, cmd = s.Update(components.FormSubmitMsg{ID: formID})
	require.NotNil(t, cmd)
	assert.Nil(t, s.form)
	assert.True(t, s.generating)

	s.Update(cmd())
	assert.False(t, s.generating)
	require.Len(t, b.created, 1)
	assert.Equal(t, api.QuestionInput{Text: "什么是 CAP", Tags: []string{"分布式", "理论"}, Difficulty: api.DifficultyMedium}, b.created[0])
	require.Equal(t, 1, s.items.Len())
	assert.Equal(t, "new", s.items.All()[0].ID)
}

func TestDetailAndDelete(t *testing.T) {
	b := &fakeBackend{items: sampleItems()}
	s := loaded(t, b)

	s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, s.items.Current())
	view := s.View(100, 40)
	assert.Contains(t, view, "单线程")
	assert.Contains(t, view, "不是纯内存就快")

	_, cmd := s.Update(keyPress('d'))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Equal(t, []string{"a"}, b.deleted)
	assert.Nil(t, s.items.Current())
	assert.Equal(t, 1, s.items.Len())
	assert.False(t, s.CapturingInput())
}

func TestOpenMindmap(t *testing.T) {
	s := loaded(t, &fakeBackend{items: sampleItems()})

	_, cmd := s.Update(keyPress('m'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(push.Screen.Title(), "Redis"))

	// Items without a map report an error instead.
	s.cursor.Index = 1
	_, cmd = s.Update(keyPress('m'))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.items.Err)
}
