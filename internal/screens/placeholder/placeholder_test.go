package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/router"
)

func TestNoticeShowsMessageAndPops(t *testing.T) {
	p := New("题目练习", "未配置后端地址")
	if v := p.View(60, 10); !strings.Contains(v, "未配置后端地址") {
		t.Errorf("view missing message: %q", v)
	}

	_, cmd := p.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if cmd != nil {
		t.Error("unrelated keys should be ignored")
	}
	_, cmd = p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("got %T", cmd())
	}
}
