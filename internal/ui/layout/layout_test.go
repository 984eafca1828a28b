package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFooterDropsMiddleHints(t *testing.T) {
	hints := []KeyHint{
		{Key: "enter", Description: "打开"},
		{Key: "n", Description: "新建条目"},
		{Key: "d", Description: "删除"},
		{Key: "/", Description: "搜索"},
		{Key: "Ctrl+C", Description: "退出"},
	}

	wide := RenderFooter(hints, 120)
	for _, h := range hints {
		if !strings.Contains(wide, h.Description) {
			t.Errorf("wide footer missing %q", h.Description)
		}
	}

	narrow := RenderFooter(hints, 40)
	if !strings.Contains(narrow, "退出") {
		t.Error("narrow footer must keep the last hint")
	}
	if strings.Contains(narrow, "搜索") {
		t.Error("narrow footer should drop hints that do not fit")
	}
}

func TestHeaderTruncatesStatus(t *testing.T) {
	h := RenderHeader("主页", strings.Repeat("x", 200), 80)
	if got := lipgloss.Height(h); got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
	if !strings.Contains(h, "…") {
		t.Error("overlong status should be truncated")
	}
}

func TestContentHeight(t *testing.T) {
	header := RenderHeader("t", "", 80)
	footer := RenderFooter(nil, 80)
	if got := ContentHeight(30, header, footer); got != 30-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight = %d", got)
	}
	if got := ContentHeight(2, header, footer); got != 0 {
		t.Errorf("ContentHeight = %d, want 0", got)
	}
}

func TestTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || IsTooSmall(MinWidth, MinHeight) {
		t.Error("IsTooSmall boundary wrong")
	}
}
