package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	prac "github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const listWidth = 32

func (s *PracticeScreen) View(width, height int) string {
	left := s.viewList(listWidth, height)
	rightWidth := width - listWidth - 1
	if rightWidth < 30 {
		rightWidth = 30
	}
	right := s.viewWorkbench(rightWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (s *PracticeScreen) viewList(width, height int) string {
	var body string
	switch {
	case s.listErr != "":
		body = components.ErrorLine(s.listErr, "x")
	case s.listLoading && len(s.session.Problems) == 0:
		body = theme.Hint.Render("加载题目中...")
	case len(s.session.Problems) == 0:
		body = components.Empty("暂无题目，按 i 导入")
	default:
		rows := make([]string, len(s.session.Problems))
		for i, p := range s.session.Problems {
			title := p.Title
			if p.ID == s.session.SelectedID {
				title = theme.Selected.Render(title)
			}
			rows[i] = components.Badge(p.Difficulty) + " " + title
		}
		body = components.RenderList(rows, s.cursor.Index, height-4)
	}
	return components.Panel("题目列表", body, width, s.focus == focusList)
}

func (s *PracticeScreen) viewWorkbench(width, height int) string {
	var sections []string
	sections = append(sections, s.viewProblem(width))

	editorHeight := max(height/3, 6)
	s.editor.SetWidth(width - 4)
	s.editor.SetHeight(editorHeight)
	header := fmt.Sprintf("代码 · %s", prac.LanguageLabel(s.session.Language))
	if len(s.session.SupportedLanguages()) > 1 {
		header += theme.Hint.Render("  (l 切换语言)")
	}
	sections = append(sections, components.Panel(header, s.editor.View(), width, s.focus == focusEditor))

	s.input.SetWidth(width - 4)
	s.input.SetHeight(3)
	sections = append(sections, components.Panel("自定义输入", s.input.View(), width, s.focus == focusInput))

	if line := components.ErrorLine(s.session.RunError, "x"); line != "" {
		sections = append(sections, line)
	}
	if s.session.Busy() {
		sections = append(sections, theme.Hint.Render(busyLabel(s.session.Phase)))
	}
	if s.session.SolutionLoading() {
		sections = append(sections, theme.Hint.Render("加载解答中..."))
	}
	if s.session.EditorialLoading() {
		sections = append(sections, theme.Hint.Render("加载讲解中..."))
	}
	if !s.session.Result.Empty() {
		sections = append(sections, s.viewResult(width))
	}
	if s.session.SolutionVisible {
		sections = append(sections, s.viewSolution(width))
	}
	if s.session.EditorialVisible || s.session.EditorialError != "" {
		sections = append(sections, s.viewEditorial(width))
	}
	return strings.Join(sections, "\n")
}

func busyLabel(p prac.Phase) string {
	if p == prac.PhaseSubmitting {
		return "提交中..."
	}
	return "运行中..."
}

func (s *PracticeScreen) viewProblem(width int) string {
	p := s.session.Problem
	if p == nil {
		if s.session.LoadError != "" {
			return components.Panel("题目", components.ErrorLine(s.session.LoadError, ""), width, false)
		}
		return components.Panel("题目", theme.Hint.Render("选择一道题目开始练习"), width, false)
	}

	var b strings.Builder
	b.WriteString(components.Badge(p.Difficulty) + " " + theme.Body.Render(prac.DifficultyBadge(p.Difficulty)))
	if tags := components.Tags(p.Tags); tags != "" {
		b.WriteString("  " + tags)
	}
	if p.Description != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Width(width-4).Render(p.Description))
	}
	for i, tc := range p.TestCases {
		fmt.Fprintf(&b, "\n\n%s\n%s\n%s",
			theme.Subtitle.Render(fmt.Sprintf("样例 %d", i+1)),
			"输入: "+oneLine(tc.Input),
			"输出: "+oneLine(tc.ExpectedOutput))
	}
	return components.Panel(p.Title, b.String(), width, false)
}

func (s *PracticeScreen) viewResult(width int) string {
	r := s.session.Result
	var b strings.Builder

	status := r.Status
	if badge := s.session.Overall(); badge != "" {
		style := theme.Correct
		if badge == prac.BadgeFailed {
			style = theme.Incorrect
		}
		status = style.Render(badge) + fmt.Sprintf("  %d/%d", prac.PassedCount(r.Rows), len(r.Rows))
		if r.Correlated < len(r.Rows) {
			status += theme.Hint.Render(fmt.Sprintf("  %d/%d 个用例有输入", r.Correlated, len(r.Rows)))
		}
	}
	b.WriteString(status)
	if r.ExecutionTime != "" || r.Memory != "" {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  时间 %s  内存 %s", r.ExecutionTime, r.Memory)))
	}

	for i, row := range r.Rows {
		mark := theme.Correct.Render("✓")
		if !row.Passed {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(&b, "\n%s 用例 %d", mark, i+1)
		if row.Input != "" {
			b.WriteString("  输入: " + oneLine(row.Input))
		}
		if !row.Passed {
			fmt.Fprintf(&b, "\n    期望: %s\n    实际: %s", oneLine(row.Expected), oneLine(row.Actual))
		}
	}
	if r.Stdout != "" {
		b.WriteString("\n\n" + theme.Subtitle.Render("stdout") + "\n" + r.Stdout)
	}
	if r.Stderr != "" {
		b.WriteString("\n\n" + theme.Subtitle.Render("stderr") + "\n" + theme.ErrorText.Render(r.Stderr))
	}
	return components.Panel("运行结果", b.String(), width, false)
}

func (s *PracticeScreen) viewSolution(width int) string {
	sol := s.session.Solution()
	if sol == nil {
		return ""
	}
	body := theme.Code.Render(sol.Code)
	if sol.Explanation != "" {
		body += "\n\n" + sol.Explanation
	}
	return components.Panel("参考题解 · "+prac.LanguageLabel(sol.Language), body, width, false)
}

func (s *PracticeScreen) viewEditorial(width int) string {
	if s.session.EditorialError != "" {
		return components.Panel("讲解", components.ErrorLine(s.session.EditorialError, "x"), width, false)
	}
	text := s.session.Editorial
	if strings.TrimSpace(text) == "" {
		text = theme.Hint.Render("暂无讲解")
	}
	return components.Panel("讲解", lipgloss.NewStyle().Width(width-4).Render(text), width, false)
}

// oneLine collapses multi-line test data for the compact case rows.
func oneLine(s string) string {
	s = strings.TrimRight(s, "\n")
	return strings.ReplaceAll(s, "\n", " ⏎ ")
}
