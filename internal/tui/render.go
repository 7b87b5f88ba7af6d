package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
)

var kindTitles = map[question.Kind]string{
	question.KindMultipleChoice: "Multiple Choice",
	question.KindHotspot:        "Hotspot",
	question.KindDragDrop:       "Drag & Drop",
}

type palette struct {
	tab, activeTab, prompt, cursor, correct, incorrect, selected, muted lipgloss.Style
}

func newPalette(noColor bool) palette {
	if noColor {
		plain := lipgloss.NewStyle()
		return palette{plain, plain.Bold(true), plain, plain, plain, plain, plain, plain}
	}
	return palette{
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244")),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")),
		prompt:    lipgloss.NewStyle().Bold(true),
		cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// renderTabs renders one tab per kind, highlighting the active one.
func renderTabs(state State, p palette) string {
	tabs := make([]string, len(state.Kinds))
	for i, k := range state.Kinds {
		style := p.tab
		if k == state.Session.Kind {
			style = p.activeTab
		}
		tabs[i] = style.Render(kindTitles[k])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderBody renders the prompt and the question's elements with their marks.
func renderBody(state State, total int, p palette) string {
	if state.Question == nil {
		return p.muted.Render("No question loaded.")
	}
	lines := []string{
		p.muted.Render(fmt.Sprintf("Question %d of %d", state.Session.Index+1, total)),
		p.prompt.Render(state.Question.QuestionPrompt()),
		"",
	}

	switch v := state.Question.(type) {
	case question.MultipleChoice:
		for i, opt := range v.Options {
			lines = append(lines, renderElement(state, p, i, fmt.Sprintf("%d. %s", i+1, opt), i == state.Selected))
		}
	case question.Hotspot:
		for i, r := range v.Regions {
			label := fmt.Sprintf("%d. %s  (%g, %g)", i+1, r.Label, r.X, r.Y)
			lines = append(lines, renderElement(state, p, i, label, i == state.Selected))
		}
	case question.DragDrop:
		items := make([]string, len(v.Draggables))
		for i, d := range v.Draggables {
			items[i] = fmt.Sprintf("%d:%s", i+1, d)
		}
		lines = append(lines, p.muted.Render("Items  "+strings.Join(items, "  ")), "")
		for i, t := range v.Targets {
			slot := "____"
			item, filled := state.Placements[i]
			if filled {
				slot = v.Draggables[item]
			}
			lines = append(lines, renderElement(state, p, i, fmt.Sprintf("%-12s <- %s", t.Label, slot), filled))
		}
	}

	if state.Key != nil {
		lines = append(lines, "", p.correct.Render("Answer: "+describeKey(*state.Key)))
	}
	return strings.Join(lines, "\n")
}

// renderElement prefixes an element with its cursor and grading marker.
func renderElement(state State, p palette, index int, text string, selected bool) string {
	prefix := "  "
	if index == state.Cursor {
		prefix = p.cursor.Render("> ")
	}

	style := lipgloss.NewStyle()
	marker := "  "
	if selected {
		style = p.selected
		marker = "● "
	}
	if mark, ok := markFor(state, index); ok {
		switch {
		case mark.Correct:
			style, marker = p.correct, "✓ "
		case mark.Selected:
			style, marker = p.incorrect, "✗ "
		}
	} else if state.Key != nil && revealed(*state.Key, index) {
		style, marker = p.correct, "✓ "
	}
	return prefix + style.Render(marker+text)
}

func markFor(state State, index int) (grading.Mark, bool) {
	if state.Result == nil {
		return grading.Mark{}, false
	}
	for _, m := range state.Result.Marks {
		if m.Index == index {
			return m, true
		}
	}
	return grading.Mark{}, false
}

func revealed(key grading.AnswerKey, index int) bool {
	for _, c := range key.Choices {
		if c.Index == index {
			return true
		}
	}
	return false
}

func describeKey(key grading.AnswerKey) string {
	if len(key.Placements) > 0 {
		parts := make([]string, len(key.Placements))
		for i, pl := range key.Placements {
			parts[i] = pl.TargetLabel + " = " + pl.ItemText
		}
		return strings.Join(parts, ", ")
	}
	texts := make([]string, len(key.Choices))
	for i, c := range key.Choices {
		texts[i] = c.Text
	}
	return strings.Join(texts, " or ")
}

// renderStatus renders the feedback notice and the running tally.
func renderStatus(state State, p palette) string {
	notice := state.Notice
	style := p.muted
	if state.Result != nil {
		style = p.incorrect
		if state.Result.Correct {
			style = p.correct
		}
	}
	t := state.Session.Tally
	tally := p.muted.Render(fmt.Sprintf("Score %d | Correct %d/%d | Streak %d (best %d)",
		t.Score, t.Correct, t.Attempts, t.Streak, t.BestStreak))
	if notice == "" {
		return tally
	}
	return style.Render(notice) + "\n" + tally
}
