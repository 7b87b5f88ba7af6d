package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
)

func newModel(t *testing.T, kind question.Kind) Model {
	t.Helper()
	bank, err := question.NewBank(question.Builtin())
	require.NoError(t, err)
	m, err := NewModel(bank, scoring.NewEngine(scoring.DefaultConfig()), Options{Kind: kind, NoColor: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return m
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelKeysDriveReducer(t *testing.T) {
	m := newModel(t, "")
	m = press(m, runes("3"), runes("c"))

	state := m.State()
	require.NotNil(t, state.Result)
	assert.True(t, state.Result.Correct)

	view := m.View()
	assert.Contains(t, view, "What is the capital of France?")
	assert.Contains(t, view, "✓ 3. Paris")
	assert.Contains(t, view, "Correct! Good job!")
	assert.Contains(t, view, "Score 100")
}

func TestModelTabSwitchesKind(t *testing.T) {
	m := newModel(t, question.KindMultipleChoice)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, question.KindHotspot, m.State().Session.Kind)
	assert.Contains(t, m.View(), "largest heading")

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, question.KindMultipleChoice, m.State().Session.Kind)
}

func TestModelRevealShowsAnswer(t *testing.T) {
	m := newModel(t, question.KindDragDrop)
	m = press(m, runes("s"))
	assert.Contains(t, m.View(), "Answer: Layout = margin, Visual = color, Typography = font-size, Animation = transition")
}

func TestModelQuit(t *testing.T) {
	m := newModel(t, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNewModelRejectsUnknownKind(t *testing.T) {
	bank, err := question.NewBank(question.Builtin())
	require.NoError(t, err)
	_, err = NewModel(bank, scoring.NewEngine(scoring.Config{}), Options{Kind: "essay"})
	assert.ErrorIs(t, err, question.ErrUnknownKind)
}
