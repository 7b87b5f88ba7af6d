package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
	"github.com/gokatarajesh/quiz-widget/internal/session"
)

// Model renders a quiz session in the terminal using Bubble Tea.
type Model struct {
	state   State
	reducer *Reducer
	bank    *question.Bank
	keys    keyMap
	help    help.Model
	palette palette
	logger  zerolog.Logger
}

// Options configures the terminal UI model.
type Options struct {
	Kind    question.Kind
	NoColor bool
	Logger  zerolog.Logger
}

// NewModel starts a local session on opts.Kind (multiple choice by default).
func NewModel(bank *question.Bank, engine *scoring.Engine, opts Options) (Model, error) {
	kind := opts.Kind
	if kind == "" {
		kind = question.KindMultipleChoice
	}
	if bank.Len(kind) == 0 {
		return Model{}, fmt.Errorf("%w: %q", question.ErrUnknownKind, kind)
	}

	reducer := NewReducer(bank, engine)
	state := reducer.load(State{
		Kinds:   bank.Kinds(),
		Session: *session.New(uuid.New(), kind),
	})

	return Model{
		state:   state,
		reducer: reducer,
		bank:    bank,
		keys:    defaultKeyMap(),
		help:    help.New(),
		palette: newPalette(opts.NoColor),
		logger:  opts.Logger,
	}, nil
}

// State exposes the current UI state.
func (m Model) State() State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update maps key presses onto reducer actions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			return m, tea.Quit
		}
		if action := m.actionFor(typed); action != nil {
			m.state = m.reducer.Reduce(m.state, action)
			m.logger.Debug().
				Str("action", fmt.Sprintf("%T", action)).
				Str("kind", string(m.state.Session.Kind)).
				Int("index", m.state.Session.Index).
				Msg("action applied")
		}
	}
	return m, nil
}

func (m Model) actionFor(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, m.keys.Up):
		return MoveCursor{Delta: -1}
	case key.Matches(msg, m.keys.Down):
		return MoveCursor{Delta: 1}
	case key.Matches(msg, m.keys.Choose):
		return Choose{}
	case key.Matches(msg, m.keys.Pick):
		return Pick{Index: int(msg.String()[0]-'1')}
	case key.Matches(msg, m.keys.Clear):
		return Clear{}
	case key.Matches(msg, m.keys.Check):
		return Check{}
	case key.Matches(msg, m.keys.Reveal):
		return Reveal{}
	case key.Matches(msg, m.keys.Next):
		return NextQuestion{}
	case key.Matches(msg, m.keys.NextKind):
		return CycleKind{Delta: 1}
	case key.Matches(msg, m.keys.PrevKind):
		return CycleKind{Delta: -1}
	}
	return nil
}

// View renders the quiz.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderTabs(m.state, m.palette),
		"",
		renderBody(m.state, m.bank.Len(m.state.Session.Kind), m.palette),
		"",
		renderStatus(m.state, m.palette),
		"",
		m.help.View(m.keys),
	)
}
