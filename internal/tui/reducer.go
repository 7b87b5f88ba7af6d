package tui

import (
	"errors"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
)

// NoticeSelectFirst is shown when Check runs without a selection.
const NoticeSelectFirst = "Select an answer first."

// Reducer applies actions to State against a fixed bank.
type Reducer struct {
	bank   *question.Bank
	engine *scoring.Engine
}

// NewReducer builds a reducer over bank.
func NewReducer(bank *question.Bank, engine *scoring.Engine) *Reducer {
	return &Reducer{bank: bank, engine: engine}
}

// Reduce returns the state that follows action.
func (r *Reducer) Reduce(state State, action Action) State {
	state.Placements = copyPlacements(state.Placements)

	switch a := action.(type) {
	case SelectKind:
		if r.bank.Len(a.Kind) == 0 {
			state.Notice = "Unknown question kind " + string(a.Kind)
			return state
		}
		state.Session.SetKind(a.Kind)
		return r.load(state)

	case CycleKind:
		if len(state.Kinds) == 0 {
			return state
		}
		i := indexOf(state.Kinds, state.Session.Kind)
		n := len(state.Kinds)
		return r.Reduce(state, SelectKind{Kind: state.Kinds[((i+a.Delta)%n+n)%n]})

	case NextQuestion:
		if err := state.Session.Next(r.bank); err != nil {
			state.Notice = err.Error()
			return state
		}
		return r.load(state)

	case MoveCursor:
		if n := elementCount(state.Question); n > 0 {
			state.Cursor = ((state.Cursor+a.Delta)%n + n) % n
		}
		return state

	case Choose:
		if dd, ok := state.Question.(question.DragDrop); ok {
			// Cycle the draggable on the focused target.
			next := 0
			if item, filled := state.Placements[state.Cursor]; filled {
				next = (item + 1) % len(dd.Draggables)
			}
			state.Placements[state.Cursor] = next
		} else {
			state.Selected = state.Cursor
		}
		return clearOutcome(state)

	case Pick:
		if a.Index < 0 {
			return state
		}
		switch v := state.Question.(type) {
		case question.DragDrop:
			if a.Index >= len(v.Draggables) {
				return state
			}
			state.Placements[state.Cursor] = a.Index
		default:
			if a.Index >= elementCount(v) {
				return state
			}
			state.Selected = a.Index
			state.Cursor = a.Index
		}
		return clearOutcome(state)

	case Clear:
		if _, ok := state.Question.(question.DragDrop); ok {
			delete(state.Placements, state.Cursor)
		} else {
			state.Selected = -1
		}
		return clearOutcome(state)

	case Check:
		res, err := grading.Grade(state.Question, submission(state))
		if err != nil {
			if errors.Is(err, grading.ErrNoSelection) {
				state.Notice = NoticeSelectFirst
			} else {
				state.Notice = err.Error()
			}
			return state
		}
		state.Result = &res
		state.Key = nil
		state.Session.Tally = r.engine.Apply(state.Session.Tally, res.Correct)
		state.Notice = res.Feedback()
		return state

	case Reveal:
		key := grading.Reveal(state.Question)
		state.Key = &key
		state.Notice = grading.MessageRevealed
		return state
	}
	return state
}

// load fetches the session's current question and resets per-question input.
func (r *Reducer) load(state State) State {
	q, err := r.bank.Question(state.Session.Current())
	if err != nil {
		state.Notice = err.Error()
		return state
	}
	state.Question = q
	state.Cursor = 0
	state.Selected = -1
	state.Placements = map[int]int{}
	state.Result = nil
	state.Key = nil
	state.Notice = ""
	return state
}

func submission(state State) grading.Submission {
	switch v := state.Question.(type) {
	case question.MultipleChoice:
		return grading.MultipleChoiceAnswer{Selected: state.Selected}
	case question.Hotspot:
		if state.Selected < 0 || state.Selected >= len(v.Regions) {
			return grading.HotspotAnswer{}
		}
		return grading.HotspotAnswer{RegionID: v.Regions[state.Selected].ID}
	case question.DragDrop:
		return grading.DragDropAnswer{Placements: state.Placements}
	}
	return nil
}

func clearOutcome(state State) State {
	state.Result = nil
	state.Key = nil
	state.Notice = ""
	return state
}

func copyPlacements(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func indexOf(kinds []question.Kind, kind question.Kind) int {
	for i, k := range kinds {
		if k == kind {
			return i
		}
	}
	return 0
}
