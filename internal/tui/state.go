package tui

import (
	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/session"
)

// State is everything the terminal UI renders. Reduce never mutates its input.
type State struct {
	Kinds    []question.Kind
	Session  session.Session
	Question question.Question

	// Cursor focuses an option, region or drop target.
	Cursor int
	// Selected is the chosen option or region index, -1 for none.
	Selected int
	// Placements maps drop target to draggable index.
	Placements map[int]int

	Result *grading.Result
	Key    *grading.AnswerKey
	Notice string
}

// Action is one user intent fed into Reduce.
type Action interface {
	action()
}

type (
	// SelectKind switches the active kind.
	SelectKind struct{ Kind question.Kind }
	// CycleKind moves to the next (Delta 1) or previous (Delta -1) kind tab.
	CycleKind struct{ Delta int }
	// NextQuestion advances within the active kind.
	NextQuestion struct{}
	// MoveCursor shifts focus by Delta elements, wrapping.
	MoveCursor struct{ Delta int }
	// Choose acts on the focused element.
	Choose struct{}
	// Pick selects element Index directly: an option, a region, or the
	// draggable to drop on the focused target.
	Pick struct{ Index int }
	// Clear removes the selection or the focused placement.
	Clear struct{}
	// Check grades the current selection.
	Check struct{}
	// Reveal shows the answer key.
	Reveal struct{}
)

func (SelectKind) action()   {}
func (CycleKind) action()    {}
func (NextQuestion) action() {}
func (MoveCursor) action()   {}
func (Choose) action()       {}
func (Pick) action()         {}
func (Clear) action()        {}
func (Check) action()        {}
func (Reveal) action()       {}

// elementCount is the number of focusable elements of q.
func elementCount(q question.Question) int {
	switch v := q.(type) {
	case question.MultipleChoice:
		return len(v.Options)
	case question.Hotspot:
		return len(v.Regions)
	case question.DragDrop:
		return len(v.Targets)
	}
	return 0
}
