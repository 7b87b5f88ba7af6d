package grading

import (
	"errors"

	"github.com/gokatarajesh/quiz-widget/internal/question"
)

var (
	// ErrNoSelection means Grade was called before the user chose anything.
	ErrNoSelection  = errors.New("no selection submitted")
	ErrKindMismatch = errors.New("submission does not match question kind")
)

// Submission is implemented by MultipleChoiceAnswer, HotspotAnswer and
// DragDropAnswer only.
type Submission interface {
	SubmissionKind() question.Kind
	sealed()
}

// MultipleChoiceAnswer selects an option; a negative index means nothing is selected.
type MultipleChoiceAnswer struct {
	Selected int `json:"selected"`
}

// HotspotAnswer selects a region by id; empty means nothing is selected.
type HotspotAnswer struct {
	RegionID string `json:"region_id"`
}

// DragDropAnswer maps target index to placed item index. Missing targets are unfilled.
type DragDropAnswer struct {
	Placements map[int]int `json:"placements"`
}

func (MultipleChoiceAnswer) SubmissionKind() question.Kind { return question.KindMultipleChoice }
func (MultipleChoiceAnswer) sealed()                       {}

func (HotspotAnswer) SubmissionKind() question.Kind { return question.KindHotspot }
func (HotspotAnswer) sealed()                       {}

func (DragDropAnswer) SubmissionKind() question.Kind { return question.KindDragDrop }
func (DragDropAnswer) sealed()                       {}

// Mark annotates one option, region or target for visual feedback.
type Mark struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Correct  bool   `json:"correct"`
	Selected bool   `json:"selected"`
}

// Result is the outcome of one grading attempt.
type Result struct {
	QuestionID string        `json:"question_id"`
	Kind       question.Kind `json:"kind"`
	Correct    bool          `json:"correct"`
	Marks      []Mark        `json:"marks"`
	Message    string        `json:"message,omitempty"`
}

// CorrectMarks counts marks flagged correct.
func (r Result) CorrectMarks() int {
	n := 0
	for _, m := range r.Marks {
		if m.Correct {
			n++
		}
	}
	return n
}

// Choice is one revealed option or region.
type Choice struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text"`
}

// Placement is the canonical item for one drop target.
type Placement struct {
	Target      int    `json:"target"`
	TargetLabel string `json:"target_label"`
	Item        int    `json:"item"`
	ItemText    string `json:"item_text"`
}

// AnswerKey is the canonical answer of a question, for display.
type AnswerKey struct {
	QuestionID string        `json:"question_id"`
	Kind       question.Kind `json:"kind"`
	Choices    []Choice      `json:"choices,omitempty"`
	Placements []Placement   `json:"placements,omitempty"`
}

// Feedback lines shown when a result carries no message of its own.
const (
	MessageCorrect   = "Correct! Good job!"
	MessageIncorrect = "Incorrect. Try again or check the answer."
	MessageRevealed  = "The correct answer is shown above."
)

// Feedback returns the result's own message or the generic line for its outcome.
func (r Result) Feedback() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Correct {
		return MessageCorrect
	}
	return MessageIncorrect
}
