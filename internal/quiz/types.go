package quiz

import (
	"github.com/google/uuid"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
)

// View is what a client sees of its session: the active question without
// its answer key, plus the running tally.
type View struct {
	SessionID uuid.UUID               `json:"session_id"`
	Kind      question.Kind           `json:"kind"`
	Index     int                     `json:"index"`
	Total     int                     `json:"total"`
	Question  question.PublicQuestion `json:"question"`
	Tally     scoring.Tally           `json:"tally"`
}

// Outcome is the result of one submission.
type Outcome struct {
	Result   grading.Result `json:"result"`
	Feedback string         `json:"feedback"`
	Points   int            `json:"points"`
	Tally    scoring.Tally  `json:"tally"`
}

// Answer is the wire form of a submission. Only the field that matches the
// question kind is read; Kind, when set, pins the intended kind.
type Answer struct {
	Kind       string      `json:"kind,omitempty"`
	Selected   *int        `json:"selected,omitempty"`
	RegionID   string      `json:"region_id,omitempty"`
	Placements map[int]int `json:"placements,omitempty"`
}

// Submission converts the answer for a question of kind current.
func (a Answer) Submission(current question.Kind) (grading.Submission, error) {
	kind := current
	if a.Kind != "" {
		k, err := question.ParseKind(a.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	switch kind {
	case question.KindMultipleChoice:
		if a.Selected == nil {
			return grading.MultipleChoiceAnswer{Selected: -1}, nil
		}
		return grading.MultipleChoiceAnswer{Selected: *a.Selected}, nil
	case question.KindHotspot:
		return grading.HotspotAnswer{RegionID: a.RegionID}, nil
	case question.KindDragDrop:
		return grading.DragDropAnswer{Placements: a.Placements}, nil
	}
	return nil, question.ErrUnknownKind
}

// StartResponse is returned when a session is created.
type StartResponse struct {
	Token   string `json:"token"`
	Session View   `json:"session"`
}

type kindRequest struct {
	Kind string `json:"kind"`
}
