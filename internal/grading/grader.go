package grading

import (
	"fmt"

	"github.com/gokatarajesh/quiz-widget/internal/question"
)

// Grade compares sub against the answer key of q.
func Grade(q question.Question, sub Submission) (Result, error) {
	if sub == nil {
		return Result{}, ErrNoSelection
	}
	if sub.SubmissionKind() != q.QuestionKind() {
		return Result{}, fmt.Errorf("%w: %s answer for %s question", ErrKindMismatch, sub.SubmissionKind(), q.QuestionKind())
	}
	switch v := q.(type) {
	case question.MultipleChoice:
		if a, ok := sub.(MultipleChoiceAnswer); ok {
			return gradeMultipleChoice(v, a)
		}
	case question.Hotspot:
		if a, ok := sub.(HotspotAnswer); ok {
			return gradeHotspot(v, a)
		}
	case question.DragDrop:
		if a, ok := sub.(DragDropAnswer); ok {
			return gradeDragDrop(v, a)
		}
	default:
		return Result{}, fmt.Errorf("%w: unsupported question %T", question.ErrInvalidQuestion, q)
	}
	return Result{}, fmt.Errorf("%w: submission type %T", ErrKindMismatch, sub)
}

func gradeMultipleChoice(q question.MultipleChoice, a MultipleChoiceAnswer) (Result, error) {
	if a.Selected < 0 {
		return Result{}, ErrNoSelection
	}
	if a.Selected >= len(q.Options) {
		return Result{}, fmt.Errorf("%w: option %d of %d", question.ErrOutOfRange, a.Selected, len(q.Options))
	}

	res := Result{
		QuestionID: q.ID,
		Kind:       question.KindMultipleChoice,
		Correct:    a.Selected == q.Correct,
		Marks:      []Mark{{Index: q.Correct, Correct: true, Selected: a.Selected == q.Correct}},
	}
	if !res.Correct {
		res.Marks = append(res.Marks, Mark{Index: a.Selected, Selected: true})
	}
	return res, nil
}

func gradeHotspot(q question.Hotspot, a HotspotAnswer) (Result, error) {
	if a.RegionID == "" {
		return Result{}, ErrNoSelection
	}
	selected := q.RegionIndex(a.RegionID)
	if selected < 0 {
		return Result{}, fmt.Errorf("%w: region %q", question.ErrOutOfRange, a.RegionID)
	}

	region := q.Regions[selected]
	res := Result{
		QuestionID: q.ID,
		Kind:       question.KindHotspot,
		Correct:    region.Correct,
		Message:    region.Feedback,
	}
	for i, r := range q.Regions {
		switch {
		case r.Correct:
			res.Marks = append(res.Marks, Mark{Index: i, ID: r.ID, Correct: true, Selected: i == selected})
		case i == selected:
			res.Marks = append(res.Marks, Mark{Index: i, ID: r.ID, Selected: true})
		}
	}
	return res, nil
}

func gradeDragDrop(q question.DragDrop, a DragDropAnswer) (Result, error) {
	for target, item := range a.Placements {
		if target < 0 || target >= len(q.Targets) {
			return Result{}, fmt.Errorf("%w: target %d of %d", question.ErrOutOfRange, target, len(q.Targets))
		}
		if item < 0 || item >= len(q.Draggables) {
			return Result{}, fmt.Errorf("%w: item %d of %d", question.ErrOutOfRange, item, len(q.Draggables))
		}
	}

	res := Result{
		QuestionID: q.ID,
		Kind:       question.KindDragDrop,
		Correct:    true,
		Marks:      make([]Mark, len(q.Targets)),
	}
	for i, t := range q.Targets {
		item, filled := a.Placements[i]
		ok := filled && item == t.Match
		res.Marks[i] = Mark{Index: i, Correct: ok, Selected: filled}
		res.Correct = res.Correct && ok
	}
	return res, nil
}

// Reveal returns the canonical answer of q without grading anything.
func Reveal(q question.Question) AnswerKey {
	key := AnswerKey{QuestionID: q.QuestionID(), Kind: q.QuestionKind()}
	switch v := q.(type) {
	case question.MultipleChoice:
		key.Choices = []Choice{{Index: v.Correct, Text: v.Options[v.Correct]}}
	case question.Hotspot:
		for _, i := range v.CorrectRegions() {
			r := v.Regions[i]
			key.Choices = append(key.Choices, Choice{Index: i, ID: r.ID, Text: r.Label})
		}
	case question.DragDrop:
		key.Placements = make([]Placement, len(v.Targets))
		for i, t := range v.Targets {
			key.Placements[i] = Placement{
				Target:      i,
				TargetLabel: t.Label,
				Item:        t.Match,
				ItemText:    v.Draggables[t.Match],
			}
		}
	}
	return key
}

// Submission returns the submission that the answer key describes. Grading it
// against the same question always yields a correct result.
func (k AnswerKey) Submission() Submission {
	switch k.Kind {
	case question.KindMultipleChoice:
		if len(k.Choices) == 0 {
			return MultipleChoiceAnswer{Selected: -1}
		}
		return MultipleChoiceAnswer{Selected: k.Choices[0].Index}
	case question.KindHotspot:
		if len(k.Choices) == 0 {
			return HotspotAnswer{}
		}
		return HotspotAnswer{RegionID: k.Choices[0].ID}
	case question.KindDragDrop:
		placements := make(map[int]int, len(k.Placements))
		for _, p := range k.Placements {
			placements[p.Target] = p.Item
		}
		return DragDropAnswer{Placements: placements}
	}
	return nil
}
