package question

import (
	"fmt"
)

// Bank is the immutable question catalog, grouped by kind.
type Bank struct {
	sets map[Kind][]Question
}

// NewBank validates sets and freezes them into a Bank. Every kind in
// AllKinds must carry at least one question.
func NewBank(sets map[Kind][]Question) (*Bank, error) {
	frozen := make(map[Kind][]Question, len(AllKinds))
	for kind := range sets {
		if _, err := ParseKind(string(kind)); err != nil {
			return nil, fmt.Errorf("bank kind %q: %w", kind, err)
		}
	}
	for _, kind := range AllKinds {
		qs := sets[kind]
		if len(qs) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoQuestions, kind)
		}
		seen := make(map[string]struct{}, len(qs))
		for i, q := range qs {
			if q == nil {
				return nil, fmt.Errorf("%w: %s[%d] is nil", ErrInvalidQuestion, kind, i)
			}
			if q.QuestionKind() != kind {
				return nil, fmt.Errorf("%w: %s[%d] is a %s question", ErrInvalidQuestion, kind, i, q.QuestionKind())
			}
			if _, dup := seen[q.QuestionID()]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidQuestion, q.QuestionID())
			}
			seen[q.QuestionID()] = struct{}{}
			if err := Validate(q); err != nil {
				return nil, err
			}
		}
		frozen[kind] = make([]Question, len(qs))
		for i, q := range qs {
			frozen[kind][i] = Clone(q)
		}
	}
	return &Bank{sets: frozen}, nil
}

// Kinds returns the kinds served by the bank in display order.
func (b *Bank) Kinds() []Kind {
	return append([]Kind(nil), AllKinds...)
}

// Questions returns copies of the ordered questions of a kind, nil if the
// kind is unknown.
func (b *Bank) Questions(kind Kind) []Question {
	qs, ok := b.sets[kind]
	if !ok {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Clone(q)
	}
	return out
}

// Len reports how many questions a kind has.
func (b *Bank) Len(kind Kind) int {
	return len(b.sets[kind])
}

// Question returns the question at index for kind.
func (b *Bank) Question(kind Kind, index int) (Question, error) {
	qs, ok := b.sets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if index < 0 || index >= len(qs) {
		return nil, fmt.Errorf("%w: %s[%d] (have %d)", ErrOutOfRange, kind, index, len(qs))
	}
	return Clone(qs[index]), nil
}

// Clone returns a copy of q that shares no slices with it.
func Clone(q Question) Question {
	switch v := q.(type) {
	case MultipleChoice:
		v.Options = append([]string(nil), v.Options...)
		return v
	case Hotspot:
		v.Regions = append([]Region(nil), v.Regions...)
		return v
	case DragDrop:
		v.Draggables = append([]string(nil), v.Draggables...)
		v.Targets = append([]Target(nil), v.Targets...)
		return v
	}
	return q
}

// Lint returns advisory findings that do not block loading.
func (b *Bank) Lint() []string {
	var notes []string
	for _, q := range b.sets[KindHotspot] {
		hs := q.(Hotspot)
		if n := len(hs.CorrectRegions()); n != 1 {
			notes = append(notes, fmt.Sprintf("hotspot %s has %d correct regions; the first is treated as canonical", hs.ID, n))
		}
	}
	return notes
}

// Validate checks the structural invariants of a single question.
func Validate(q Question) error {
	switch v := q.(type) {
	case MultipleChoice:
		if len(v.Options) == 0 {
			return fmt.Errorf("%w: %s has no options", ErrInvalidQuestion, v.ID)
		}
		if v.Correct < 0 || v.Correct >= len(v.Options) {
			return fmt.Errorf("%w: %s correct option %d out of range", ErrInvalidQuestion, v.ID, v.Correct)
		}
	case Hotspot:
		if len(v.Regions) == 0 {
			return fmt.Errorf("%w: %s has no regions", ErrInvalidQuestion, v.ID)
		}
		ids := make(map[string]struct{}, len(v.Regions))
		for _, r := range v.Regions {
			if r.ID == "" {
				return fmt.Errorf("%w: %s has a region without id", ErrInvalidQuestion, v.ID)
			}
			if _, dup := ids[r.ID]; dup {
				return fmt.Errorf("%w: %s duplicate region %q", ErrInvalidQuestion, v.ID, r.ID)
			}
			ids[r.ID] = struct{}{}
		}
	case DragDrop:
		if len(v.Targets) == 0 || len(v.Draggables) == 0 {
			return fmt.Errorf("%w: %s needs draggables and targets", ErrInvalidQuestion, v.ID)
		}
		for i, t := range v.Targets {
			if t.Match < 0 || t.Match >= len(v.Draggables) {
				return fmt.Errorf("%w: %s target %d matches missing item %d", ErrInvalidQuestion, v.ID, i, t.Match)
			}
		}
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidQuestion, q)
	}
	if q.QuestionID() == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	return nil
}
