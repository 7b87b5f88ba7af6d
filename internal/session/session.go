package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
)

// Sizer reports the number of questions for a kind (implemented by *question.Bank).
type Sizer interface {
	Len(kind question.Kind) int
}

// Session tracks which question a user is looking at.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	Kind      question.Kind `json:"kind"`
	Index     int           `json:"index"`
	Tally     scoring.Tally `json:"tally"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// New starts a session on the first question of kind.
func New(id uuid.UUID, kind question.Kind) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, Kind: kind, CreatedAt: now, UpdatedAt: now}
}

// SetKind switches the active kind and rewinds to its first question.
func (s *Session) SetKind(kind question.Kind) {
	s.Kind = kind
	s.Index = 0
	s.touch()
}

// Next advances to the following question, wrapping to 0 after the last one.
func (s *Session) Next(sizer Sizer) error {
	n := sizer.Len(s.Kind)
	if n <= 0 {
		return fmt.Errorf("%w: %s", question.ErrNoQuestions, s.Kind)
	}
	s.Index = (s.Index + 1) % n
	s.touch()
	return nil
}

// Current returns the active kind and index.
func (s *Session) Current() (question.Kind, int) {
	return s.Kind, s.Index
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
