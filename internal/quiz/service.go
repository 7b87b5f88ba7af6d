package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/db/repository"
	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
	"github.com/gokatarajesh/quiz-widget/internal/session"
)

// ErrHistoryDisabled is returned by Attempts when no attempt store is wired.
var ErrHistoryDisabled = errors.New("attempt history is disabled")

// StatsRecorder folds grading results into aggregate counters.
type StatsRecorder interface {
	Record(ctx context.Context, res grading.Result) error
}

// AttemptStore persists grading history.
type AttemptStore interface {
	Insert(ctx context.Context, a repository.Attempt) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]repository.Attempt, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Generate(sessionID uuid.UUID) (string, error)
}

// ServiceOptions carries the optional collaborators of Service.
type ServiceOptions struct {
	DefaultKind question.Kind
	Stats       StatsRecorder
	Attempts    AttemptStore
	Metrics     *Metrics
}

// Service drives quiz sessions: navigation, grading and reveal.
type Service struct {
	bank        *question.Bank
	store       session.Store
	engine      *scoring.Engine
	tokens      TokenIssuer
	stats       StatsRecorder
	attempts    AttemptStore
	metrics     *Metrics
	defaultKind question.Kind
	logger      zerolog.Logger
	now         func() time.Time
}

// NewService creates a quiz service with all dependencies.
func NewService(
	bank *question.Bank,
	store session.Store,
	engine *scoring.Engine,
	tokens TokenIssuer,
	opts ServiceOptions,
	logger zerolog.Logger,
) *Service {
	defaultKind := opts.DefaultKind
	if defaultKind == "" {
		defaultKind = question.KindMultipleChoice
	}
	return &Service{
		bank:        bank,
		store:       store,
		engine:      engine,
		tokens:      tokens,
		stats:       opts.Stats,
		attempts:    opts.Attempts,
		metrics:     opts.Metrics,
		defaultKind: defaultKind,
		logger:      logger.With().Str("component", "quiz").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Bank exposes the immutable question bank.
func (s *Service) Bank() *question.Bank {
	return s.bank
}

// Start opens a session on the first question of kind (or the default kind)
// and signs a token for it.
func (s *Service) Start(ctx context.Context, kind question.Kind) (View, string, error) {
	if kind == "" {
		kind = s.defaultKind
	}
	if s.bank.Len(kind) == 0 {
		return View{}, "", fmt.Errorf("%w: %q", question.ErrUnknownKind, kind)
	}

	sess := session.New(uuid.New(), kind)
	if err := s.store.Save(ctx, sess); err != nil {
		return View{}, "", fmt.Errorf("save session: %w", err)
	}
	token, err := s.tokens.Generate(sess.ID)
	if err != nil {
		return View{}, "", fmt.Errorf("sign session token: %w", err)
	}

	s.metrics.sessionStarted(kind)
	s.logger.Info().Str("session_id", sess.ID.String()).Str("kind", string(kind)).Msg("session started")

	view, err := s.view(sess)
	return view, token, err
}

// View returns the session's current question.
func (s *Service) View(ctx context.Context, id uuid.UUID) (View, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(sess)
}

// SetKind switches the session to another kind, rewinding to its first question.
func (s *Service) SetKind(ctx context.Context, id uuid.UUID, kind question.Kind) (View, error) {
	if s.bank.Len(kind) == 0 {
		return View{}, fmt.Errorf("%w: %q", question.ErrUnknownKind, kind)
	}
	return s.mutate(ctx, id, func(sess *session.Session) error {
		sess.SetKind(kind)
		return nil
	})
}

// Next advances to the following question, wrapping after the last one.
func (s *Service) Next(ctx context.Context, id uuid.UUID) (View, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.Next(s.bank)
	})
}

// Submit grades an answer against the current question and updates the tally.
// A rejected submission leaves the session untouched.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, answer Answer) (Outcome, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	defer s.release(id, unlock)

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	kind, index := sess.Current()
	q, err := s.bank.Question(kind, index)
	if err != nil {
		return Outcome{}, err
	}

	sub, err := answer.Submission(kind)
	if err != nil {
		s.metrics.gradingFailed(err)
		return Outcome{}, err
	}
	res, err := grading.Grade(q, sub)
	if err != nil {
		s.metrics.gradingFailed(err)
		return Outcome{}, err
	}

	before := sess.Tally.Score
	sess.Tally = s.engine.Apply(sess.Tally, res.Correct)
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}

	s.metrics.graded(res)
	s.record(ctx, sess.ID, res)

	s.logger.Debug().
		Str("session_id", sess.ID.String()).
		Str("question_id", res.QuestionID).
		Bool("correct", res.Correct).
		Msg("answer graded")

	return Outcome{
		Result:   res,
		Feedback: res.Feedback(),
		Points:   sess.Tally.Score - before,
		Tally:    sess.Tally,
	}, nil
}

// Reveal returns the answer key of the current question without grading.
func (s *Service) Reveal(ctx context.Context, id uuid.UUID) (grading.AnswerKey, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return grading.AnswerKey{}, err
	}
	q, err := s.bank.Question(sess.Current())
	if err != nil {
		return grading.AnswerKey{}, err
	}
	s.metrics.revealed(q.QuestionKind())
	return grading.Reveal(q), nil
}

// Attempts lists the latest graded attempts of a session.
func (s *Service) Attempts(ctx context.Context, id uuid.UUID, limit int) ([]repository.Attempt, error) {
	if s.attempts == nil {
		return nil, ErrHistoryDisabled
	}
	return s.attempts.ListBySession(ctx, id, limit)
}

// Questions lists the public form of every question of kind.
func (s *Service) Questions(kind question.Kind) ([]question.PublicQuestion, error) {
	qs := s.bank.Questions(kind)
	if qs == nil {
		return nil, fmt.Errorf("%w: %q", question.ErrUnknownKind, kind)
	}
	out := make([]question.PublicQuestion, len(qs))
	for i, q := range qs {
		out[i] = question.Public(q)
	}
	return out, nil
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) (View, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return View{}, err
	}
	defer s.release(id, unlock)

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	if err := fn(sess); err != nil {
		return View{}, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return View{}, fmt.Errorf("save session: %w", err)
	}
	return s.view(sess)
}

func (s *Service) view(sess *session.Session) (View, error) {
	kind, index := sess.Current()
	q, err := s.bank.Question(kind, index)
	if err != nil {
		return View{}, err
	}
	return View{
		SessionID: sess.ID,
		Kind:      kind,
		Index:     index,
		Total:     s.bank.Len(kind),
		Question:  question.Public(q),
		Tally:     sess.Tally,
	}, nil
}

// record feeds stats and history; failures are logged, never surfaced.
func (s *Service) record(ctx context.Context, sessionID uuid.UUID, res grading.Result) {
	if s.stats != nil {
		if err := s.stats.Record(ctx, res); err != nil {
			s.logger.Warn().Err(err).Str("question_id", res.QuestionID).Msg("stats record failed")
		}
	}
	if s.attempts != nil {
		attempt := repository.Attempt{
			ID:          uuid.New(),
			SessionID:   sessionID,
			Result:      res,
			SubmittedAt: s.now(),
		}
		if err := s.attempts.Insert(ctx, attempt); err != nil {
			s.logger.Warn().Err(err).Str("question_id", res.QuestionID).Msg("attempt insert failed")
		}
	}
}

func (s *Service) release(id uuid.UUID, unlock func() error) {
	if err := unlock(); err != nil {
		s.logger.Warn().Err(err).Str("session_id", id.String()).Msg("session unlock failed")
	}
}
