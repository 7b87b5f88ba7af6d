package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
)

// Entry aggregates graded attempts for one question.
type Entry struct {
	QuestionID string         `json:"question_id"`
	Kind       question.Kind  `json:"kind"`
	Attempts   int            `json:"attempts"`
	Correct    int            `json:"correct"`
	Accuracy   float64        `json:"accuracy"`
	// Selected maps an element index to how often it was marked selected:
	// the chosen option or region, or for drag-drop the filled target.
	Selected map[string]int `json:"selected,omitempty"`
}

// ServiceOptions configures stats storage.
type ServiceOptions struct {
	RedisKeyPrefix string
	EntryTTL       time.Duration
}

// Service keeps per-question counters in Redis hashes.
type Service struct {
	redis    *redis.Client
	logger   zerolog.Logger
	prefix   string
	entryTTL time.Duration
}

// NewService constructs a stats service instance.
func NewService(redis *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "qstats"
	}
	return &Service{
		redis:    redis,
		logger:   logger.With().Str("component", "stats").Logger(),
		prefix:   prefix,
		entryTTL: opts.EntryTTL,
	}
}

// Record folds one grading result into the question's counters.
func (s *Service) Record(ctx context.Context, res grading.Result) error {
	key := s.key(res.Kind, res.QuestionID)

	pipe := s.redis.TxPipeline()
	pipe.HIncrBy(ctx, key, "attempts", 1)
	if res.Correct {
		pipe.HIncrBy(ctx, key, "correct", 1)
	}
	for _, m := range res.Marks {
		if m.Selected {
			pipe.HIncrBy(ctx, key, "selected:"+strconv.Itoa(m.Index), 1)
		}
	}
	if s.entryTTL > 0 {
		pipe.Expire(ctx, key, s.entryTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record stats for %s: %w", res.QuestionID, err)
	}
	return nil
}

// Get reads the counters of one question; unseen questions yield a zero entry.
func (s *Service) Get(ctx context.Context, kind question.Kind, questionID string) (Entry, error) {
	data, err := s.redis.HGetAll(ctx, s.key(kind, questionID)).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("read stats for %s: %w", questionID, err)
	}

	entry := Entry{QuestionID: questionID, Kind: kind}
	for field, raw := range data {
		switch {
		case field == "attempts":
			entry.Attempts = parseInt(raw)
		case field == "correct":
			entry.Correct = parseInt(raw)
		case strings.HasPrefix(field, "selected:"):
			if entry.Selected == nil {
				entry.Selected = make(map[string]int)
			}
			entry.Selected[strings.TrimPrefix(field, "selected:")] = parseInt(raw)
		}
	}
	if entry.Attempts > 0 {
		entry.Accuracy = float64(entry.Correct) / float64(entry.Attempts)
	}
	return entry, nil
}

// ForKind returns entries for every question of a kind, in bank order. It
// stops at the first failed read.
func (s *Service) ForKind(ctx context.Context, kind question.Kind, questions []question.Question) ([]Entry, error) {
	entries := make([]Entry, 0, len(questions))
	for _, q := range questions {
		entry, err := s.Get(ctx, kind, q.QuestionID())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) key(kind question.Kind, questionID string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, kind, questionID)
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
