package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
)

const insertAttempt = `
INSERT INTO attempts (attempt_id, session_id, question_id, kind, correct, marks, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listAttemptsBySession = `
SELECT attempt_id, session_id, question_id, kind, correct, marks, submitted_at
FROM attempts
WHERE session_id = $1
ORDER BY submitted_at DESC
LIMIT $2`

// Attempt is one graded submission.
type Attempt struct {
	ID          uuid.UUID      `json:"id"`
	SessionID   uuid.UUID      `json:"session_id"`
	Result      grading.Result `json:"result"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// AttemptRepository stores grading history.
type AttemptRepository struct {
	db DBTX
}

func NewAttemptRepository(db DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Insert persists one attempt.
func (r *AttemptRepository) Insert(ctx context.Context, a Attempt) error {
	marks, err := json.Marshal(a.Result.Marks)
	if err != nil {
		return fmt.Errorf("marshal marks: %w", err)
	}
	_, err = r.db.Exec(ctx, insertAttempt,
		toPGUUID(a.ID),
		toPGUUID(a.SessionID),
		a.Result.QuestionID,
		string(a.Result.Kind),
		a.Result.Correct,
		marks,
		a.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// ListBySession returns the latest attempts of a session, newest first.
func (r *AttemptRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Attempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, listAttemptsBySession, toPGUUID(sessionID), int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			id, sid pgtype.UUID
			kind    string
			marks   []byte
			a       Attempt
		)
		if err := rows.Scan(&id, &sid, &a.Result.QuestionID, &kind, &a.Result.Correct, &marks, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ID = fromPGUUID(id)
		a.SessionID = fromPGUUID(sid)
		a.Result.Kind = question.Kind(kind)
		if err := json.Unmarshal(marks, &a.Result.Marks); err != nil {
			return nil, fmt.Errorf("decode marks: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
