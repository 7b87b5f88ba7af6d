package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gokatarajesh/quiz-widget/internal/question"
)

const listQuestions = `
SELECT question_id, kind, position, payload
FROM questions
ORDER BY kind, position`

// replaceQuestions swaps the stored bank for $1 in one statement. Rows
// missing from $1 are deleted; (kind, position) is checked at commit, so
// questions may trade positions.
const replaceQuestions = `
WITH incoming AS (
    SELECT question_id, kind, position, payload
    FROM jsonb_to_recordset($1::jsonb)
        AS q(question_id TEXT, kind TEXT, position INTEGER, payload JSONB)
), removed AS (
    DELETE FROM questions
    WHERE question_id NOT IN (SELECT question_id FROM incoming)
)
INSERT INTO questions (question_id, kind, position, payload)
SELECT question_id, kind, position, payload FROM incoming
ON CONFLICT (question_id) DO UPDATE
SET kind = EXCLUDED.kind, position = EXCLUDED.position, payload = EXCLUDED.payload`

// QuestionRow is one stored question; Payload is the JSON form of the variant.
type QuestionRow struct {
	ID       string
	Kind     string
	Position int32
	Payload  []byte
}

// QuestionRepository reads and seeds the question bank in Postgres.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns every stored question ordered by kind and position.
func (r *QuestionRepository) List(ctx context.Context) ([]QuestionRow, error) {
	rows, err := r.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRow
	for rows.Next() {
		var row QuestionRow
		if err := rows.Scan(&row.ID, &row.Kind, &row.Position, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// LoadBank builds an immutable bank from the stored rows.
func (r *QuestionRepository) LoadBank(ctx context.Context) (*question.Bank, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	sets := make(map[question.Kind][]question.Question)
	for _, row := range rows {
		q, err := DecodeQuestion(row.Kind, row.Payload)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", row.ID, err)
		}
		if q.QuestionID() != row.ID {
			return nil, fmt.Errorf("question %s: payload id %q differs", row.ID, q.QuestionID())
		}
		sets[q.QuestionKind()] = append(sets[q.QuestionKind()], q)
	}
	return question.NewBank(sets)
}

type seedRow struct {
	QuestionID string            `json:"question_id"`
	Kind       question.Kind     `json:"kind"`
	Position   int               `json:"position"`
	Payload    question.Question `json:"payload"`
}

// Seed replaces the stored questions with bank, keeping bank order as
// position. It returns how many questions were written.
func (r *QuestionRepository) Seed(ctx context.Context, bank *question.Bank) (int, error) {
	var rows []seedRow
	for _, kind := range bank.Kinds() {
		for i, q := range bank.Questions(kind) {
			rows = append(rows, seedRow{QuestionID: q.QuestionID(), Kind: kind, Position: i, Payload: q})
		}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("marshal questions: %w", err)
	}
	if _, err := r.db.Exec(ctx, replaceQuestions, string(raw)); err != nil {
		return 0, fmt.Errorf("replace questions: %w", err)
	}
	return len(rows), nil
}

// DecodeQuestion turns a stored payload back into its variant.
func DecodeQuestion(kind string, payload []byte) (question.Question, error) {
	k, err := question.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	var q question.Question
	switch k {
	case question.KindMultipleChoice:
		var v question.MultipleChoice
		err = json.Unmarshal(payload, &v)
		q = v
	case question.KindHotspot:
		var v question.Hotspot
		err = json.Unmarshal(payload, &v)
		q = v
	case question.KindDragDrop:
		var v question.DragDrop
		err = json.Unmarshal(payload, &v)
		q = v
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", k, err)
	}
	return q, nil
}
