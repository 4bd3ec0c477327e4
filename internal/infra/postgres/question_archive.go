package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"trivia-quiz-service/internal/domain"
)

// QuestionArchive keeps every fetched question set as a JSONB row keyed by
// (topic, day). It doubles as the cache loader for days the cache lost.
type QuestionArchive struct {
	pool *pgxpool.Pool
}

func NewQuestionArchive(pool *pgxpool.Pool) *QuestionArchive {
	return &QuestionArchive{pool: pool}
}

// SaveQuestionSet replaces the archived set for (topic, date).
func (a *QuestionArchive) SaveQuestionSet(ctx context.Context, topic, date string, questions []domain.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = a.pool.Exec(ctx, `
		INSERT INTO question_sets (topic, day, data, fetched_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (topic, day) DO UPDATE SET data = EXCLUDED.data, fetched_at = EXCLUDED.fetched_at`,
		topic, date, string(data))
	if err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}

func (a *QuestionArchive) LoadQuestions(ctx context.Context, topic, date string) ([]domain.Question, error) {
	var raw []byte
	err := a.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE topic=$1 AND day=$2`, topic, date).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal question set: %w", err)
	}
	return questions, nil
}
