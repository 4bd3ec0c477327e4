package app

import (
	"context"
	"time"

	"trivia-quiz-service/internal/domain"
)

// UserRepository stores credentials keyed by email.
type UserRepository interface {
	// Create stores the user unless the email is taken, in which case it
	// returns domain.ErrAlreadyExists and leaves the stored user untouched.
	Create(ctx context.Context, user domain.User) error
	Get(ctx context.Context, email string) (domain.User, error)
}

// SessionRepository persists sessions with an expiry.
type SessionRepository interface {
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Touch(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// QuestionCache holds the question sets keyed by (topic, day).
type QuestionCache interface {
	StoreQuestions(ctx context.Context, topic, date string, questions []domain.Question) error
	GetQuestions(ctx context.Context, topic, date string) ([]domain.Question, error)
}

// QuestionArchive keeps a durable copy of every fetched question set.
type QuestionArchive interface {
	SaveQuestionSet(ctx context.Context, topic, date string, questions []domain.Question) error
}

// QuestionSource is the remote trivia API.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, categoryID int) ([]domain.Question, error)
}

// ScoreLedger keeps the global and personal sorted score sets.
type ScoreLedger interface {
	// Award adds amount to the user's personal score for topic and to the
	// user's global score.
	Award(ctx context.Context, username, topic string, amount int64) error
	Global(ctx context.Context) ([]domain.ScoreEntry, error)
	Personal(ctx context.Context, username string) ([]domain.ScoreEntry, error)
}
