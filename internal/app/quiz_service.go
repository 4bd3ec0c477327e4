package app

import (
	"context"
	"log"
	"time"

	"trivia-quiz-service/internal/domain"
)

// DefaultPoints is awarded for every correct answer.
const DefaultPoints = 50

// QuestionProvider serves cached question sets.
type QuestionProvider interface {
	GetQuestions(ctx context.Context, topic, date string) ([]domain.Question, error)
}

// ScoreAwarder credits points for a correct answer.
type ScoreAwarder interface {
	Award(ctx context.Context, username, topic string, amount int64) error
}

// QuizService walks a player through today's questions for a topic. Progress
// lives on the client; every step is revalidated against the cached set.
type QuizService struct {
	questions QuestionProvider
	scores    ScoreAwarder
	points    int64
	now       func() time.Time
}

func NewQuizService(questions QuestionProvider, scores ScoreAwarder, points int) *QuizService {
	if points <= 0 {
		points = DefaultPoints
	}
	return &QuizService{questions: questions, scores: scores, points: int64(points), now: time.Now}
}

// WithClock is test-only for deterministic day keys.
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.now = now
	return s
}

// Start returns the first question of today's set for topic.
func (s *QuizService) Start(ctx context.Context, topic string) (domain.QuestionView, error) {
	questions, err := s.load(ctx, topic)
	if err != nil {
		return domain.QuestionView{}, err
	}
	return domain.QuestionView{
		Topic:          topic,
		Index:          0,
		TotalQuestions: len(questions),
		Question:       questions[0],
	}, nil
}

// Answer checks the answer for the question at index and advances the quiz.
// A correct answer credits the configured points to username; an anonymous
// player gets the result but no points.
func (s *QuizService) Answer(ctx context.Context, topic, username string, index int, answer string) (domain.AnswerResult, error) {
	questions, err := s.load(ctx, topic)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if index < 0 || index >= len(questions) {
		return domain.AnswerResult{}, domain.ErrInvalidQuestionIndex
	}

	correct := questions[index].CorrectAnswer == answer
	if correct {
		if username == "" {
			log.Printf("quiz: correct answer on %s without a session, no points awarded", topic)
		} else if err := s.scores.Award(ctx, username, topic, s.points); err != nil {
			return domain.AnswerResult{}, err
		}
	}

	next := index + 1
	result := domain.AnswerResult{
		NextIndex: next,
		Finished:  next >= len(questions),
		Correct:   correct,
	}
	if next < len(questions) {
		q := questions[next]
		result.Question = &q
	}
	return result, nil
}

func (s *QuizService) load(ctx context.Context, topic string) ([]domain.Question, error) {
	questions, err := s.questions.GetQuestions(ctx, topic, domain.DayKey(s.now()))
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}
	return questions, nil
}
