package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"trivia-quiz-service/internal/domain"
)

// DefaultFetchDelay spaces calls to the trivia source to stay under its rate limit.
const DefaultFetchDelay = 10 * time.Second

// QuestionService populates the question cache from the trivia source and
// serves cached question sets.
type QuestionService struct {
	source  QuestionSource
	cache   QuestionCache
	archive QuestionArchive
	delay   time.Duration
	sleep   func(time.Duration)
	now     func() time.Time
}

func NewQuestionService(source QuestionSource, cache QuestionCache, delay time.Duration) *QuestionService {
	return &QuestionService{
		source: source,
		cache:  cache,
		delay:  delay,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// WithArchive also writes every fetched set to archive.
func (s *QuestionService) WithArchive(archive QuestionArchive) *QuestionService {
	s.archive = archive
	return s
}

// WithClock is test-only for deterministic dates and delays.
func (s *QuestionService) WithClock(now func() time.Time, sleep func(time.Duration)) *QuestionService {
	if now != nil {
		s.now = now
	}
	if sleep != nil {
		s.sleep = sleep
	}
	return s
}

// Today returns the day key under which today's questions are stored.
func (s *QuestionService) Today() string {
	return domain.DayKey(s.now())
}

// FetchAndCache refreshes today's question set for each topic in order.
// Failures are isolated per topic and reported, not returned; the run ignores
// cancellation of ctx and always walks the whole topic list.
func (s *QuestionService) FetchAndCache(ctx context.Context, topics []string) (domain.FetchReport, error) {
	ctx = context.WithoutCancel(ctx)
	report := domain.FetchReport{Date: s.Today()}

	attempted, storeFailures := 0, 0
	for _, topic := range topics {
		categoryID, ok := domain.CategoryFor(topic)
		if !ok {
			log.Printf("fetch: no category defined for topic %q, skipping", topic)
			report.Topics = append(report.Topics, domain.TopicResult{Topic: topic, Err: domain.ErrUnknownTopic})
			continue
		}

		attempted++
		result, empty := s.fetchTopic(ctx, topic, categoryID)
		report.Topics = append(report.Topics, result)
		if errors.Is(result.Err, domain.ErrStoreFailure) {
			storeFailures++
		}
		if empty {
			continue
		}
		if s.delay > 0 {
			s.sleep(s.delay)
		}
	}

	if attempted > 0 && storeFailures == attempted {
		return report, fmt.Errorf("fetch questions: %w", domain.ErrStoreFailure)
	}
	return report, nil
}

// fetchTopic reports empty when the source returned no questions, in which
// case the caller skips the inter-call delay.
func (s *QuestionService) fetchTopic(ctx context.Context, topic string, categoryID int) (domain.TopicResult, bool) {
	result := domain.TopicResult{Topic: topic}

	questions, err := s.source.FetchQuestions(ctx, categoryID)
	if err != nil {
		log.Printf("fetch: topic %s: %v", topic, err)
		result.Err = err
		return result, false
	}
	if len(questions) == 0 {
		log.Printf("fetch: no questions returned for topic %s", topic)
		return result, true
	}

	date := s.Today()
	if err := s.cache.StoreQuestions(ctx, topic, date, questions); err != nil {
		log.Printf("fetch: store questions for %s: %v", topic, err)
		result.Err = err
		return result, false
	}
	if s.archive != nil {
		if err := s.archive.SaveQuestionSet(ctx, topic, date, questions); err != nil {
			// The cache already holds the set; the archive copy is best effort.
			log.Printf("fetch: archive questions for %s: %v", topic, err)
		}
	}

	result.Stored = len(questions)
	log.Printf("fetch: stored %d questions for %s on %s", len(questions), topic, date)
	return result, false
}

// GetQuestions returns the ordered question set for (topic, date), or an
// empty slice when none was fetched.
func (s *QuestionService) GetQuestions(ctx context.Context, topic, date string) ([]domain.Question, error) {
	questions, err := s.cache.GetQuestions(ctx, topic, date)
	if err != nil {
		return nil, fmt.Errorf("get questions %s/%s: %w", topic, date, err)
	}
	return questions, nil
}
