package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/opentdb"
	pgarchive "trivia-quiz-service/internal/infra/postgres"
	redisstore "trivia-quiz-service/internal/infra/redis"
)

// services holds the wired application layer and the connections it owns.
type services struct {
	auth      *app.AuthService
	quiz      *app.QuizService
	questions *app.QuestionService
	scores    *app.ScoreService
	topics    []string

	redis *redis.Client
	pool  *pgxpool.Pool
}

// buildServices connects to Redis and Postgres when configured and falls
// back to in-memory adapters for anything left out of the config.
func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	s := &services{topics: cfg.Trivia.Topics}
	if len(s.topics) == 0 {
		s.topics = domain.DefaultTopics
	}

	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			MaxRetries: cfg.Redis.MaxRetries,
		})
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
	} else {
		log.Printf("redis not configured, using in-memory stores")
	}

	var archive *pgarchive.QuestionArchive
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.pool = pool
		archive = pgarchive.NewQuestionArchive(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 48*time.Hour)
	var (
		users    app.UserRepository
		sessions app.SessionRepository
		cache    app.QuestionCache
		ledger   app.ScoreLedger
	)
	if s.redis != nil {
		var loader redisstore.QuestionLoader
		if archive != nil {
			loader = archive
		}
		users = redisstore.NewUserStore(s.redis)
		sessions = redisstore.NewSessionStore(s.redis)
		cache = redisstore.NewQuestionCache(s.redis, loader, quizTTL)
		ledger = redisstore.NewScoreLedger(s.redis)
	} else {
		var loader memory.QuestionLoader
		if archive != nil {
			loader = archive
		}
		users = memory.NewUserStore()
		sessions = memory.NewSessionStore()
		cache = memory.NewQuestionCache(loader, quizTTL)
		ledger = memory.NewScoreLedger()
	}

	source := opentdb.NewClient(opentdb.Options{
		BaseURL:    cfg.Trivia.BaseURL,
		Amount:     cfg.Trivia.Amount,
		Difficulty: cfg.Trivia.Difficulty,
		Type:       cfg.Trivia.Type,
		Lang:       cfg.Trivia.Lang,
		Timeout:    config.TTLDuration(cfg.Trivia.Timeout, 10*time.Second),
	})

	s.questions = app.NewQuestionService(source, cache, config.TTLDuration(cfg.Trivia.Delay, app.DefaultFetchDelay))
	if archive != nil {
		s.questions.WithArchive(archive)
	}
	s.auth = app.NewAuthService(users, sessions, config.TTLDuration(cfg.Session.TTL, app.DefaultSessionTTL))
	s.scores = app.NewScoreService(ledger)
	s.quiz = app.NewQuizService(s.questions, s.scores, config.IntOr(cfg.Quiz.Points, app.DefaultPoints))
	return s, nil
}

// health reports whether the backing store answers.
func (s *services) health(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Ping(ctx).Err()
}

func (s *services) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
