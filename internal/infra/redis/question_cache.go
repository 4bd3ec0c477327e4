package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"trivia-quiz-service/internal/domain"
)

// QuestionLoader fetches an archived question set on a cache miss.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, topic, date string) ([]domain.Question, error)
}

// QuestionCache stores each day's question set for a topic as a hash of
// index -> question JSON and falls back to an optional loader on a miss.
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
}

// NewQuestionCache builds a cache; loader may be nil and ttl zero disables expiry.
func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
	}
}

// StoreQuestions writes one field per index. The writes are pipelined, not
// transactional: a concurrent reader may see a partially replaced set.
func (c *QuestionCache) StoreQuestions(ctx context.Context, topic, date string, questions []domain.Question) error {
	key := questionsKey(topic, date)
	pipe := c.client.Pipeline()
	for i, q := range questions {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %d: %w", i, err)
		}
		pipe.HSet(ctx, key, strconv.Itoa(i), data)
	}
	if ttl := c.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("store questions", err)
	}
	return nil
}

func (c *QuestionCache) GetQuestions(ctx context.Context, topic, date string) ([]domain.Question, error) {
	key := questionsKey(topic, date)

	fields, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, storeErr("get questions", err)
	}
	if len(fields) > 0 || c.loader == nil {
		return decodeQuestions(fields)
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := c.client.HGetAll(ctx, key).Result()
		if err == nil && len(fields) > 0 {
			return decodeQuestions(fields)
		}

		questions, err := c.loader.LoadQuestions(ctx, topic, date)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Question{}, nil
		}
		if err != nil {
			return nil, err
		}
		if err := c.StoreQuestions(ctx, topic, date, questions); err != nil {
			return nil, err
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func decodeQuestions(fields map[string]string) ([]domain.Question, error) {
	type indexed struct {
		index    int
		question domain.Question
	}
	items := make([]indexed, 0, len(fields))
	for field, raw := range fields {
		i, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("question field %q: %w", field, err)
		}
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("unmarshal question %d: %w", i, err)
		}
		items = append(items, indexed{index: i, question: q})
	}
	sort.Slice(items, func(a, b int) bool { return items[a].index < items[b].index })

	questions := make([]domain.Question, len(items))
	for i, it := range items {
		questions[i] = it.question
	}
	return questions, nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
