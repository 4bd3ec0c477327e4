package memory

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"trivia-quiz-service/internal/domain"
)

// QuestionLoader fetches an archived question set on a cache miss.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, topic, date string) ([]domain.Question, error)
}

// QuestionCache keeps question sets per (topic, day) with a TTL. Writes
// overwrite individual indexes, matching the Redis hash layout.
type QuestionCache struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions map[int]domain.Question
	expiresAt time.Time
}

// NewQuestionCache builds a cache; loader may be nil.
func NewQuestionCache(loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

// NewQuestionCacheWithClock is test-only for deterministic expiry.
func NewQuestionCacheWithClock(loader QuestionLoader, ttl time.Duration, now func() time.Time) *QuestionCache {
	c := NewQuestionCache(loader, ttl)
	c.clock = now
	return c
}

func (c *QuestionCache) StoreQuestions(_ context.Context, topic, date string, questions []domain.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeLocked(setKey(topic, date), questions)
	return nil
}

func (c *QuestionCache) storeLocked(key string, questions []domain.Question) {
	now := c.clock()
	c.evictExpiredLocked(now)
	entry, ok := c.cache[key]
	if !ok || !c.live(entry, now) {
		entry = cachedSet{questions: make(map[int]domain.Question, len(questions))}
	}
	for i, q := range questions {
		entry.questions[i] = q
	}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttlWithJitter())
	}
	c.cache[key] = entry
}

func (c *QuestionCache) GetQuestions(ctx context.Context, topic, date string) ([]domain.Question, error) {
	key := setKey(topic, date)

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && c.live(entry, c.clock()) {
		c.mu.RUnlock()
		return ordered(entry.questions), nil
	}
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.evictExpiredLocked(c.clock())
		c.mu.Unlock()
	}

	if c.loader == nil {
		return []domain.Question{}, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && c.live(entry, c.clock()) {
			c.mu.RUnlock()
			return ordered(entry.questions), nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadQuestions(ctx, topic, date)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Question{}, nil
		}
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.storeLocked(key, questions)
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// evictExpiredLocked drops every set past its TTL; old days are never read
// again once the date rolls over.
func (c *QuestionCache) evictExpiredLocked(now time.Time) {
	for key, entry := range c.cache {
		if !c.live(entry, now) {
			delete(c.cache, key)
		}
	}
}

func (c *QuestionCache) live(entry cachedSet, now time.Time) bool {
	return entry.expiresAt.IsZero() || entry.expiresAt.After(now)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func ordered(questions map[int]domain.Question) []domain.Question {
	indexes := make([]int, 0, len(questions))
	for i := range questions {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	out := make([]domain.Question, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, questions[i])
	}
	return out
}

func setKey(topic, date string) string {
	return topic + ":" + date
}

// StaticQuestionLoader serves question sets from a map keyed by "topic:date"
// (useful for tests and demos).
type StaticQuestionLoader struct {
	sets map[string][]domain.Question
}

func NewStaticQuestionLoader(sets map[string][]domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{sets: sets}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, topic, date string) ([]domain.Question, error) {
	if questions, ok := l.sets[setKey(topic, date)]; ok {
		return questions, nil
	}
	return nil, domain.ErrNotFound
}
