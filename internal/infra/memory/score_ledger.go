package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// ScoreLedger is an in-memory implementation of app.ScoreLedger. Ties sort
// by name descending, the order Redis uses for a reversed range.
type ScoreLedger struct {
	mu       sync.RWMutex
	global   map[string]int64
	personal map[string]map[string]int64
}

func NewScoreLedger() *ScoreLedger {
	return &ScoreLedger{
		global:   make(map[string]int64),
		personal: make(map[string]map[string]int64),
	}
}

func (l *ScoreLedger) Award(_ context.Context, username, topic string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	topics, ok := l.personal[username]
	if !ok {
		topics = make(map[string]int64)
		l.personal[username] = topics
	}
	topics[topic] += amount
	l.global[username] += amount
	return nil
}

func (l *ScoreLedger) Global(_ context.Context) ([]domain.ScoreEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedEntries(l.global), nil
}

func (l *ScoreLedger) Personal(_ context.Context, username string) ([]domain.ScoreEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedEntries(l.personal[username]), nil
}

func sortedEntries(scores map[string]int64) []domain.ScoreEntry {
	entries := make([]domain.ScoreEntry, 0, len(scores))
	for name, score := range scores {
		entries = append(entries, domain.ScoreEntry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name > entries[j].Name
	})
	return entries
}
