package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"trivia-quiz-service/internal/domain"
)

// ScoreLedger keeps leaderboards in sorted sets.
type ScoreLedger struct {
	client *redis.Client
}

func NewScoreLedger(client *redis.Client) *ScoreLedger {
	return &ScoreLedger{client: client}
}

// Award increments the personal and global sets in one MULTI/EXEC so readers
// never see one without the other.
func (l *ScoreLedger) Award(ctx context.Context, username, topic string, amount int64) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, personalScoreKey(username), float64(amount), topic)
		pipe.ZIncrBy(ctx, globalScoreKey, float64(amount), username)
		return nil
	})
	if err != nil {
		return storeErr("award score", err)
	}
	return nil
}

func (l *ScoreLedger) Global(ctx context.Context) ([]domain.ScoreEntry, error) {
	return l.rangeDesc(ctx, globalScoreKey)
}

func (l *ScoreLedger) Personal(ctx context.Context, username string) ([]domain.ScoreEntry, error) {
	return l.rangeDesc(ctx, personalScoreKey(username))
}

func (l *ScoreLedger) rangeDesc(ctx context.Context, key string) ([]domain.ScoreEntry, error) {
	results, err := l.client.ZRevRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, storeErr("range "+key, err)
	}
	entries := make([]domain.ScoreEntry, len(results))
	for i, z := range results {
		entries[i] = domain.ScoreEntry{
			Name:  fmt.Sprint(z.Member),
			Score: int64(z.Score),
		}
	}
	return entries, nil
}
