package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"trivia-quiz-service/internal/domain"
)

// ScoreService awards points and serves leaderboards. It also fans the
// global leaderboard out to live subscribers after every award.
type ScoreService struct {
	ledger ScoreLedger
	now    func() time.Time

	// seq orders snapshots: one taken under a higher seq saw every award
	// whose publish drew a lower one.
	seq atomic.Uint64

	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]*subscriber
}

type subscriber struct {
	lastSeq uint64
}

func NewScoreService(ledger ScoreLedger) *ScoreService {
	return &ScoreService{
		ledger:      ledger,
		now:         time.Now,
		subscribers: make(map[chan domain.Leaderboard]*subscriber),
	}
}

// Award credits amount to username under topic, personally and globally.
func (s *ScoreService) Award(ctx context.Context, username, topic string, amount int64) error {
	if username == "" || topic == "" {
		return domain.ErrInvalidInput
	}
	if err := s.ledger.Award(ctx, username, topic, amount); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// TopScores returns a leaderboard sorted by score descending. userID is only
// used for the personal scope.
func (s *ScoreService) TopScores(ctx context.Context, scope, userID string) ([]domain.ScoreEntry, error) {
	switch scope {
	case domain.ScopeGlobal:
		return s.ledger.Global(ctx)
	case domain.ScopePersonal:
		if userID == "" {
			return nil, domain.ErrInvalidInput
		}
		return s.ledger.Personal(ctx, userID)
	default:
		return nil, domain.ErrInvalidScope
	}
}

// Subscribe returns a channel that receives global leaderboard snapshots,
// starting with the current one. The caller must invoke cancel.
func (s *ScoreService) Subscribe(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	// Registration and the first snapshot happen under one lock so an award
	// racing with Subscribe is either in the snapshot or published after it.
	s.mu.Lock()
	seq := s.seq.Add(1)
	initial, err := s.snapshot(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	ch := make(chan domain.Leaderboard, 8)
	ch <- initial
	s.subscribers[ch] = &subscriber{lastSeq: seq}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *ScoreService) snapshot(ctx context.Context) (domain.Leaderboard, error) {
	entries, err := s.ledger.Global(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{Scope: domain.ScopeGlobal, Entries: entries, UpdatedAt: s.now()}, nil
}

func (s *ScoreService) publish(ctx context.Context) {
	s.mu.Lock()
	idle := len(s.subscribers) == 0
	s.mu.Unlock()
	if idle {
		return
	}

	seq := s.seq.Add(1)
	lb, err := s.snapshot(ctx)
	if err != nil {
		log.Printf("scores: leaderboard snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch, sub := range s.subscribers {
		if seq <= sub.lastSeq {
			// A newer board already reached this subscriber.
			continue
		}
		sub.lastSeq = seq
		select {
		case ch <- lb:
		default:
			// Slow subscriber: replace its oldest pending snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
