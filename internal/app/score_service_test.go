package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func TestAwardAccumulatesPerUserAndTopic(t *testing.T) {
	ctx := context.Background()
	svc := NewScoreService(memory.NewScoreLedger())

	for _, a := range []award{
		{"ana", "geografia", 50},
		{"luis", "historia", 50},
		{"ana", "geografia", 50},
		{"ana", "historia", 50},
	} {
		if err := svc.Award(ctx, a.user, a.topic, a.amount); err != nil {
			t.Fatalf("award %+v: %v", a, err)
		}
	}

	global, err := svc.TopScores(ctx, domain.ScopeGlobal, "")
	if err != nil {
		t.Fatalf("global: %v", err)
	}
	want := []domain.ScoreEntry{{Name: "ana", Score: 150}, {Name: "luis", Score: 50}}
	if len(global) != 2 || global[0] != want[0] || global[1] != want[1] {
		t.Fatalf("global = %+v, want %+v", global, want)
	}

	personal, err := svc.TopScores(ctx, domain.ScopePersonal, "ana")
	if err != nil {
		t.Fatalf("personal: %v", err)
	}
	if len(personal) != 2 || personal[0] != (domain.ScoreEntry{Name: "geografia", Score: 100}) {
		t.Fatalf("unexpected personal board: %+v", personal)
	}
}

func TestTopScoresValidation(t *testing.T) {
	svc := NewScoreService(memory.NewScoreLedger())
	if _, err := svc.TopScores(context.Background(), "weekly", ""); !errors.Is(err, domain.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
	if _, err := svc.TopScores(context.Background(), domain.ScopePersonal, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Award(context.Background(), "", "geografia", 50); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	ctx := context.Background()
	svc := NewScoreService(memory.NewScoreLedger())

	ch, cancel, err := svc.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	initial := <-ch
	if initial.Scope != domain.ScopeGlobal || len(initial.Entries) != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", initial)
	}

	if err := svc.Award(ctx, "ana", "geografia", 50); err != nil {
		t.Fatalf("award: %v", err)
	}
	select {
	case lb := <-ch:
		if len(lb.Entries) != 1 || lb.Entries[0].Score != 50 {
			t.Fatalf("unexpected snapshot: %+v", lb)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot after award")
	}
}

func TestSlowSubscriberKeepsLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := NewScoreService(memory.NewScoreLedger())
	ch, cancel, err := svc.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	for i := 0; i < 20; i++ {
		if err := svc.Award(ctx, "ana", "geografia", 50); err != nil {
			t.Fatalf("award: %v", err)
		}
	}

	var last domain.Leaderboard
	for len(ch) > 0 {
		last = <-ch
	}
	if len(last.Entries) != 1 || last.Entries[0].Score != 1000 {
		t.Fatalf("expected latest snapshot to survive, got %+v", last)
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
}

// pausingLedger blocks the next Global call after it has read the board,
// until release is closed.
type pausingLedger struct {
	ScoreLedger
	mu      sync.Mutex
	armed   bool
	read    chan struct{}
	release chan struct{}
	awarded chan struct{}
}

func newPausingLedger() *pausingLedger {
	return &pausingLedger{
		ScoreLedger: memory.NewScoreLedger(),
		read:        make(chan struct{}),
		release:     make(chan struct{}),
		awarded:     make(chan struct{}, 16),
	}
}

func (l *pausingLedger) arm() {
	l.mu.Lock()
	l.armed = true
	l.mu.Unlock()
}

func (l *pausingLedger) Award(ctx context.Context, username, topic string, amount int64) error {
	err := l.ScoreLedger.Award(ctx, username, topic, amount)
	l.awarded <- struct{}{}
	return err
}

func (l *pausingLedger) Global(ctx context.Context) ([]domain.ScoreEntry, error) {
	entries, err := l.ScoreLedger.Global(ctx)
	l.mu.Lock()
	pause := l.armed
	l.armed = false
	l.mu.Unlock()
	if pause {
		close(l.read)
		<-l.release
	}
	return entries, err
}

func TestSubscribeSeesAwardRacingWithFirstSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := newPausingLedger()
	svc := NewScoreService(ledger)

	ledger.arm()
	type subscribed struct {
		ch     <-chan domain.Leaderboard
		cancel func()
		err    error
	}
	subDone := make(chan subscribed, 1)
	go func() {
		ch, cancel, err := svc.Subscribe(ctx)
		subDone <- subscribed{ch, cancel, err}
	}()
	<-ledger.read

	awardDone := make(chan error, 1)
	go func() { awardDone <- svc.Award(ctx, "alice", "geografia", 50) }()
	<-ledger.awarded
	close(ledger.release)

	sub := <-subDone
	if sub.err != nil {
		t.Fatalf("subscribe: %v", sub.err)
	}
	defer sub.cancel()
	if err := <-awardDone; err != nil {
		t.Fatalf("award: %v", err)
	}

	timeout := time.After(time.Second)
	for {
		select {
		case lb := <-sub.ch:
			if len(lb.Entries) == 1 && lb.Entries[0].Score == 50 {
				return
			}
		case <-timeout:
			t.Fatal("subscriber never saw the award made during its first snapshot")
		}
	}
}

func TestPublishDoesNotHoldLockDuringSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := newPausingLedger()
	svc := NewScoreService(ledger)

	_, cancel, err := svc.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ledger.arm()
	awardDone := make(chan error, 1)
	go func() { awardDone <- svc.Award(ctx, "alice", "geografia", 50) }()
	<-ledger.read

	cancelled := make(chan struct{})
	go func() {
		cancel()
		close(cancelled)
	}()
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("cancel blocked behind the leaderboard read")
	}

	close(ledger.release)
	if err := <-awardDone; err != nil {
		t.Fatalf("award: %v", err)
	}
}
