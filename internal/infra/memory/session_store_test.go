package memory

import (
	"context"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(func() time.Time { return now })

	if err := store.Save(ctx, domain.Session{Token: "tok", Username: "alice"}, 30*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	session, err := store.Get(ctx, "tok")
	if err != nil || session.Username != "alice" {
		t.Fatalf("expected alice session, got %+v (%v)", session, err)
	}

	now = now.Add(20 * time.Minute)
	if err := store.Touch(ctx, "tok", 30*time.Minute); err != nil {
		t.Fatalf("touch: %v", err)
	}
	now = now.Add(20 * time.Minute)
	if _, err := store.Get(ctx, "tok"); err != nil {
		t.Fatalf("expected sliding expiry to keep session alive, got %v", err)
	}

	now = now.Add(31 * time.Minute)
	if _, err := store.Get(ctx, "tok"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected expired session, got %v", err)
	}

	_ = store.Save(ctx, domain.Session{Token: "tok2", Username: "bob"}, time.Minute)
	_ = store.Delete(ctx, "tok2")
	if _, err := store.Get(ctx, "tok2"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected deleted session, got %v", err)
	}
}
