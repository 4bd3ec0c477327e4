package memory

import (
	"context"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestUserStoreRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	if err := store.Create(ctx, domain.User{Email: "a@x.io", Username: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, domain.User{Email: "a@x.io", Username: "mallory", PasswordHash: "h2"}); err != domain.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	user, err := store.Get(ctx, "a@x.io")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.PasswordHash != "h1" || user.Username != "alice" {
		t.Fatalf("expected original user kept, got %+v", user)
	}
	if _, err := store.Get(ctx, "nobody@x.io"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
