package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"trivia-quiz-service/internal/domain"
)

func TestUserStoreDuplicateKeepsOriginalHash(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewUserStore(newClient(mr))

	if err := store.Create(ctx, domain.User{Email: "a@x.io", Username: "alice", PasswordHash: "hash-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, domain.User{Email: "a@x.io", Username: "alice2", PasswordHash: "hash-2"}); err != domain.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	user, err := store.Get(ctx, "a@x.io")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.PasswordHash != "hash-1" || user.Username != "alice" || user.Email != "a@x.io" {
		t.Fatalf("unexpected user %+v", user)
	}
	if raw := mr.HGet("users", "a@x.io"); raw != `{"username":"alice","password":"hash-1"}` {
		t.Fatalf("unexpected stored record %s", raw)
	}
	if _, err := store.Get(ctx, "b@x.io"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
