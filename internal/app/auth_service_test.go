package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func newAuth(t *testing.T) (*AuthService, *memory.UserStore, *memory.SessionStore) {
	t.Helper()
	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	return NewAuthServiceWithCost(users, sessions, time.Minute, bcrypt.MinCost), users, sessions
}

func TestRegisterStoresHashAndStartsSession(t *testing.T) {
	ctx := context.Background()
	auth, users, sessions := newAuth(t)

	session, err := auth.Register(ctx, "ana@example.com", "ana", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.Token == "" || session.Username != "ana" {
		t.Fatalf("unexpected session: %+v", session)
	}

	user, err := users.Get(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.PasswordHash == "pw" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}

	if _, err := sessions.Get(ctx, session.Token); err != nil {
		t.Fatalf("session not saved: %v", err)
	}
}

func TestRegisterDuplicateKeepsOriginalHash(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuth(t)

	if _, err := auth.Register(ctx, "ana@example.com", "ana", "first"); err != nil {
		t.Fatalf("register: %v", err)
	}
	before, _ := users.Get(ctx, "ana@example.com")

	_, err := auth.Register(ctx, "ana@example.com", "other", "second")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	after, _ := users.Get(ctx, "ana@example.com")
	if after != before {
		t.Fatalf("stored user changed: %+v -> %+v", before, after)
	}
	if _, err := auth.Authenticate(ctx, "ana@example.com", "first"); err != nil {
		t.Fatalf("original password should still work: %v", err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	auth, _, _ := newAuth(t)
	for _, in := range [][3]string{
		{"", "ana", "pw"},
		{"ana@example.com", "  ", "pw"},
		{"ana@example.com", "ana", ""},
	} {
		if _, err := auth.Register(context.Background(), in[0], in[1], in[2]); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("register %q: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

// countingSessions records every saved session.
type countingSessions struct {
	SessionRepository
	saved int
}

func (c *countingSessions) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	c.saved++
	return c.SessionRepository.Save(ctx, session, ttl)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	sessions := &countingSessions{SessionRepository: memory.NewSessionStore()}
	auth := NewAuthServiceWithCost(memory.NewUserStore(), sessions, time.Minute, bcrypt.MinCost)
	if _, err := auth.Register(ctx, "ana@example.com", "ana", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	savedAfterRegister := sessions.saved

	if _, err := auth.Authenticate(ctx, "nobody@example.com", "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	session, err := auth.Authenticate(ctx, "ana@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.Token != "" {
		t.Fatalf("no session expected on bad password")
	}
	if sessions.saved != savedAfterRegister {
		t.Fatalf("failed logins must not save a session, saved %d", sessions.saved-savedAfterRegister)
	}

	session, err = auth.Authenticate(ctx, "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.Username != "ana" {
		t.Fatalf("expected username ana, got %q", session.Username)
	}
	if _, err := sessions.Get(ctx, session.Token); err != nil {
		t.Fatalf("session not saved: %v", err)
	}
}

func TestResolveSessionSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	sessions := memory.NewSessionStoreWithClock(clock)
	auth := NewAuthServiceWithCost(memory.NewUserStore(), sessions, time.Minute, bcrypt.MinCost)
	auth.now = clock

	session, err := auth.Register(ctx, "ana@example.com", "ana", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now = now.Add(50 * time.Second)
	resolved, err := auth.ResolveSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !resolved.ExpiresAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("expiry not extended: %v", resolved.ExpiresAt)
	}

	// Still alive past the original expiry thanks to the touch.
	now = now.Add(50 * time.Second)
	if _, err := auth.ResolveSession(ctx, session.Token); err != nil {
		t.Fatalf("resolve after slide: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := auth.ResolveSession(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth(t)
	session, err := auth.Register(ctx, "ana@example.com", "ana", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := auth.Logout(ctx, session.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.ResolveSession(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := auth.Logout(ctx, ""); err != nil {
		t.Fatalf("empty token logout: %v", err)
	}
}
