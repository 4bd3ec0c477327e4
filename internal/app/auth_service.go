package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"trivia-quiz-service/internal/domain"
)

// DefaultSessionTTL is the sliding lifetime of a login session.
const DefaultSessionTTL = 30 * time.Minute

// AuthService registers users, checks passwords and manages sessions.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	ttl      time.Duration
	cost     int
	now      func() time.Time
}

func NewAuthService(users UserRepository, sessions SessionRepository, ttl time.Duration) *AuthService {
	return NewAuthServiceWithCost(users, sessions, ttl, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost lets tests use a cheap bcrypt cost.
func NewAuthServiceWithCost(users UserRepository, sessions SessionRepository, ttl time.Duration, cost int) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{users: users, sessions: sessions, ttl: ttl, cost: cost, now: time.Now}
}

// SessionTTL reports the sliding session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// Register creates an account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return domain.Session{}, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, domain.User{Email: email, Username: username, PasswordHash: string(hash)}); err != nil {
		return domain.Session{}, err
	}
	return s.startSession(ctx, username, email)
}

// Authenticate verifies the password for email and logs the user in.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.Get(ctx, email)
	if err != nil {
		return domain.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	return s.startSession(ctx, user.Username, user.Email)
}

// ResolveSession looks up a session and slides its expiry forward.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.sessions.Touch(ctx, token, s.ttl); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("touch session: %w", err)
	}
	session.Token = token
	session.ExpiresAt = s.now().Add(s.ttl)
	return session, nil
}

// Logout drops the session. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) startSession(ctx context.Context, username, email string) (domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return domain.Session{}, err
	}
	session := domain.Session{
		Token:     token,
		Username:  username,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
