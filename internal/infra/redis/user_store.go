package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"trivia-quiz-service/internal/domain"
)

// UserStore keeps credentials in a single hash keyed by email.
type UserStore struct {
	client *redis.Client
}

func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// Create uses HSETNX so a duplicate registration never replaces the stored hash.
func (s *UserStore) Create(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	created, err := s.client.HSetNX(ctx, usersKey, user.Email, data).Result()
	if err != nil {
		return storeErr("create user", err)
	}
	if !created {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, email string) (domain.User, error) {
	raw, err := s.client.HGet(ctx, usersKey, email).Result()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, storeErr("get user", err)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	user.Email = email
	return user, nil
}
