package redis

import (
	"fmt"

	"trivia-quiz-service/internal/domain"
)

// Key layout:
//
//	HSET users {email} {"username":..,"password":..}
//	HSET questions:{topic}:{YYYY-MM-DD} {index} {question json}
//	ZINCRBY scores:global {amount} {username}
//	ZINCRBY scores:personal:{username} {amount} {topic}
//	SET session:{token} {session json} EX ttl
const (
	usersKey       = "users"
	globalScoreKey = "scores:global"
)

func questionsKey(topic, date string) string {
	return "questions:" + topic + ":" + date
}

func personalScoreKey(username string) string {
	return "scores:personal:" + username
}

func sessionKey(token string) string {
	return "session:" + token
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
