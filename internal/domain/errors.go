package domain

import "errors"

var (
	// ErrNotFound is returned when a user or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when registering an email twice.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials is returned when a password does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoQuestionsAvailable is returned when no questions are cached for a topic today.
	ErrNoQuestionsAvailable = errors.New("no questions available")
	// ErrExternalSource marks failures of the trivia source.
	ErrExternalSource = errors.New("external source failure")
	// ErrStoreFailure marks failures of the backing store.
	ErrStoreFailure = errors.New("store failure")
	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidQuestionIndex is returned when a client-supplied index is out of range.
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	// ErrUnknownTopic is returned for topics without a category mapping.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrInvalidScope is returned for leaderboard scopes other than global/personal.
	ErrInvalidScope = errors.New("invalid scope")
	// ErrInvalidInput is returned when required fields are missing.
	ErrInvalidInput = errors.New("invalid input")
)
