// Package opentdb is a client for the Open Trivia Database question API.
package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trivia-quiz-service/internal/domain"
)

const DefaultBaseURL = "https://opentdb.com/api.php"

// Response codes documented by the API.
const (
	codeSuccess   = 0
	codeNoResults = 1
)

// Options select the batch requested from the API.
type Options struct {
	BaseURL    string
	Amount     int
	Difficulty string
	Type       string
	Lang       string
	Timeout    time.Duration
}

// DefaultOptions asks for three easy true/false questions in Spanish.
func DefaultOptions() Options {
	return Options{
		BaseURL:    DefaultBaseURL,
		Amount:     3,
		Difficulty: "easy",
		Type:       "boolean",
		Lang:       "es",
		Timeout:    10 * time.Second,
	}
}

// Client implements app.QuestionSource.
type Client struct {
	http *http.Client
	opts Options
}

func NewClient(opts Options) *Client {
	defaults := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.Amount <= 0 {
		opts.Amount = defaults.Amount
	}
	if opts.Difficulty == "" {
		opts.Difficulty = defaults.Difficulty
	}
	if opts.Type == "" {
		opts.Type = defaults.Type
	}
	if opts.Lang == "" {
		opts.Lang = defaults.Lang
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	return &Client{http: &http.Client{Timeout: opts.Timeout}, opts: opts}
}

type apiResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

// FetchQuestions requests one batch for categoryID. A "no results" reply is
// an empty slice, not an error.
func (c *Client) FetchQuestions(ctx context.Context, categoryID int) ([]domain.Question, error) {
	endpoint, err := c.endpoint(categoryID)
	if err != nil {
		return nil, err
	}
	log.Printf("opentdb: fetching %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrExternalSource, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrExternalSource, err)
	}
	switch body.ResponseCode {
	case codeSuccess:
	case codeNoResults:
		return []domain.Question{}, nil
	default:
		return nil, fmt.Errorf("%w: response code %d", domain.ErrExternalSource, body.ResponseCode)
	}

	for i := range body.Results {
		unescape(&body.Results[i])
	}
	return body.Results, nil
}

func (c *Client) endpoint(categoryID int) (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("amount", strconv.Itoa(c.opts.Amount))
	q.Set("category", strconv.Itoa(categoryID))
	q.Set("difficulty", c.opts.Difficulty)
	q.Set("type", c.opts.Type)
	q.Set("lang", c.opts.Lang)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// The API HTML-encodes text fields by default.
func unescape(q *domain.Question) {
	q.Prompt = html.UnescapeString(q.Prompt)
	q.Category = html.UnescapeString(q.Category)
	q.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
	for i, a := range q.IncorrectAnswers {
		q.IncorrectAnswers[i] = html.UnescapeString(a)
	}
}
