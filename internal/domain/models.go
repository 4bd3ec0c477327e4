package domain

import "time"

// User is a registered account. Email is the unique key.
type User struct {
	Email        string `json:"-"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}

// Session is the server-side login state behind the session cookie.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Question is a trivia question as returned by the external source.
// CorrectAnswer is a boolean rendered as a string ("True" / "False").
type Question struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Prompt           string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// ScoreEntry is one row of a leaderboard.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

// Leaderboard captures an ordered scoreboard snapshot.
type Leaderboard struct {
	Scope     string       `json:"scope"`
	Entries   []ScoreEntry `json:"entries"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// QuestionView is what a client needs to render one step of a quiz.
type QuestionView struct {
	Topic          string   `json:"topic"`
	Index          int      `json:"index"`
	TotalQuestions int      `json:"totalQuestions"`
	Question       Question `json:"question"`
}

// AnswerResult summarizes the outcome of submitting an answer.
type AnswerResult struct {
	Question  *Question `json:"question,omitempty"`
	NextIndex int       `json:"nextIndex"`
	Finished  bool      `json:"finished"`
	Correct   bool      `json:"correct"`
}

// TopicResult records what happened to one topic during a fetch run.
type TopicResult struct {
	Topic  string `json:"topic"`
	Stored int    `json:"stored"`
	Err    error  `json:"-"`
}

// FetchReport summarizes a fetch run across topics.
type FetchReport struct {
	Date   string        `json:"date"`
	Topics []TopicResult `json:"topics"`
}

// Stored returns the number of questions written across all topics.
func (r FetchReport) Stored() int {
	total := 0
	for _, t := range r.Topics {
		total += t.Stored
	}
	return total
}
