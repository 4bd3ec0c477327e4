// Package http is the web front of the quiz: HTML views for the browser
// flows, JSON for answering questions, and a websocket for live scores.
package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

const DefaultCookieName = "quiz.sid"

// Options tune the HTTP surface.
type Options struct {
	CookieName   string
	SecureCookie bool
	// Topics refreshed by GET /fetch-questions and listed on the home page.
	Topics []string
	// Health reports backing store reachability for /healthz; nil means always healthy.
	Health func(ctx context.Context) error
}

// Server routes requests to the application services.
type Server struct {
	auth      *app.AuthService
	quiz      *app.QuizService
	questions *app.QuestionService
	scores    *app.ScoreService
	live      *WSHandler
	views     *views
	opts      Options
}

func NewServer(auth *app.AuthService, quiz *app.QuizService, questions *app.QuestionService, scores *app.ScoreService, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if len(opts.Topics) == 0 {
		opts.Topics = domain.DefaultTopics
	}
	return &Server{
		auth:      auth,
		quiz:      quiz,
		questions: questions,
		scores:    scores,
		live:      NewWSHandler(scores),
		views:     newViews(),
		opts:      opts,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/home", s.requireSession(s.handleHome)).Methods(http.MethodGet)
	r.HandleFunc("/error", s.handleError).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/category/{topic}", s.handleCategory).Methods(http.MethodGet)
	r.HandleFunc("/category/{topic}/next-question", s.handleNextQuestion).Methods(http.MethodPost)
	r.HandleFunc("/fetch-questions", s.handleFetchQuestions).Methods(http.MethodGet)

	r.HandleFunc("/scores/general", s.handleScoresGeneral).Methods(http.MethodGet)
	r.HandleFunc("/scores/personal", s.requireSession(s.handleScoresPersonal)).Methods(http.MethodGet)
	r.HandleFunc("/scores/live", s.live.ServeWS).Methods(http.MethodGet)

	r.Use(s.loggingMiddleware, s.sessionMiddleware)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeText(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	writeText(w, http.StatusOK, "ok")
}
