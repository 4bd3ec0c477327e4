package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"trivia-quiz-service/internal/domain"
)

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]

	view, err := s.quiz.Start(r.Context(), topic)
	if errors.Is(err, domain.ErrNoQuestionsAvailable) {
		s.views.render(w, http.StatusNotFound, "error", map[string]any{
			"ErrorMessage": "No questions available for this category.",
		})
		return
	}
	if err != nil {
		log.Printf("load questions for %s: %v", topic, err)
		writeText(w, http.StatusInternalServerError, "Error loading the questions.")
		return
	}
	s.views.render(w, http.StatusOK, "question", view)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]

	index, answer, err := parseAnswer(w, r)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	// Anonymous players may answer; they just do not score.
	session, _ := sessionFromContext(r)
	result, err := s.quiz.Answer(r.Context(), topic, session.Username, index, answer)
	switch {
	case errors.Is(err, domain.ErrInvalidQuestionIndex):
		writeText(w, http.StatusBadRequest, fmt.Sprintf("questionIndex %d is out of range", index))
		return
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		writeText(w, http.StatusNotFound, "No questions available for this category.")
		return
	case err != nil:
		log.Printf("answer %s/%d: %v", topic, index, err)
		writeText(w, http.StatusInternalServerError, "Error processing the answer.")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFetchQuestions(w http.ResponseWriter, r *http.Request) {
	report, err := s.questions.FetchAndCache(r.Context(), s.opts.Topics)
	if err != nil {
		log.Printf("fetch questions: %v", err)
		writeText(w, http.StatusInternalServerError, "Error updating questions.")
		return
	}

	var b strings.Builder
	b.WriteString("Questions updated.\n")
	for _, t := range report.Topics {
		if t.Err != nil {
			fmt.Fprintf(&b, "%s: failed\n", t.Topic)
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", t.Topic, t.Stored)
	}
	writeText(w, http.StatusOK, b.String())
}
