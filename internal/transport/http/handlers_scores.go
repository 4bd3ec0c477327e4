package http

import (
	"log"
	"net/http"

	"trivia-quiz-service/internal/domain"
)

func (s *Server) handleScoresGeneral(w http.ResponseWriter, r *http.Request) {
	scores, err := s.scores.TopScores(r.Context(), domain.ScopeGlobal, "")
	if err != nil {
		log.Printf("global scores: %v", err)
		writeText(w, http.StatusInternalServerError, "Error retrieving the scores.")
		return
	}
	s.views.render(w, http.StatusOK, "scores_general", map[string]any{"Scores": scores})
}

func (s *Server) handleScoresPersonal(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r)
	scores, err := s.scores.TopScores(r.Context(), domain.ScopePersonal, session.Username)
	if err != nil {
		log.Printf("personal scores for %s: %v", session.Username, err)
		writeText(w, http.StatusInternalServerError, "Error retrieving the scores.")
		return
	}
	s.views.render(w, http.StatusOK, "scores_personal", map[string]any{
		"Username": session.Username,
		"Scores":   scores,
	})
}
