package http

import (
	"errors"
	"log"
	"net/http"

	"trivia-quiz-service/internal/domain"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionFromContext(r); ok {
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}
	s.views.render(w, http.StatusOK, "login", nil)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r)
	s.views.render(w, http.StatusOK, "home", map[string]any{
		"Username": session.Username,
		"Topics":   s.opts.Topics,
	})
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, http.StatusOK, "error", map[string]any{
		"ErrorMessage": r.URL.Query().Get("message"),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "Invalid registration form.")
		return
	}
	session, err := s.auth.Register(r.Context(), r.PostFormValue("email"), r.PostFormValue("username"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		redirectError(w, r, "The user is already registered.")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		redirectError(w, r, "Username, email and password are required.")
		return
	case err != nil:
		log.Printf("register: %v", err)
		redirectError(w, r, "Error registering the user.")
		return
	}
	s.setCookie(w, session.Token)
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "Invalid login form.")
		return
	}
	session, err := s.auth.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		redirectError(w, r, "The user does not exist.")
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		redirectError(w, r, "Incorrect password.")
		return
	case err != nil:
		log.Printf("login: %v", err)
		redirectError(w, r, "Error logging in.")
		return
	}
	s.setCookie(w, session.Token)
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if session, ok := sessionFromContext(r); ok {
		if err := s.auth.Logout(r.Context(), session.Token); err != nil {
			log.Printf("logout: %v", err)
		}
	}
	s.clearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
