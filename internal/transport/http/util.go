package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/error?message="+url.QueryEscape(msg), http.StatusFound)
}

// maxAnswerBody bounds a next-question body; a real one is a few dozen bytes.
const maxAnswerBody = 4 << 10

type answerRequest struct {
	QuestionIndex json.RawMessage `json:"questionIndex"`
	Answer        string          `json:"answer"`
}

// parseAnswer accepts a JSON or form body. questionIndex may be a JSON
// number or a numeric string; anything else is rejected.
func parseAnswer(w http.ResponseWriter, r *http.Request) (int, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnswerBody)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, "", fmt.Errorf("invalid json: %w", err)
		}
		index, err := parseIndex(strings.Trim(string(req.QuestionIndex), `"`))
		return index, req.Answer, err
	}
	if err := r.ParseForm(); err != nil {
		return 0, "", fmt.Errorf("invalid form: %w", err)
	}
	index, err := parseIndex(r.PostFormValue("questionIndex"))
	return index, r.PostFormValue("answer"), err
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("questionIndex %q is not an integer", raw)
	}
	return index, nil
}
