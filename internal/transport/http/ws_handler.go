package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"trivia-quiz-service/internal/app"
)

// WSHandler streams the global leaderboard to websocket clients.
type WSHandler struct {
	scores   *app.ScoreService
	upgrader websocket.Upgrader
}

func NewWSHandler(scores *app.ScoreService) *WSHandler {
	return &WSHandler{
		scores: scores,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS sends the current leaderboard, then a fresh one after every award,
// until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := h.scores.Subscribe(r.Context())
	if err != nil {
		log.Printf("ws subscribe: %v", err)
		writeText(w, http.StatusInternalServerError, "Error retrieving the scores.")
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// The client never sends anything meaningful; reading only detects close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[any]{Type: "leaderboard", Payload: lb}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
