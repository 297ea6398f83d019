package http

import (
	"net/http"

	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeLeaderboardWS upgrades to a websocket and pushes the leaderboard on connect and
// after every accepted submission. Inbound frames are read only to notice the close.
func (h *Handler) ServeLeaderboardWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel, err := h.stats.Subscribe(r.Context())
	if err != nil {
		log.WithError(err).Error("leaderboard subscribe failed")
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "leaderboard unavailable"}})
		return
	}
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	// Only this goroutine writes to conn.
	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[[]domain.AgeGroupStats]{Type: "leaderboard", Payload: lb}); err != nil {
				log.WithError(err).Debug("ws write failed")
				return
			}
		case <-closed:
			return
		}
	}
}
