package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"realorai-service/internal/app"
	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

const maxBodyBytes = 1 << 20

// Handler serves the stats API.
type Handler struct {
	stats    *app.StatsService
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewHandler(stats *app.StatsService) *Handler {
	return &Handler{
		stats:    stats,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the router with logging, recovery and CORS applied to every route.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/leaderboard", h.handleLeaderboard)
	r.Post("/api/submit-score", h.handleSubmitScore)
	r.Get("/ws/leaderboard", h.ServeLeaderboardWS)
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// submitScoreRequest uses pointers so a missing number is distinguishable from zero.
type submitScoreRequest struct {
	AgeGroup string   `json:"ageGroup" validate:"required,oneof=10-19 20-29 30-39 40-49 50+"`
	Correct  *float64 `json:"correct" validate:"required"`
	Total    *float64 `json:"total" validate:"required"`
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := h.stats.Leaderboard(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("error fetching leaderboard")
		writeJSON(w, http.StatusInternalServerError, []domain.AgeGroupStats{})
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

func (h *Handler) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req submitScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.WithError(err).Debug("undecodable submission")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidSubmission.Error()})
		return
	}
	// Struct validation guarantees both pointers are set before they are dereferenced.
	if err := h.validate.Struct(req); err != nil || !integral(*req.Correct) || !integral(*req.Total) {
		log.WithField("ageGroup", req.AgeGroup).Debug("rejected submission")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidSubmission.Error()})
		return
	}

	err := h.stats.Submit(r.Context(), domain.ScoreSubmission{
		AgeGroup: domain.AgeGroup(req.AgeGroup),
		Correct:  int(*req.Correct),
		Total:    int(*req.Total),
	})
	switch {
	case errors.Is(err, domain.ErrInvalidAgeGroup):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidSubmission.Error()})
	case err != nil:
		log.WithError(err).Error("error submitting score")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to submit score"})
	default:
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// integral accepts whole numbers that fit a counter without precision loss.
func integral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) <= 1<<53
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
