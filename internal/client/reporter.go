package client

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

// API is the subset of StatsClient the Reporter needs.
type API interface {
	SubmitScore(ctx context.Context, sub domain.ScoreSubmission) error
	Leaderboard(ctx context.Context) ([]domain.AgeGroupStats, error)
}

// Reporter submits finished sessions and keeps the last leaderboard it fetched.
// Failures are logged, never returned.
type Reporter struct {
	api API

	mu          sync.RWMutex
	leaderboard []domain.AgeGroupStats
}

func NewReporter(api API) *Reporter {
	return &Reporter{api: api, leaderboard: []domain.AgeGroupStats{}}
}

// SubmitScore reports st when it is complete and has an age group; otherwise it does nothing.
// It reports whether a submission was accepted by the server.
func (r *Reporter) SubmitScore(ctx context.Context, st domain.GameState) bool {
	if st.AgeGroup == "" || !st.Complete {
		return false
	}
	correct := 0
	for _, a := range st.Answers {
		if a.Correct {
			correct++
		}
	}
	sub := domain.ScoreSubmission{AgeGroup: st.AgeGroup, Correct: correct, Total: len(st.Answers)}
	if err := r.api.SubmitScore(ctx, sub); err != nil {
		logger.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"ageGroup": sub.AgeGroup,
			"correct":  sub.Correct,
			"total":    sub.Total,
		}).Error("error submitting score")
		return false
	}
	return true
}

// FetchLeaderboard replaces the cached view on success and keeps it on failure.
func (r *Reporter) FetchLeaderboard(ctx context.Context) {
	rows, err := r.api.Leaderboard(ctx)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("error fetching leaderboard")
		return
	}
	r.mu.Lock()
	r.leaderboard = rows
	r.mu.Unlock()
}

// Leaderboard returns a copy of the cached view.
func (r *Reporter) Leaderboard() []domain.AgeGroupStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AgeGroupStats, len(r.leaderboard))
	copy(out, r.leaderboard)
	return out
}
