package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"realorai-service/internal/domain"
)

// ErrUnexpectedStatus is wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status from stats server")

// StatusError reports a non-2xx answer from the stats server.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedStatus, e.Status, strings.TrimSpace(e.Body))
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// StatsClient talks to the stats HTTP API.
type StatsClient struct {
	http *resty.Client
}

// NewStatsClient targets baseURL, e.g. "http://localhost:8080".
func NewStatsClient(baseURL string) *StatsClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	return &StatsClient{http: c}
}

// SubmitScore posts one finished quiz.
func (c *StatsClient) SubmitScore(ctx context.Context, sub domain.ScoreSubmission) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post("/api/submit-score")
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	if resp.IsError() {
		return &StatusError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// Leaderboard fetches the current per-age-group statistics.
func (c *StatsClient) Leaderboard(ctx context.Context) ([]domain.AgeGroupStats, error) {
	var rows []domain.AgeGroupStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rows).
		Get("/api/leaderboard")
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	if resp.IsError() {
		return nil, &StatusError{Status: resp.StatusCode(), Body: resp.String()}
	}
	if rows == nil {
		rows = []domain.AgeGroupStats{}
	}
	return rows, nil
}
