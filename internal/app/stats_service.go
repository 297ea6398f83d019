package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

// StatsRepository abstracts where per-age-group counters live (memory, Redis, SQL).
type StatsRepository interface {
	// Increment adds correct to TotalCorrect and one to TotalAttempts for group.
	Increment(ctx context.Context, group domain.AgeGroup, correct int64) error
	// Get returns the counter for group, zero-valued when nothing was recorded.
	Get(ctx context.Context, group domain.AgeGroup) (domain.StatsCounter, error)
}

// StatsService contains the score submission and leaderboard use cases.
type StatsService struct {
	repo          StatsRepository
	roundsPerQuiz int
	sf            singleflight.Group

	// publishMu orders snapshot reads with their delivery, so subscribers
	// never receive an older leaderboard after a newer one.
	publishMu   sync.Mutex
	mu          sync.Mutex
	subscribers map[chan []domain.AgeGroupStats]struct{}
}

func NewStatsService(repo StatsRepository, roundsPerQuiz int) *StatsService {
	return &StatsService{
		repo:          repo,
		roundsPerQuiz: roundsPerQuiz,
		subscribers:   make(map[chan []domain.AgeGroupStats]struct{}),
	}
}

// RoundsPerQuiz is the quiz length the leaderboard average assumes.
func (s *StatsService) RoundsPerQuiz() int {
	return s.roundsPerQuiz
}

// Submit records one finished quiz. Total is validated upstream but not stored.
func (s *StatsService) Submit(ctx context.Context, sub domain.ScoreSubmission) error {
	group, err := domain.ParseAgeGroup(string(sub.AgeGroup))
	if err != nil {
		return err
	}
	if err := s.repo.Increment(ctx, group, int64(sub.Correct)); err != nil {
		return fmt.Errorf("increment %s: %w", group, err)
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	// Subscribers are best-effort; a failed read must not fail the submission.
	lb, err := s.compute(context.WithoutCancel(ctx))
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warn("leaderboard refresh after submit failed")
		return nil
	}
	s.broadcast(lb)
	return nil
}

// Leaderboard returns one row per age group with at least one attempt, in AgeGroups order.
// Concurrent callers share a single store read, which is not bound to any one caller's cancellation.
func (s *StatsService) Leaderboard(ctx context.Context) ([]domain.AgeGroupStats, error) {
	shared := context.WithoutCancel(ctx)
	result, err, _ := s.sf.Do("leaderboard", func() (interface{}, error) {
		return s.compute(shared)
	})
	if err != nil {
		return nil, err
	}
	rows := result.([]domain.AgeGroupStats)
	out := make([]domain.AgeGroupStats, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *StatsService) compute(ctx context.Context) ([]domain.AgeGroupStats, error) {
	rows := make([]domain.AgeGroupStats, 0, len(domain.AgeGroups))
	for _, group := range domain.AgeGroups {
		counter, err := s.repo.Get(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", group, err)
		}
		if counter.TotalAttempts <= 0 {
			continue
		}
		rows = append(rows, domain.NewAgeGroupStats(group, counter, s.roundsPerQuiz))
	}
	return rows, nil
}

// Subscribe returns a channel that receives the leaderboard now and after every submission.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *StatsService) Subscribe(ctx context.Context) (<-chan []domain.AgeGroupStats, func(), error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	initial, err := s.compute(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.AgeGroupStats, 8)
	ch <- initial

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *StatsService) broadcast(lb []domain.AgeGroupStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Slow subscriber: drop its oldest snapshot so the newest always lands.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
