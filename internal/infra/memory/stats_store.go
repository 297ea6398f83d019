package memory

import (
	"context"
	"sync"

	"realorai-service/internal/domain"
)

// StatsStore is an in-memory implementation of app.StatsRepository.
// Increments hold the lock for the whole read-modify-write, so none are lost.
type StatsStore struct {
	mu       sync.RWMutex
	counters map[domain.AgeGroup]domain.StatsCounter
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		counters: make(map[domain.AgeGroup]domain.StatsCounter),
	}
}

func (s *StatsStore) Increment(_ context.Context, group domain.AgeGroup, correct int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counters[group]
	c.TotalCorrect += correct
	c.TotalAttempts++
	s.counters[group] = c
	return nil
}

func (s *StatsStore) Get(_ context.Context, group domain.AgeGroup) (domain.StatsCounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[group], nil
}
