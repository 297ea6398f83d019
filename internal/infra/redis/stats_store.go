package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"realorai-service/internal/domain"
)

const (
	fieldCorrect  = "totalCorrect"
	fieldAttempts = "totalAttempts"
)

// StatsStore keeps one hash per age group and increments it atomically:
//
//	HINCRBY quiz:stats:{group} totalCorrect {correct}
//	HINCRBY quiz:stats:{group} totalAttempts 1
//
// Both commands run inside MULTI/EXEC, so concurrent submissions never lose updates.
type StatsStore struct {
	client *redis.Client
}

func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{client: client}
}

func (s *StatsStore) Increment(ctx context.Context, group domain.AgeGroup, correct int64) error {
	key := s.key(group)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, fieldCorrect, correct)
		pipe.HIncrBy(ctx, key, fieldAttempts, 1)
		return nil
	})
	return err
}

func (s *StatsStore) Get(ctx context.Context, group domain.AgeGroup) (domain.StatsCounter, error) {
	fields, err := s.client.HGetAll(ctx, s.key(group)).Result()
	if err != nil {
		return domain.StatsCounter{}, err
	}
	var c domain.StatsCounter
	if raw, ok := fields[fieldCorrect]; ok {
		if c.TotalCorrect, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return domain.StatsCounter{}, err
		}
	}
	if raw, ok := fields[fieldAttempts]; ok {
		if c.TotalAttempts, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return domain.StatsCounter{}, err
		}
	}
	return c, nil
}

func (s *StatsStore) key(group domain.AgeGroup) string {
	return "quiz:stats:" + string(group)
}
