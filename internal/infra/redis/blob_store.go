package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

// BlobStatsStore keeps each age group as a JSON blob under "stats-{group}" and updates it
// with a plain GET, modify, SET. There is no WATCH or versioning: two submissions for the
// same group racing between GET and SET lose one increment (last write wins).
type BlobStatsStore struct {
	client *redis.Client
}

func NewBlobStatsStore(client *redis.Client) *BlobStatsStore {
	return &BlobStatsStore{client: client}
}

func (s *BlobStatsStore) Increment(ctx context.Context, group domain.AgeGroup, correct int64) error {
	key := s.key(group)
	c, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	c.TotalCorrect += correct
	c.TotalAttempts++

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *BlobStatsStore) Get(ctx context.Context, group domain.AgeGroup) (domain.StatsCounter, error) {
	return s.read(ctx, s.key(group))
}

// read treats a missing or unreadable blob as an empty counter.
func (s *BlobStatsStore) read(ctx context.Context, key string) (domain.StatsCounter, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.StatsCounter{}, nil
	}
	if err != nil {
		return domain.StatsCounter{}, err
	}
	var c domain.StatsCounter
	if err := json.Unmarshal(raw, &c); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("key", key).Warn("discarding unreadable stats blob")
		return domain.StatsCounter{}, nil
	}
	return c, nil
}

func (s *BlobStatsStore) key(group domain.AgeGroup) string {
	return "stats-" + string(group)
}
