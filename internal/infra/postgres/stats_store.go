package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"realorai-service/internal/domain"
)

// StatsStore keeps counters in the age_group_stats table. Each increment is a single
// upsert statement, so concurrent submissions are serialized by the row lock.
type StatsStore struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewStatsStore(pool *pgxpool.Pool) *StatsStore {
	return &StatsStore{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *StatsStore) Increment(ctx context.Context, group domain.AgeGroup, correct int64) error {
	query, args, err := s.sb.
		Insert("age_group_stats").
		Columns("age_group", "total_correct", "total_attempts").
		Values(string(group), correct, 1).
		Suffix(`ON CONFLICT (age_group) DO UPDATE SET
			total_correct = age_group_stats.total_correct + EXCLUDED.total_correct,
			total_attempts = age_group_stats.total_attempts + 1,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("increment stats: %w", err)
	}
	return nil
}

func (s *StatsStore) Get(ctx context.Context, group domain.AgeGroup) (domain.StatsCounter, error) {
	query, args, err := s.sb.
		Select("total_correct", "total_attempts").
		From("age_group_stats").
		Where(sq.Eq{"age_group": string(group)}).
		ToSql()
	if err != nil {
		return domain.StatsCounter{}, fmt.Errorf("build get: %w", err)
	}

	var c domain.StatsCounter
	err = s.pool.QueryRow(ctx, query, args...).Scan(&c.TotalCorrect, &c.TotalAttempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StatsCounter{}, nil
	}
	if err != nil {
		return domain.StatsCounter{}, fmt.Errorf("load stats: %w", err)
	}
	return c, nil
}
