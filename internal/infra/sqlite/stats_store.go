package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"realorai-service/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// StatsStore keeps counters in the age_group_stats table, one upsert per increment.
type StatsStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(db),
	}
}

func (s *StatsStore) Increment(ctx context.Context, group domain.AgeGroup, correct int64) error {
	_, err := s.sb.
		Insert("age_group_stats").
		Columns("age_group", "total_correct", "total_attempts").
		Values(string(group), correct, 1).
		Suffix(`ON CONFLICT (age_group) DO UPDATE SET
			total_correct = total_correct + excluded.total_correct,
			total_attempts = total_attempts + 1,
			updated_at = CURRENT_TIMESTAMP`).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("increment stats: %w", err)
	}
	return nil
}

func (s *StatsStore) Get(ctx context.Context, group domain.AgeGroup) (domain.StatsCounter, error) {
	var c domain.StatsCounter
	err := s.sb.
		Select("total_correct", "total_attempts").
		From("age_group_stats").
		Where(sq.Eq{"age_group": string(group)}).
		QueryRowContext(ctx).
		Scan(&c.TotalCorrect, &c.TotalAttempts)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatsCounter{}, nil
	}
	if err != nil {
		return domain.StatsCounter{}, fmt.Errorf("load stats: %w", err)
	}
	return c, nil
}
