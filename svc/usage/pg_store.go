package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore implements ConditionalStore over the usage_records table. The
// upsert-with-increment runs entirely inside Postgres, so concurrent
// requests never lose increments.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a Postgres-backed usage store.
func NewPgStore(pool *pgxpool.Pool) ConditionalStore {
	return &pgStore{pool: pool}
}

func (s *pgStore) Count(ctx context.Context, userID uuid.UUID, usageType Type, period string) (int64, error) {
	const query = `
		SELECT count
		FROM usage_records
		WHERE user_id = $1 AND usage_type = $2 AND period = $3`

	var count int64
	err := s.pool.QueryRow(ctx, query, userID, string(usageType), period).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No record yet for this period
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *pgStore) Increment(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount int64) error {
	const query = `
		INSERT INTO usage_records (user_id, usage_type, period, count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (user_id, usage_type, period)
		DO UPDATE SET count = usage_records.count + EXCLUDED.count, updated_at = now()`

	_, err := s.pool.Exec(ctx, query, userID, string(usageType), period, amount)
	return err
}

// IncrementIfBelow relies on the conditional DO UPDATE: when the resulting
// count would exceed the limit, the update is skipped and no row is
// affected. The insert arm is guarded by the same condition on amount.
func (s *pgStore) IncrementIfBelow(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount, limit int64) (bool, error) {
	if amount > limit {
		return false, nil
	}

	const query = `
		INSERT INTO usage_records (user_id, usage_type, period, count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (user_id, usage_type, period)
		DO UPDATE SET count = usage_records.count + EXCLUDED.count, updated_at = now()
		WHERE usage_records.count + EXCLUDED.count <= $5`

	tag, err := s.pool.Exec(ctx, query, userID, string(usageType), period, amount, limit)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
