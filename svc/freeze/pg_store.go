package freeze

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore implements Store over the policies table.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a Postgres-backed policy ownership store.
func NewPgStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

func (s *pgStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	const query = `SELECT count(*) FROM policies WHERE user_id = $1`

	var count int
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *pgStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Policy, error) {
	const query = `
		SELECT id, user_id, updated_at
		FROM policies
		WHERE user_id = $1
		ORDER BY updated_at DESC, id ASC`

	return s.list(ctx, query, userID)
}

func (s *pgStore) ListActiveIDs(ctx context.Context, userID uuid.UUID, limit int64) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM policies
		WHERE user_id = $1
		ORDER BY updated_at DESC, id ASC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *pgStore) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]Policy, error) {
	const query = `
		SELECT id, user_id, updated_at
		FROM policies
		WHERE user_id = ANY($1)
		ORDER BY updated_at DESC, id ASC`

	return s.list(ctx, query, userIDs)
}

func (s *pgStore) list(ctx context.Context, query string, arg any) ([]Policy, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		var policy Policy
		if err := rows.Scan(&policy.ID, &policy.UserID, &policy.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}
