package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore implements Store on top of a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a Postgres-backed Store over the users table.
func NewPgStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (User, error) {
	const query = `
		SELECT id, plan_id, trial_ends_at, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.PlanID, &user.TrialEndsAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (s *pgStore) GetBatch(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]User, error) {
	const query = `
		SELECT id, plan_id, trial_ends_at, created_at, updated_at
		FROM users
		WHERE id = ANY($1)`

	rows, err := s.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]User, len(userIDs))
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.PlanID, &user.TrialEndsAt, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		result[user.ID] = user
	}
	return result, rows.Err()
}

// SetPlan clears the trial window together with the plan: a user downgraded
// off trial must not be re-downgraded on the next resolution.
func (s *pgStore) SetPlan(ctx context.Context, userID uuid.UUID, planID string) error {
	const query = `
		UPDATE users
		SET plan_id = $2, trial_ends_at = NULL, updated_at = now()
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, userID, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
