package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgRepository implements Repository over the teams and team_members tables.
type pgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository returns a Postgres-backed membership repository.
func NewPgRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (Member, error) {
	const query = `
		SELECT team_id, user_id, role, created_at, updated_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2`

	var member Member
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(
		&member.TeamID, &member.UserID, &member.Role, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, err
	}
	return member, nil
}

// TransferOwnership runs the two role writes and the owner-pointer write in
// one transaction. Both member rows are locked first so concurrent
// transfers serialize instead of interleaving.
func (r *pgRepository) TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var fromRole Role
		err := tx.QueryRow(ctx,
			`SELECT role FROM team_members WHERE team_id = $1 AND user_id = $2 FOR UPDATE`,
			teamID, fromUserID,
		).Scan(&fromRole)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotTeamOwner
			}
			return err
		}
		if fromRole != RoleOwner {
			return ErrNotTeamOwner
		}

		var toRole Role
		err = tx.QueryRow(ctx,
			`SELECT role FROM team_members WHERE team_id = $1 AND user_id = $2 FOR UPDATE`,
			teamID, toUserID,
		).Scan(&toRole)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrMemberNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE team_members SET role = $3, updated_at = now() WHERE team_id = $1 AND user_id = $2`,
			teamID, toUserID, RoleOwner,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE team_members SET role = $3, updated_at = now() WHERE team_id = $1 AND user_id = $2`,
			teamID, fromUserID, RoleAdmin,
		); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE teams SET owner_id = $2, updated_at = now() WHERE id = $1`,
			teamID, toUserID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errors.Join(ErrTransferFailed, errors.New("team row missing"))
		}
		return nil
	})
}
