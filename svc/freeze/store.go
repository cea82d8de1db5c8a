package freeze

import (
	"bytes"
	"context"

	"github.com/google/uuid"
)

// Store is the read-only view of policy ownership the calculator ranks
// over. All listing methods must order by (updated_at DESC, id ASC): the id
// tiebreak makes the ranking stable across repeated calls even when
// updated_at collides.
type Store interface {
	// CountByUser returns how many policies the user owns.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ListByUser returns all of the user's policies in rank order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Policy, error)

	// ListActiveIDs returns the ids of the user's first limit policies in
	// rank order, for the single-policy fast path.
	ListActiveIDs(ctx context.Context, userID uuid.UUID, limit int64) ([]uuid.UUID, error)

	// ListByUsers returns all policies owned by any of the given users in
	// one query, in rank order.
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]Policy, error)
}

// rankPolicies compares two policies in freeze rank order:
// updated_at descending, id ascending as the deterministic tiebreak.
// Matches the ORDER BY used by the Postgres store.
func rankPolicies(a, b Policy) int {
	if a.UpdatedAt.After(b.UpdatedAt) {
		return -1
	}
	if a.UpdatedAt.Before(b.UpdatedAt) {
		return 1
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}
