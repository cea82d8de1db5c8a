package usage

import (
	"context"

	"github.com/google/uuid"
)

// Store persists monotonic per-period usage counters keyed by
// (user, usage type, period).
type Store interface {
	// Count returns the current count for the key, zero if no record exists.
	Count(ctx context.Context, userID uuid.UUID, usageType Type, period string) (int64, error)

	// Increment atomically adds amount to the counter, creating the record
	// if absent. Implementations must use a storage-level atomic primitive
	// (upsert with increment, INCRBY, $inc); a read-add-write sequence loses
	// increments under concurrency.
	Increment(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount int64) error
}

// ConditionalStore is implemented by stores that can increment only when the
// resulting count stays at or below a cap. It is the stricter alternative to
// the default check-then-act flow for callers that cannot tolerate overshoot.
type ConditionalStore interface {
	Store

	// IncrementIfBelow applies the increment only if count+amount <= limit,
	// atomically. Returns false when the cap would be exceeded.
	IncrementIfBelow(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount, limit int64) (bool, error)
}
