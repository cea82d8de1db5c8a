package freeze

import (
	"time"

	"github.com/google/uuid"
)

// Policy is the ownership subset of a saved policy the calculator needs.
// Policy content and lifecycle live elsewhere; this layer only ranks.
type Policy struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UpdatedAt time.Time
}

// Status is the derived freeze state for one user. It is computed fresh on
// every call and never persisted, so there is no cache invalidation to
// manage: the most recently updated policies up to the limit are active,
// everything ranked past the limit is frozen (read-only).
type Status struct {
	Limit           int64       `json:"limit"` // plans.Unlimited when uncapped
	TotalPolicies   int         `json:"total_policies"`
	FrozenCount     int         `json:"frozen_count"`
	FrozenPolicyIDs []uuid.UUID `json:"frozen_policy_ids"` // in rank order
}

// IsFrozen reports whether the given policy is in the frozen set.
func (s Status) IsFrozen(policyID uuid.UUID) bool {
	for _, id := range s.FrozenPolicyIDs {
		if id == policyID {
			return true
		}
	}
	return false
}
