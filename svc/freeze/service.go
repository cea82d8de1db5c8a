package freeze

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/policywise/entitlements/pkg/plans"
)

// PlanResolver yields effective plans with trial expiry applied.
// Satisfied by svc/entitlement.Service.
type PlanResolver interface {
	EffectivePlan(ctx context.Context, userID uuid.UUID) (plans.Plan, error)
	EffectivePlans(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]plans.Plan, error)
}

// Service computes which of a user's policies are frozen after their
// active-policy limit shrank below their stored policy count. Reads are
// consistent at the snapshot of the underlying query but not isolated from
// concurrent edits; freeze status is advisory and recomputed on demand, so
// policy mutation endpoints re-check at write time.
type Service struct {
	resolver PlanResolver
	store    Store
}

// NewService creates a freeze calculator over the given resolver and
// policy store.
func NewService(resolver PlanResolver, store Store) *Service {
	return &Service{resolver: resolver, store: store}
}

// Status returns the freeze state for one user: the first limit policies in
// rank order stay active, the rest are frozen. Unlimited plans freeze
// nothing but still report the true total for display.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	plan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	limit, configured := plan.Limit(plans.ResourcePolicies)
	if !configured || limit == plans.Unlimited {
		total, err := s.store.CountByUser(ctx, userID)
		if err != nil {
			return Status{}, err
		}
		return Status{
			Limit:           plans.Unlimited,
			TotalPolicies:   total,
			FrozenPolicyIDs: []uuid.UUID{},
		}, nil
	}

	policies, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Limit:           limit,
		TotalPolicies:   len(policies),
		FrozenCount:     frozenCount(len(policies), limit),
		FrozenPolicyIDs: frozenIDs(policies, limit),
	}, nil
}

// IsFrozen is the single-policy fast path: it fetches only the active id
// set plus a count instead of scanning every policy. Mathematically
// equivalent to Status followed by set membership.
func (s *Service) IsFrozen(ctx context.Context, userID, policyID uuid.UUID) (bool, error) {
	plan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return false, err
	}

	limit, configured := plan.Limit(plans.ResourcePolicies)
	if !configured || limit == plans.Unlimited {
		return false, nil
	}

	total, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if total <= int(limit) {
		return false, nil
	}

	activeIDs, err := s.store.ListActiveIDs(ctx, userID, limit)
	if err != nil {
		return false, err
	}
	return !slices.Contains(activeIDs, policyID), nil
}

// BatchStatus computes frozen id sets for many owners with exactly two
// store round-trips regardless of how many users are asked about: one
// grouped entitlement fetch and one policy query covering every limited
// owner. Computing per user instead would be an N+1 pattern when listing a
// team's shared policies.
func (s *Service) BatchStatus(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	unique := dedupe(userIDs)
	if len(unique) == 0 {
		return map[uuid.UUID][]uuid.UUID{}, nil
	}

	planByUser, err := s.resolver.EffectivePlans(ctx, unique)
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]uuid.UUID, len(unique))
	limitByUser := make(map[uuid.UUID]int64)
	limited := make([]uuid.UUID, 0, len(unique))

	for _, id := range unique {
		plan := planByUser[id]
		limit, configured := plan.Limit(plans.ResourcePolicies)
		if !configured || limit == plans.Unlimited {
			result[id] = []uuid.UUID{}
			continue
		}
		limitByUser[id] = limit
		limited = append(limited, id)
	}

	if len(limited) == 0 {
		return result, nil
	}

	policies, err := s.store.ListByUsers(ctx, limited)
	if err != nil {
		return nil, err
	}

	// The store returns rank order globally; grouping preserves each
	// owner's relative order.
	byOwner := make(map[uuid.UUID][]Policy, len(limited))
	for _, policy := range policies {
		byOwner[policy.UserID] = append(byOwner[policy.UserID], policy)
	}

	for _, id := range limited {
		result[id] = frozenIDs(byOwner[id], limitByUser[id])
	}
	return result, nil
}

func frozenCount(total int, limit int64) int {
	if frozen := total - int(limit); frozen > 0 {
		return frozen
	}
	return 0
}

func frozenIDs(ranked []Policy, limit int64) []uuid.UUID {
	if int64(len(ranked)) <= limit {
		return []uuid.UUID{}
	}
	ids := make([]uuid.UUID, 0, int64(len(ranked))-limit)
	for _, policy := range ranked[limit:] {
		ids = append(ids, policy.ID)
	}
	return ids
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
