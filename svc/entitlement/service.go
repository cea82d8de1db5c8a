package entitlement

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/policywise/entitlements/pkg/plans"
)

// Store persists user entitlement state. SetPlan must be an idempotent
// single-field write: concurrent lazy downgrades converge to the same value,
// so no locking is required around it.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (User, error)
	GetBatch(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]User, error)
	SetPlan(ctx context.Context, userID uuid.UUID, planID string) error
}

// Service resolves the effective plan for users, applying trial expiry and
// defensive normalization of unrecognized stored plan IDs.
type Service struct {
	registry *plans.Registry
	store    Store
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an entitlement resolver over the given plan registry
// and user store.
func NewService(registry *plans.Registry, store Store, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve computes the effective plan for an already-loaded user at the
// given time. It is pure and never fails: an expired trial resolves to the
// fallback plan with downgraded=true, and an unrecognized stored plan ID
// resolves to the fallback plan without the downgrade flag.
func (s *Service) Resolve(user User, now time.Time) (plan plans.Plan, downgraded bool) {
	if user.PlanID == plans.PlanTrial && user.IsTrialExpiredAt(now) {
		return s.registry.Fallback(), true
	}
	return s.registry.GetOrFallback(user.PlanID), false
}

// ResolveUser loads the user, resolves the effective plan, and lazily
// persists the downgrade when a trial has expired. The persisted write is
// idempotent and safe to race.
func (s *Service) ResolveUser(ctx context.Context, userID uuid.UUID) (plans.Plan, bool, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return plans.Plan{}, false, err
	}

	plan, downgraded := s.Resolve(user, s.now())
	if downgraded {
		if err := s.store.SetPlan(ctx, userID, plan.ID); err != nil {
			return plans.Plan{}, false, errors.Join(ErrFailedToPersistDowngrade, err)
		}
	}
	return plan, downgraded, nil
}

// EffectivePlan is ResolveUser without the downgrade flag, for callers that
// only need the applicable limits.
func (s *Service) EffectivePlan(ctx context.Context, userID uuid.UUID) (plans.Plan, error) {
	plan, _, err := s.ResolveUser(ctx, userID)
	return plan, err
}

// EffectivePlans resolves effective plans for many users in one grouped
// fetch. Expired trials found along the way are persisted the same lazy way
// as in ResolveUser. Users missing from the store are resolved to the
// fallback plan so that batch callers never have to special-case them.
func (s *Service) EffectivePlans(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]plans.Plan, error) {
	unique := dedupe(userIDs)
	users, err := s.store.GetBatch(ctx, unique)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make(map[uuid.UUID]plans.Plan, len(unique))
	for _, id := range unique {
		user, ok := users[id]
		if !ok {
			result[id] = s.registry.Fallback()
			continue
		}

		plan, downgraded := s.Resolve(user, now)
		if downgraded {
			if err := s.store.SetPlan(ctx, id, plan.ID); err != nil {
				return nil, errors.Join(ErrFailedToPersistDowngrade, err)
			}
		}
		result[id] = plan
	}
	return result, nil
}

// HasCapability reports whether the user's effective plan enables a
// capability. Returns false on any storage failure.
func (s *Service) HasCapability(ctx context.Context, userID uuid.UUID, capability plans.Capability) bool {
	plan, err := s.EffectivePlan(ctx, userID)
	if err != nil {
		return false
	}
	return slices.Contains(plan.Capabilities, capability)
}

// PIITier returns the PII detection tier of the user's effective plan,
// falling back to the weakest tier on storage failure.
func (s *Service) PIITier(ctx context.Context, userID uuid.UUID) plans.PIITier {
	plan, err := s.EffectivePlan(ctx, userID)
	if err != nil {
		return plans.PIIBasic
	}
	return plan.PIITier
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
