package plans

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Source defines how plans are loaded into the registry.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// Registry is an immutable lookup table of plans, constructed once at
// process start and safe for unsynchronized concurrent reads.
type Registry struct {
	// Treated as immutable after construction; thread-safety depends on
	// this (no runtime modifications).
	plans    map[string]Plan
	fallback string
}

// NewRegistry loads plans from the given Source and validates them.
// fallbackID names the plan applied when a stored plan ID is not recognized;
// it must exist in the loaded set.
func NewRegistry(ctx context.Context, src Source, fallbackID string) (*Registry, error) {
	plansMap, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(plansMap) == 0 {
		return nil, ErrNoPlansConfigured
	}

	if err := validatePlans(plansMap); err != nil {
		return nil, err
	}

	if _, ok := plansMap[fallbackID]; !ok {
		return nil, errors.Join(ErrInvalidPlanConfiguration,
			fmt.Errorf("fallback plan %q is not in the loaded set", fallbackID))
	}

	return &Registry{plans: plansMap, fallback: fallbackID}, nil
}

// Get returns the plan for the given ID.
func (r *Registry) Get(planID string) (Plan, bool) {
	plan, ok := r.plans[planID]
	return plan, ok
}

// GetOrFallback returns the plan for the given ID, or the fallback plan when
// the ID is not recognized. Stored data must never crash a lookup.
func (r *Registry) GetOrFallback(planID string) Plan {
	if plan, ok := r.plans[planID]; ok {
		return plan
	}
	return r.plans[r.fallback]
}

// Fallback returns the plan applied to unrecognized or expired entitlements.
func (r *Registry) Fallback() Plan {
	return r.plans[r.fallback]
}

// Verify checks if a plan ID is valid.
func (r *Registry) Verify(planID string) error {
	if _, ok := r.plans[planID]; !ok {
		return ErrPlanNotFound
	}
	return nil
}

// IDs returns all registered plan IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.plans))
	for id := range r.plans {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// validatePlans checks plan configurations for validity.
func validatePlans(plansMap map[string]Plan) error {
	for planID, plan := range plansMap {
		if plan.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative trial days: %d", planID, plan.TrialDays))
		}
		for res, limit := range plan.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s has invalid limit for %s: %d", planID, res, limit))
			}
		}
	}
	return nil
}
