package plans

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// inMemSource implements the Source interface using an in-memory plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory Source with a deep copy of the given
// plans. Deep copying prevents external modifications from affecting the
// source's state.
func NewInMemSource(plansMap map[string]Plan) Source {
	return &inMemSource{plans: clonePlans(plansMap)}
}

// Load returns a copy of all available plans from memory.
// The returned map is not protected by the mutex after return.
func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlans(s.plans), nil
}

func clonePlans(plansMap map[string]Plan) map[string]Plan {
	plansCopy := make(map[string]Plan, len(plansMap))
	for id, plan := range plansMap {
		plansCopy[id] = Plan{
			ID:           plan.ID,
			Name:         plan.Name,
			Description:  plan.Description,
			Limits:       maps.Clone(plan.Limits),
			Capabilities: slices.Clone(plan.Capabilities),
			PIITier:      plan.PIITier,
			Public:       plan.Public,
			TrialDays:    plan.TrialDays,
		}
	}
	return plansCopy
}
