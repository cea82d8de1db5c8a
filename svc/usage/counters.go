package usage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/policywise/entitlements/pkg/plans"
)

// CounterFunc returns the current usage for a user resource.
// Should be fast: cache or aggregate at the repository level.
type CounterFunc func(ctx context.Context, userID uuid.UUID) (int64, error)

// CounterRegistry maps a plan resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[plans.Resource]CounterFunc

// NewCounterRegistry returns a new, empty CounterRegistry.
func NewCounterRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for the given resource.
// Panics if fn is nil.
func (r CounterRegistry) Register(res plans.Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("usage: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}
