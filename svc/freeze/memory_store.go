package freeze

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// memoryStore implements Store with an in-process policy list, for tests
// and tooling. Listing methods sort with the same rank order the Postgres
// store gets from its ORDER BY.
type memoryStore struct {
	mu       sync.RWMutex
	policies []Policy
}

// NewMemoryStore returns an in-memory Store seeded with the given policies.
func NewMemoryStore(policies ...Policy) Store {
	return &memoryStore{policies: slices.Clone(policies)}
}

func (m *memoryStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, policy := range m.policies {
		if policy.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Policy, error) {
	return m.listOwned(func(p Policy) bool { return p.UserID == userID }), nil
}

func (m *memoryStore) ListActiveIDs(ctx context.Context, userID uuid.UUID, limit int64) ([]uuid.UUID, error) {
	ranked, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if int64(len(ranked)) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, policy := range ranked {
		ids = append(ids, policy.ID)
	}
	return ids, nil
}

func (m *memoryStore) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]Policy, error) {
	return m.listOwned(func(p Policy) bool { return slices.Contains(userIDs, p.UserID) }), nil
}

func (m *memoryStore) listOwned(owned func(Policy) bool) []Policy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []Policy
	for _, policy := range m.policies {
		if owned(policy) {
			matched = append(matched, policy)
		}
	}
	slices.SortFunc(matched, rankPolicies)
	return matched
}
