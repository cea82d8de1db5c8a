package usage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type counterKey struct {
	userID    uuid.UUID
	usageType Type
	period    string
}

// memoryStore implements ConditionalStore with an in-process map. Adequate
// for tests and single-process deployments only: horizontally scaled
// deployments need a shared store (Postgres, Redis, Mongo) to keep one
// limit per user rather than one per process.
type memoryStore struct {
	mu       sync.Mutex
	counters map[counterKey]int64
}

// NewMemoryStore returns an empty in-memory usage store.
func NewMemoryStore() ConditionalStore {
	return &memoryStore{counters: make(map[counterKey]int64)}
}

func (m *memoryStore) Count(ctx context.Context, userID uuid.UUID, usageType Type, period string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[counterKey{userID, usageType, period}], nil
}

func (m *memoryStore) Increment(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[counterKey{userID, usageType, period}] += amount
	return nil
}

func (m *memoryStore) IncrementIfBelow(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount, limit int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := counterKey{userID, usageType, period}
	if m.counters[key]+amount > limit {
		return false, nil
	}
	m.counters[key] += amount
	return true, nil
}
