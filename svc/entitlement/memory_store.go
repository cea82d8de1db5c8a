package entitlement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore implements Store with an in-process map. Intended for tests
// and single-process tools; production deployments use the Postgres store.
type memoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewMemoryStore returns an in-memory Store seeded with the given users.
func NewMemoryStore(users ...User) Store {
	m := &memoryStore{users: make(map[uuid.UUID]User, len(users))}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryStore) Get(ctx context.Context, userID uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *memoryStore) GetBatch(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[uuid.UUID]User, len(userIDs))
	for _, id := range userIDs {
		if user, ok := m.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

func (m *memoryStore) SetPlan(ctx context.Context, userID uuid.UUID, planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PlanID = planID
	user.TrialEndsAt = nil
	user.UpdatedAt = time.Now().UTC()
	m.users[userID] = user
	return nil
}
