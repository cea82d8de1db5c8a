package usage_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policywise/entitlements/svc/usage"
)

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	userID := uuid.New()

	const (
		workers       = 20
		perWorker     = 50
		expectedTotal = workers * perWorker
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				assert.NoError(t, store.Increment(ctx, userID, usage.TypeExecutions, "2025-06", 1))
			}
		}()
	}
	wg.Wait()

	count, err := store.Count(ctx, userID, usage.TypeExecutions, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, int64(expectedTotal), count, "no increment may be lost")
}

func TestMemoryStore_IncrementIfBelow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	userID := uuid.New()

	t.Run("exact fit at the boundary", func(t *testing.T) {
		ok, err := store.IncrementIfBelow(ctx, userID, usage.TypeAPICalls, "2025-06", 10, 10)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.IncrementIfBelow(ctx, userID, usage.TypeAPICalls, "2025-06", 1, 10)
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := store.Count(ctx, userID, usage.TypeAPICalls, "2025-06")
		require.NoError(t, err)
		assert.Equal(t, int64(10), count, "rejected increment must not change the count")
	})

	t.Run("never exceeds the limit under contention", func(t *testing.T) {
		contested := uuid.New()
		const limit = 25

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.IncrementIfBelow(ctx, contested, usage.TypeExecutions, "2025-06", 1, limit)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		count, err := store.Count(ctx, contested, usage.TypeExecutions, "2025-06")
		require.NoError(t, err)
		assert.Equal(t, int64(limit), count)
	})
}

func TestMemoryStore_IsolatesKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, store.Increment(ctx, alice, usage.TypeExecutions, "2025-06", 5))

	for name, args := range map[string]struct {
		user   uuid.UUID
		typ    usage.Type
		period string
	}{
		"other user":   {bob, usage.TypeExecutions, "2025-06"},
		"other type":   {alice, usage.TypeAPICalls, "2025-06"},
		"other period": {alice, usage.TypeExecutions, "2025-07"},
	} {
		count, err := store.Count(ctx, args.user, args.typ, args.period)
		require.NoError(t, err)
		assert.Zero(t, count, name)
	}
}
