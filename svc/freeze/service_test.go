package freeze_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policywise/entitlements/pkg/plans"
	"github.com/policywise/entitlements/svc/entitlement"
	"github.com/policywise/entitlements/svc/freeze"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newResolver(t *testing.T, users ...entitlement.User) *entitlement.Service {
	t.Helper()

	registry, err := plans.NewRegistry(
		context.Background(),
		plans.NewInMemSource(plans.DefaultPlans()),
		plans.PlanFree,
	)
	require.NoError(t, err)

	return entitlement.NewService(registry, entitlement.NewMemoryStore(users...),
		entitlement.WithClock(func() time.Time { return fixedNow }))
}

// fivePolicies returns five policies for one owner with strictly descending
// update times, newest first: ids[0] is the most recently updated.
func fivePolicies(userID uuid.UUID) ([]freeze.Policy, []uuid.UUID) {
	ids := make([]uuid.UUID, 5)
	policies := make([]freeze.Policy, 5)
	for i := range policies {
		ids[i] = uuid.New()
		policies[i] = freeze.Policy{
			ID:        ids[i],
			UserID:    userID,
			UpdatedAt: fixedNow.Add(-time.Duration(i) * time.Hour),
		}
	}
	return policies, ids
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("over limit freezes the oldest", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		policies, ids := fivePolicies(userID)
		svc := freeze.NewService(
			newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanFree}),
			freeze.NewMemoryStore(policies...),
		)

		status, err := svc.Status(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, int64(3), status.Limit)
		assert.Equal(t, 5, status.TotalPolicies)
		assert.Equal(t, 2, status.FrozenCount)
		// The two least recently updated policies freeze, in rank order.
		assert.Equal(t, []uuid.UUID{ids[3], ids[4]}, status.FrozenPolicyIDs)
		assert.True(t, status.IsFrozen(ids[4]))
		assert.False(t, status.IsFrozen(ids[0]))
	})

	t.Run("within limit freezes nothing", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		policies, _ := fivePolicies(userID)
		svc := freeze.NewService(
			newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanFree}),
			freeze.NewMemoryStore(policies[:2]...),
		)

		status, err := svc.Status(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 2, status.TotalPolicies)
		assert.Zero(t, status.FrozenCount)
		assert.Empty(t, status.FrozenPolicyIDs)
		assert.NotNil(t, status.FrozenPolicyIDs)
	})

	t.Run("unlimited plan reports the true total", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		policies, _ := fivePolicies(userID)
		svc := freeze.NewService(
			newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanEnterprise}),
			freeze.NewMemoryStore(policies...),
		)

		status, err := svc.Status(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, plans.Unlimited, status.Limit)
		assert.Equal(t, 5, status.TotalPolicies)
		assert.Zero(t, status.FrozenCount)
	})

	t.Run("idempotent without writes", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		policies, _ := fivePolicies(userID)
		svc := freeze.NewService(
			newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanFree}),
			freeze.NewMemoryStore(policies...),
		)

		first, err := svc.Status(ctx, userID)
		require.NoError(t, err)
		second, err := svc.Status(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestService_IsFrozen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	policies, ids := fivePolicies(userID)
	svc := freeze.NewService(
		newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanFree}),
		freeze.NewMemoryStore(policies...),
	)

	t.Run("agrees with Status for every policy", func(t *testing.T) {
		t.Parallel()

		status, err := svc.Status(ctx, userID)
		require.NoError(t, err)

		for _, id := range ids {
			frozen, err := svc.IsFrozen(ctx, userID, id)
			require.NoError(t, err)
			assert.Equal(t, status.IsFrozen(id), frozen, "policy %s", id)
		}
	})

	t.Run("unlimited owner short-circuits", func(t *testing.T) {
		t.Parallel()

		bigUser := uuid.New()
		bigPolicies, bigIDs := fivePolicies(bigUser)
		bigSvc := freeze.NewService(
			newResolver(t, entitlement.User{ID: bigUser, PlanID: plans.PlanEnterprise}),
			freeze.NewMemoryStore(bigPolicies...),
		)

		frozen, err := bigSvc.IsFrozen(ctx, bigUser, bigIDs[4])
		require.NoError(t, err)
		assert.False(t, frozen)
	})
}

func TestService_TieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	// Four policies sharing one timestamp; rank falls back to ascending id.
	ids := []uuid.UUID{
		uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		uuid.MustParse("00000000-0000-0000-0000-000000000003"),
		uuid.MustParse("00000000-0000-0000-0000-000000000004"),
	}
	// Seed in shuffled order to prove insertion order is irrelevant.
	policies := []freeze.Policy{
		{ID: ids[2], UserID: userID, UpdatedAt: fixedNow},
		{ID: ids[0], UserID: userID, UpdatedAt: fixedNow},
		{ID: ids[3], UserID: userID, UpdatedAt: fixedNow},
		{ID: ids[1], UserID: userID, UpdatedAt: fixedNow},
	}

	svc := freeze.NewService(
		newResolver(t, entitlement.User{ID: userID, PlanID: plans.PlanFree}),
		freeze.NewMemoryStore(policies...),
	)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ids[3]}, status.FrozenPolicyIDs)

	frozen, err := svc.IsFrozen(ctx, userID, ids[3])
	require.NoError(t, err)
	assert.True(t, frozen)

	frozen, err = svc.IsFrozen(ctx, userID, ids[2])
	require.NoError(t, err)
	assert.False(t, frozen)
}

// countingStore wraps a Store and records how many calls hit it, to pin the
// number of round-trips batch computation performs.
type countingStore struct {
	freeze.Store
	calls int
}

func (c *countingStore) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]freeze.Policy, error) {
	c.calls++
	return c.Store.ListByUsers(ctx, userIDs)
}

func (c *countingStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	c.calls++
	return c.Store.CountByUser(ctx, userID)
}

func (c *countingStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]freeze.Policy, error) {
	c.calls++
	return c.Store.ListByUser(ctx, userID)
}

func (c *countingStore) ListActiveIDs(ctx context.Context, userID uuid.UUID, limit int64) ([]uuid.UUID, error) {
	c.calls++
	return c.Store.ListActiveIDs(ctx, userID, limit)
}

func TestService_BatchStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	freeUser := uuid.New()
	teamUser := uuid.New()
	bigUser := uuid.New()

	freePolicies, freeIDs := fivePolicies(freeUser)
	teamPolicies, _ := fivePolicies(teamUser)
	bigPolicies, _ := fivePolicies(bigUser)

	resolver := newResolver(t,
		entitlement.User{ID: freeUser, PlanID: plans.PlanFree},
		entitlement.User{ID: teamUser, PlanID: plans.PlanTeam},
		entitlement.User{ID: bigUser, PlanID: plans.PlanEnterprise},
	)

	seed := append(append(freePolicies, teamPolicies...), bigPolicies...)

	t.Run("one policy query for any team size", func(t *testing.T) {
		t.Parallel()

		store := &countingStore{Store: freeze.NewMemoryStore(seed...)}
		svc := freeze.NewService(resolver, store)

		result, err := svc.BatchStatus(ctx, []uuid.UUID{freeUser, teamUser, bigUser, freeUser})
		require.NoError(t, err)
		require.Len(t, result, 3)

		assert.Equal(t, []uuid.UUID{freeIDs[3], freeIDs[4]}, result[freeUser])
		assert.Empty(t, result[teamUser], "team limit of 200 covers five policies")
		assert.Empty(t, result[bigUser])
		assert.NotNil(t, result[bigUser], "unlimited owners get an empty set, not a missing key")

		assert.Equal(t, 1, store.calls)
	})

	t.Run("matches per-user Status", func(t *testing.T) {
		t.Parallel()

		svc := freeze.NewService(resolver, freeze.NewMemoryStore(seed...))

		batch, err := svc.BatchStatus(ctx, []uuid.UUID{freeUser, teamUser, bigUser})
		require.NoError(t, err)

		for _, userID := range []uuid.UUID{freeUser, teamUser, bigUser} {
			status, err := svc.Status(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, status.FrozenPolicyIDs, batch[userID], "user %s", userID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		svc := freeze.NewService(resolver, freeze.NewMemoryStore(seed...))
		result, err := svc.BatchStatus(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
