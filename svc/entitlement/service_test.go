package entitlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policywise/entitlements/pkg/plans"
	"github.com/policywise/entitlements/svc/entitlement"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) *plans.Registry {
	t.Helper()

	registry, err := plans.NewRegistry(
		context.Background(),
		plans.NewInMemSource(plans.DefaultPlans()),
		plans.PlanFree,
	)
	require.NoError(t, err)
	return registry
}

func newTestService(t *testing.T, users ...entitlement.User) (*entitlement.Service, entitlement.Store) {
	t.Helper()

	store := entitlement.NewMemoryStore(users...)
	svc := entitlement.NewService(newTestRegistry(t), store,
		entitlement.WithClock(func() time.Time { return fixedNow }))
	return svc, store
}

func TestService_ResolveUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("active plan passes through", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc, _ := newTestService(t, entitlement.User{ID: userID, PlanID: plans.PlanPro})

		plan, downgraded, err := svc.ResolveUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanPro, plan.ID)
		assert.False(t, downgraded)
	})

	t.Run("expired trial downgrades and persists", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		endsAt := fixedNow.Add(-24 * time.Hour)
		svc, store := newTestService(t, entitlement.User{
			ID:          userID,
			PlanID:      plans.PlanTrial,
			TrialEndsAt: &endsAt,
		})

		plan, downgraded, err := svc.ResolveUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanFree, plan.ID)
		assert.True(t, downgraded)

		// The downgrade is written back: the next resolution sees free
		// directly and reports no further downgrade.
		stored, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanFree, stored.PlanID)

		plan, downgraded, err = svc.ResolveUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanFree, plan.ID)
		assert.False(t, downgraded)
	})

	t.Run("active trial stays on trial", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		endsAt := fixedNow.Add(72 * time.Hour)
		svc, _ := newTestService(t, entitlement.User{
			ID:          userID,
			PlanID:      plans.PlanTrial,
			TrialEndsAt: &endsAt,
		})

		plan, downgraded, err := svc.ResolveUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanTrial, plan.ID)
		assert.False(t, downgraded)
	})

	t.Run("unrecognized stored plan normalizes to free", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc, store := newTestService(t, entitlement.User{ID: userID, PlanID: "legacy-2019"})

		plan, downgraded, err := svc.ResolveUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, plans.PlanFree, plan.ID)
		// Normalization is not a downgrade; the stored value stays put.
		assert.False(t, downgraded)

		stored, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "legacy-2019", stored.PlanID)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		_, _, err := svc.ResolveUser(ctx, uuid.New())
		assert.ErrorIs(t, err, entitlement.ErrUserNotFound)
	})
}

func TestService_EffectivePlans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	expiredAt := fixedNow.Add(-time.Hour)
	expired := entitlement.User{ID: uuid.New(), PlanID: plans.PlanTrial, TrialEndsAt: &expiredAt}
	enterprise := entitlement.User{ID: uuid.New(), PlanID: plans.PlanEnterprise}
	missing := uuid.New()

	svc, store := newTestService(t, expired, enterprise)

	result, err := svc.EffectivePlans(ctx, []uuid.UUID{
		expired.ID, enterprise.ID, missing, expired.ID, // duplicate on purpose
	})
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, plans.PlanFree, result[expired.ID].ID)
	assert.Equal(t, plans.PlanEnterprise, result[enterprise.ID].ID)
	assert.Equal(t, plans.PlanFree, result[missing].ID)

	// Batch resolution persists lazy downgrades too.
	stored, err := store.Get(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanFree, stored.PlanID)
}

func TestService_HasCapability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	proUser := entitlement.User{ID: uuid.New(), PlanID: plans.PlanPro}
	freeUser := entitlement.User{ID: uuid.New(), PlanID: plans.PlanFree}
	svc, _ := newTestService(t, proUser, freeUser)

	assert.True(t, svc.HasCapability(ctx, proUser.ID, plans.CapabilityAPIAccess))
	assert.False(t, svc.HasCapability(ctx, freeUser.ID, plans.CapabilityAPIAccess))
	assert.False(t, svc.HasCapability(ctx, uuid.New(), plans.CapabilityAPIAccess))

	assert.Equal(t, plans.PIIStandard, svc.PIITier(ctx, proUser.ID))
	assert.Equal(t, plans.PIIBasic, svc.PIITier(ctx, freeUser.ID))
}

func TestUser_TrialDaysRemainingAt(t *testing.T) {
	t.Parallel()

	endsAt := fixedNow.Add(5*24*time.Hour + 13*time.Hour)
	user := entitlement.User{PlanID: plans.PlanTrial, TrialEndsAt: &endsAt}

	// Partial days round up
	assert.Equal(t, 6, user.TrialDaysRemainingAt(fixedNow))
	assert.Equal(t, 0, user.TrialDaysRemainingAt(endsAt.Add(time.Minute)))

	noTrial := entitlement.User{PlanID: plans.PlanPro}
	assert.Equal(t, 0, noTrial.TrialDaysRemainingAt(fixedNow))
}
