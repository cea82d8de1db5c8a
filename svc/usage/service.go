package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/policywise/entitlements/pkg/plans"
)

// PlanResolver yields the effective plan for a user, trial expiry applied.
// Satisfied by svc/entitlement.Service.
type PlanResolver interface {
	EffectivePlan(ctx context.Context, userID uuid.UUID) (plans.Plan, error)
}

// Service is the usage ledger: check-before-use and record-after-use over
// monthly counters. Callers check immediately before the gated action and
// record immediately after success. The two steps are deliberately not
// transactional: concurrent requests may each pass the check before any of
// them records, so the count can overshoot the limit by at most the number
// of requests in flight at check time. Callers needing a hard cap use
// TryRecord with a ConditionalStore instead.
type Service struct {
	resolver PlanResolver
	registry *plans.Registry
	store    Store
	counters CounterRegistry
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCounters supplies usage counters for resources the ledger does not
// meter itself (saved policies, team members), used by CanDowngrade.
func WithCounters(counters CounterRegistry) Option {
	return func(s *Service) { s.counters = counters }
}

// NewService creates a usage ledger over the given resolver, plan registry
// and counter store. Monthly metered resources are automatically registered
// as downgrade counters backed by the ledger's own store.
func NewService(resolver PlanResolver, registry *plans.Registry, store Store, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		registry: registry,
		store:    store,
		counters: NewCounterRegistry(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	for usageType, res := range resourceByType {
		if _, ok := s.counters[res]; !ok {
			s.counters.Register(res, s.selfCounter(usageType))
		}
	}
	return s
}

func (s *Service) selfCounter(usageType Type) CounterFunc {
	return func(ctx context.Context, userID uuid.UUID) (int64, error) {
		return s.store.Count(ctx, userID, usageType, Period(s.now()))
	}
}

// Check resolves the effective plan and reports whether one more use of the
// given type is allowed in the current period.
func (s *Service) Check(ctx context.Context, userID uuid.UUID, usageType Type) (CheckResult, error) {
	if _, ok := knownTypes[usageType]; !ok {
		return CheckResult{}, ErrInvalidUsageType
	}

	plan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return CheckResult{}, err
	}

	res, gated := resourceByType[usageType]
	if !gated {
		return CheckResult{Allowed: true, Limit: plans.Unlimited, Remaining: plans.Unlimited}, nil
	}

	limit, configured := plan.Limit(res)
	if !configured || limit == plans.Unlimited {
		return CheckResult{Allowed: true, Limit: plans.Unlimited, Remaining: plans.Unlimited}, nil
	}

	count, err := s.store.Count(ctx, userID, usageType, Period(s.now()))
	if err != nil {
		return CheckResult{}, errors.Join(ErrFailedToCountUsage, err)
	}

	if count >= limit {
		return CheckResult{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			Message:   denialMessage(usageType, limit),
		}, nil
	}

	return CheckResult{Allowed: true, Limit: limit, Remaining: limit - count}, nil
}

// CheckAll checks every quota dimension gating one action; all must pass.
// Returns the first denial, or the tightest allowed result when all pass,
// so callers can surface the dimension closest to its cap.
func (s *Service) CheckAll(ctx context.Context, userID uuid.UUID, types ...Type) (CheckResult, error) {
	tightest := CheckResult{Allowed: true, Limit: plans.Unlimited, Remaining: plans.Unlimited}
	for _, usageType := range types {
		result, err := s.Check(ctx, userID, usageType)
		if err != nil {
			return CheckResult{}, err
		}
		if !result.Allowed {
			return result, nil
		}
		if result.Remaining != plans.Unlimited &&
			(tightest.Remaining == plans.Unlimited || result.Remaining < tightest.Remaining) {
			tightest = result
		}
	}
	return tightest, nil
}

// Record adds amount to the user's counter for the current period. The
// store-level increment is atomic; Record never reads before writing.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, usageType Type, amount int64) error {
	if _, ok := knownTypes[usageType]; !ok {
		return ErrInvalidUsageType
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.store.Increment(ctx, userID, usageType, Period(s.now()), amount)
}

// RecordAll records one unit for each given type, for actions gated by
// several quota dimensions at once. Order is not significant.
func (s *Service) RecordAll(ctx context.Context, userID uuid.UUID, types ...Type) error {
	for _, usageType := range types {
		if err := s.Record(ctx, userID, usageType, 1); err != nil {
			return err
		}
	}
	return nil
}

// TryRecord atomically records amount only if the counter stays within the
// user's limit, eliminating check-then-act overshoot. Requires a store
// implementing ConditionalStore; uncapped dimensions record unconditionally.
func (s *Service) TryRecord(ctx context.Context, userID uuid.UUID, usageType Type, amount int64) (bool, error) {
	if _, ok := knownTypes[usageType]; !ok {
		return false, ErrInvalidUsageType
	}
	if amount <= 0 {
		return false, ErrInvalidAmount
	}

	plan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return false, err
	}

	period := Period(s.now())
	res, gated := resourceByType[usageType]
	if !gated {
		return true, s.store.Increment(ctx, userID, usageType, period, amount)
	}
	limit, configured := plan.Limit(res)
	if !configured || limit == plans.Unlimited {
		return true, s.store.Increment(ctx, userID, usageType, period, amount)
	}

	conditional, ok := s.store.(ConditionalStore)
	if !ok {
		return false, ErrConditionalUnsupported
	}
	return conditional.IncrementIfBelow(ctx, userID, usageType, period, amount, limit)
}

// AllUsage returns current usage against the limit for every metered type,
// for dashboards. Counter read failures leave the used value at zero rather
// than failing the whole rollup.
func (s *Service) AllUsage(ctx context.Context, userID uuid.UUID) (map[Type]Info, error) {
	plan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := Period(s.now())
	result := make(map[Type]Info, len(resourceByType))
	for usageType, res := range resourceByType {
		limit, configured := plan.Limit(res)
		if !configured {
			limit = plans.Unlimited
		}

		info := Info{Limit: limit}
		if count, err := s.store.Count(ctx, userID, usageType, period); err == nil {
			info.Used = count
		}
		result[usageType] = info
	}
	return result, nil
}

// CanDowngrade checks whether the user's current usage fits within the
// target plan's limits, consulting the registered counter for every
// resource whose ceiling would shrink.
func (s *Service) CanDowngrade(ctx context.Context, userID uuid.UUID, targetPlanID string) error {
	targetPlan, ok := s.registry.Get(targetPlanID)
	if !ok {
		return plans.ErrPlanNotFound
	}

	currentPlan, err := s.resolver.EffectivePlan(ctx, userID)
	if err != nil {
		return err
	}

	for resource, targetLimit := range targetPlan.Limits {
		if targetLimit == plans.Unlimited {
			continue
		}

		currentLimit, hasResource := currentPlan.Limits[resource]
		if !hasResource {
			continue
		}

		if currentLimit == plans.Unlimited || currentLimit > targetLimit {
			counter, ok := s.counters[resource]
			if !ok {
				// No counter means we cannot verify, so we allow it
				continue
			}

			current, err := counter(ctx, userID)
			if err != nil {
				return errors.Join(ErrFailedToCountUsage, err)
			}
			if current > targetLimit {
				return errors.Join(ErrDowngradeNotPossible,
					fmt.Errorf("%s usage %d exceeds target limit %d", resource, current, targetLimit))
			}
		}
	}
	return nil
}

func denialMessage(usageType Type, limit int64) string {
	switch usageType {
	case TypeExecutions:
		return fmt.Sprintf("Monthly execution limit of %d reached. Upgrade your plan to keep running policies.", limit)
	case TypeAPICalls:
		return fmt.Sprintf("Monthly API call limit of %d reached. Upgrade your plan for a higher quota.", limit)
	default:
		return fmt.Sprintf("Monthly limit of %d reached for %s.", limit, usageType)
	}
}
