// Package plans provides the static plan registry for plan-based
// entitlements: resource limits, capability flags, PII tiers and trial
// lengths per subscription tier.
//
// The registry is an immutable, dependency-injected table constructed once
// at process start. Adding a new plan or resource means extending the table,
// not changing any enforcement algorithm.
//
// Key concepts:
//
//   - Plan: a tier with resource ceilings and capability flags
//   - Resource: a countable entity such as policies or monthly executions
//   - Unlimited: the -1 sentinel for uncapped resources
//   - Source: where the plan table is loaded from (memory, YAML)
//
// Basic usage:
//
//	src := plans.NewInMemSource(plans.DefaultPlans())
//	registry, err := plans.NewRegistry(ctx, src, plans.PlanFree)
//	if err != nil {
//	    // handle configuration error
//	}
//
//	plan := registry.GetOrFallback(user.PlanID)
//	if limit, ok := plan.Limit(plans.ResourcePolicies); ok && limit != plans.Unlimited {
//	    // enforce the ceiling
//	}
package plans
