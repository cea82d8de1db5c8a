// Package usage is the usage ledger: monotonic per-period counters with
// check-before-use and record-after-use semantics.
//
// Counters are keyed by (user, usage type, period) where the period is the
// UTC calendar month (YYYY-MM). No record exists for a new period until its
// first write, so counters reset implicitly on rollover.
//
// Check/Record is a check-then-act pattern, not a reservation system: under
// high concurrency the count can overshoot the limit by the number of
// requests in flight at check time before checks start failing. That
// relaxation is deliberate. TryRecord with a ConditionalStore (the Postgres
// and in-memory stores implement it) provides the strict alternative.
//
// Basic usage:
//
//	ledger := usage.NewService(resolver, registry, usage.NewPgStore(pool))
//
//	result, err := ledger.CheckAll(ctx, userID, usage.TypeExecutions, usage.TypeAPICalls)
//	if err != nil {
//	    return err
//	}
//	if !result.Allowed {
//	    return fmt.Errorf("quota: %s", result.Message)
//	}
//
//	// ... perform the gated action ...
//
//	if err := ledger.RecordAll(ctx, userID, usage.TypeExecutions, usage.TypeAPICalls); err != nil {
//	    return err
//	}
package usage
