// Package entitlement resolves the plan that is actually in effect for a
// user, as opposed to the plan stored on their record.
//
// Two normalizations apply: a trial past its end date resolves to the
// fallback (free) plan, and an unrecognized stored plan ID resolves to the
// fallback plan so that bad stored data never crashes a resolution. Trial
// expiry is persisted lazily on read; the write is an idempotent
// single-field update, so concurrent resolutions racing the write all
// converge to the same value and no locking is needed.
//
// Billing webhooks mutate the stored plan out of band; nothing else in the
// entitlements core writes user state.
package entitlement
