package entitlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/policywise/entitlements/pkg/plans"
)

// User is the entitlement state stored per account. PlanID may be stale:
// a trial past its end date is downgraded lazily on resolution, and billing
// webhooks update it out of band.
type User struct {
	ID          uuid.UUID
	PlanID      string
	TrialEndsAt *time.Time // set only while on the trial plan
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTrialExpiredAt reports whether the user's trial window has passed at the
// given time. Users without a trial window never expire.
func (u User) IsTrialExpiredAt(now time.Time) bool {
	if u.TrialEndsAt == nil {
		return false
	}
	return now.After(*u.TrialEndsAt)
}

// TrialDaysRemainingAt returns the number of days remaining in the trial at
// a given time. Returns 0 if there is no trial or it has expired.
// Taking the time as an argument keeps this testable with fixed values.
func (u User) TrialDaysRemainingAt(now time.Time) int {
	if u.PlanID != plans.PlanTrial || u.TrialEndsAt == nil {
		return 0
	}

	remaining := u.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	// Round up partial days for better UX
	days := remaining.Hours() / 24
	return int(days + 0.5)
}

// TrialDaysRemaining returns the number of days remaining in the trial.
func (u User) TrialDaysRemaining() int {
	return u.TrialDaysRemainingAt(time.Now().UTC())
}
