package usage

import (
	"time"

	"github.com/policywise/entitlements/pkg/plans"
)

// Type identifies a metered usage dimension.
type Type string

// Predefined usage types.
const (
	TypeExecutions Type = "executions"
	TypeAPICalls   Type = "api_calls"
	TypePIIScans   Type = "pii_scans" // metered for reporting, never limited
)

// resourceByType maps a usage type to the plan resource that caps it.
// Types without an entry have no configured limit and are always allowed.
var resourceByType = map[Type]plans.Resource{
	TypeExecutions: plans.ResourceExecutions,
	TypeAPICalls:   plans.ResourceAPICalls,
}

// knownTypes guards Record against typos before any storage access.
var knownTypes = map[Type]struct{}{
	TypeExecutions: {},
	TypeAPICalls:   {},
	TypePIIScans:   {},
}

// Period returns the quota period for a point in time: the UTC calendar
// month formatted as YYYY-MM. The format is a boundary contract shared with
// billing reconciliation; counters reset implicitly when the period rolls
// over because no record exists for the new period until first write.
func Period(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CheckResult is the discriminated outcome of a quota check.
type CheckResult struct {
	Allowed   bool   `json:"allowed"`
	Limit     int64  `json:"limit"`     // plans.Unlimited when uncapped
	Remaining int64  `json:"remaining"` // plans.Unlimited when uncapped
	Message   string `json:"message,omitempty"`
}

// Info reports current usage against the limit for one dimension.
type Info struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
}
