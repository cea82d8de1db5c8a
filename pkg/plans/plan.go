package plans

import "time"

// Resource represents a countable, quota-limited resource type.
type Resource string

// Predefined resource types.
const (
	ResourcePolicies    Resource = "policies"     // saved policies
	ResourceExecutions  Resource = "executions"   // policy executions per month
	ResourceAPICalls    Resource = "api_calls"    // API calls per month
	ResourceTeamMembers Resource = "team_members" // seats per team
	ResourceAPIKeys     Resource = "api_keys"     // active API keys
)

// Unlimited represents a resource with no limit (-1).
const Unlimited int64 = -1

// Capability is a string type representing a plan-specific capability flag.
type Capability string

// Predefined capability flags for plans.
const (
	CapabilitySharing           Capability = "sharing"
	CapabilityComplianceReports Capability = "compliance_reports"
	CapabilityAPIAccess         Capability = "api_access"
	CapabilityTeamFeatures      Capability = "team_features"
)

// PIITier selects how deep PII detection goes for a plan.
type PIITier string

// PII detection tiers, ordered from weakest to strongest.
const (
	PIIBasic    PIITier = "basic"
	PIIStandard PIITier = "standard"
	PIIFull     PIITier = "full"
)

// Plan describes a subscription tier and its resource/capability constraints.
type Plan struct {
	ID           string
	Name         string
	Description  string
	Limits       map[Resource]int64 // resource ceilings, Unlimited (-1) for no cap
	Capabilities []Capability       // capability flags enabled for this plan
	PIITier      PIITier
	Public       bool // if true, plan is available for self-registration
	TrialDays    int  // number of trial days (0 disables trial)
}

// Limit returns the ceiling for a resource. The second return value is false
// when the plan does not configure the resource at all, which callers treat
// as "not gated" rather than "forbidden".
func (p Plan) Limit(res Resource) (int64, bool) {
	limit, ok := p.Limits[res]
	return limit, ok
}

// IsUnlimited reports whether the plan places no cap on the resource.
func (p Plan) IsUnlimited(res Resource) bool {
	return p.Limits[res] == Unlimited
}

// TrialEndsAt returns the timestamp when a trial period ends for this plan.
// If no trial is available, returns startedAt.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}
