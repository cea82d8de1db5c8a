package plans

// Plan IDs for the built-in tiers.
const (
	PlanFree       = "free"
	PlanTrial      = "trial"
	PlanPro        = "pro"
	PlanTeam       = "team"
	PlanEnterprise = "enterprise"
)

// DefaultPlans returns the built-in plan table. Callers that need a custom
// table provide their own Source instead; the defaults cover the standard
// free/trial/pro/team/enterprise tiers.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		PlanFree: {
			ID:          PlanFree,
			Name:        "Free",
			Description: "For trying things out",
			Limits: map[Resource]int64{
				ResourcePolicies:    3,
				ResourceExecutions:  50,
				ResourceAPICalls:    0,
				ResourceTeamMembers: 1,
				ResourceAPIKeys:     0,
			},
			Capabilities: []Capability{},
			PIITier:      PIIBasic,
			Public:       true,
		},
		PlanTrial: {
			ID:          PlanTrial,
			Name:        "Trial",
			Description: "Full Pro access for 14 days",
			Limits: map[Resource]int64{
				ResourcePolicies:    50,
				ResourceExecutions:  2000,
				ResourceAPICalls:    10000,
				ResourceTeamMembers: 1,
				ResourceAPIKeys:     3,
			},
			Capabilities: []Capability{
				CapabilitySharing,
				CapabilityComplianceReports,
				CapabilityAPIAccess,
			},
			PIITier:   PIIStandard,
			Public:    true,
			TrialDays: 14,
		},
		PlanPro: {
			ID:          PlanPro,
			Name:        "Pro",
			Description: "For individual professionals",
			Limits: map[Resource]int64{
				ResourcePolicies:    50,
				ResourceExecutions:  2000,
				ResourceAPICalls:    10000,
				ResourceTeamMembers: 1,
				ResourceAPIKeys:     3,
			},
			Capabilities: []Capability{
				CapabilitySharing,
				CapabilityComplianceReports,
				CapabilityAPIAccess,
			},
			PIITier: PIIStandard,
			Public:  true,
		},
		PlanTeam: {
			ID:          PlanTeam,
			Name:        "Team",
			Description: "Shared workspaces for small teams",
			Limits: map[Resource]int64{
				ResourcePolicies:    200,
				ResourceExecutions:  10000,
				ResourceAPICalls:    50000,
				ResourceTeamMembers: 10,
				ResourceAPIKeys:     10,
			},
			Capabilities: []Capability{
				CapabilitySharing,
				CapabilityComplianceReports,
				CapabilityAPIAccess,
				CapabilityTeamFeatures,
			},
			PIITier: PIIFull,
			Public:  true,
		},
		PlanEnterprise: {
			ID:          PlanEnterprise,
			Name:        "Enterprise",
			Description: "Custom contracts, no caps",
			Limits: map[Resource]int64{
				ResourcePolicies:    Unlimited,
				ResourceExecutions:  Unlimited,
				ResourceAPICalls:    Unlimited,
				ResourceTeamMembers: Unlimited,
				ResourceAPIKeys:     Unlimited,
			},
			Capabilities: []Capability{
				CapabilitySharing,
				CapabilityComplianceReports,
				CapabilityAPIAccess,
				CapabilityTeamFeatures,
			},
			PIITier: PIIFull,
		},
	}
}
