package plans

import "errors"

// Domain errors for plan registry operations
var (
	ErrPlanNotFound             = errors.New("plans.errors.plan_not_found")
	ErrNoPlansConfigured        = errors.New("plans.errors.no_plans_configured")
	ErrInvalidPlanConfiguration = errors.New("plans.errors.invalid_plan_configuration")
	ErrFailedToLoadPlans        = errors.New("plans.errors.failed_to_load_plans")
	ErrFailedToParseYAML        = errors.New("plans.errors.failed_to_parse_yaml")
)
