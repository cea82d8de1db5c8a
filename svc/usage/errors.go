package usage

import "errors"

// Domain errors for usage ledger operations
var (
	ErrInvalidUsageType       = errors.New("usage.errors.invalid_usage_type")
	ErrInvalidAmount          = errors.New("usage.errors.invalid_amount")
	ErrDowngradeNotPossible   = errors.New("usage.errors.downgrade_not_possible")
	ErrConditionalUnsupported = errors.New("usage.errors.store_does_not_support_conditional_increment")
	ErrFailedToCountUsage     = errors.New("usage.errors.failed_to_count_usage")
)
