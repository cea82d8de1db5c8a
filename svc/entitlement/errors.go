package entitlement

import "errors"

// Domain errors for entitlement resolution
var (
	ErrUserNotFound             = errors.New("entitlement.errors.user_not_found")
	ErrFailedToPersistDowngrade = errors.New("entitlement.errors.failed_to_persist_downgrade")
)
