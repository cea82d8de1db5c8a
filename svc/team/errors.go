package team

import "errors"

// Domain errors for team operations
var (
	ErrInvalidRole    = errors.New("team.errors.invalid_role")
	ErrMemberNotFound = errors.New("team.errors.member_not_found")
	ErrNotTeamOwner   = errors.New("team.errors.not_team_owner")
	ErrSameUser       = errors.New("team.errors.same_user")
	ErrTransferFailed = errors.New("team.errors.transfer_failed")
)
