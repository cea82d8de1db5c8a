package team

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Member is a user's membership in a team. Exactly one member per team
// holds RoleOwner at any time; TransferOwnership preserves that invariant.
type Member struct {
	TeamID    uuid.UUID
	UserID    uuid.UUID
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists team membership. GetMember returns ErrMemberNotFound
// both when the team does not exist and when the user is not a member, so
// callers cannot distinguish the two and leak membership information.
type Repository interface {
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (Member, error)

	// TransferOwnership promotes the new owner, demotes the previous owner
	// to admin, and repoints the team's owner reference as one atomic unit.
	// A partial application would leave a team with zero or two owners and
	// must never be observable. Returns ErrNotTeamOwner when fromUserID is
	// not the current owner and ErrMemberNotFound when toUserID is not a
	// member of the team.
	TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error
}
