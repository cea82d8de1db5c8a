package team

import "net/http"

// Decision is the discriminated outcome of a team authorization check.
// Denials carry the specific reason and an HTTP-style status for the caller
// to surface; callers cannot forget to check a failure path the way they
// could with an ignorable error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(status int, reason string) Decision {
	return Decision{Allowed: false, Reason: reason, Status: status}
}

func denyInvalidRole() Decision {
	return deny(http.StatusBadRequest, "unknown role")
}

// CanChangeRole decides whether an actor may change a member's role.
// Ownership never moves through a role change: that is TransferOwnership's
// job, so both directions involving owner are denied here.
func CanChangeRole(actorRole, targetCurrentRole, targetNewRole Role) Decision {
	if !actorRole.Valid() || !targetCurrentRole.Valid() || !targetNewRole.Valid() {
		return denyInvalidRole()
	}

	if targetCurrentRole == RoleOwner {
		return deny(http.StatusForbidden, "the owner's role can only change via ownership transfer")
	}
	if targetNewRole == RoleOwner {
		return deny(http.StatusForbidden, "ownership is granted via ownership transfer, not a role change")
	}

	// Peer-admin protection: an admin cannot touch another admin.
	if actorRole == RoleAdmin && targetCurrentRole == RoleAdmin {
		return deny(http.StatusForbidden, "admins cannot change another admin's role")
	}

	// No self-or-peer elevation: non-owners may only assign roles strictly
	// below their own.
	if actorRole != RoleOwner && targetNewRole.Rank() >= actorRole.Rank() {
		return deny(http.StatusForbidden, "cannot assign a role equal to or above your own")
	}

	return allow()
}

// CanRemoveMember decides whether an actor may remove a member from the
// team. isSelf marks a member leaving on their own.
func CanRemoveMember(actorRole, targetRole Role, isSelf bool) Decision {
	if !actorRole.Valid() || !targetRole.Valid() {
		return denyInvalidRole()
	}

	if isSelf && targetRole == RoleOwner {
		return deny(http.StatusForbidden, "the owner must transfer ownership before leaving the team")
	}
	if targetRole == RoleOwner {
		return deny(http.StatusForbidden, "the owner cannot be removed")
	}

	// Peer-admin protection; an admin may still remove themself.
	if actorRole == RoleAdmin && targetRole == RoleAdmin && !isSelf {
		return deny(http.StatusForbidden, "admins cannot remove another admin")
	}

	return allow()
}

// CanInviteWithRole decides whether an inviter may send an invitation
// carrying the given role.
func CanInviteWithRole(inviterRole, inviteeRole Role) Decision {
	if !inviterRole.Valid() || !inviteeRole.Valid() {
		return denyInvalidRole()
	}

	if inviteeRole == RoleOwner {
		return deny(http.StatusForbidden, "cannot invite someone as owner")
	}
	if inviterRole != RoleOwner && inviteeRole.Rank() >= inviterRole.Rank() {
		return deny(http.StatusForbidden, "cannot invite with a role equal to or above your own")
	}

	return allow()
}
