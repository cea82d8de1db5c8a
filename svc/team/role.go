package team

import "fmt"

// Role is a team member's role. Roles are totally ordered by privilege:
// viewer < member < admin < owner.
type Role string

// Team roles, weakest to strongest.
const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

var roleRank = map[Role]int{
	RoleViewer: 0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the role's position in the privilege order, 0 for viewer
// through 3 for owner.
func (r Role) Rank() int {
	return roleRank[r]
}

// ParseRole validates a role name coming from untrusted input. Malformed
// names are rejected before any storage access.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return role, nil
}
