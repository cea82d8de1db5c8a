package team

import "slices"

// Permission names a team-scoped action.
type Permission string

// Team-scoped permissions.
const (
	PermissionViewPolicies    Permission = "policies.view"
	PermissionEditPolicies    Permission = "policies.edit"
	PermissionExecutePolicies Permission = "policies.execute"
	PermissionSharePolicies   Permission = "policies.share"
	PermissionViewReports     Permission = "reports.view"
	PermissionInviteMembers   Permission = "members.invite"
	PermissionManageMembers   Permission = "members.manage"
	PermissionManageBilling   Permission = "billing.manage"
	PermissionDeleteTeam      Permission = "team.delete"
)

// permissionsByRole is authored explicitly rather than computed from the
// role order, so exceptions stay possible. Each stronger role happens to be
// a superset of the weaker one today.
var permissionsByRole = map[Role][]Permission{
	RoleViewer: {
		PermissionViewPolicies,
		PermissionViewReports,
	},
	RoleMember: {
		PermissionViewPolicies,
		PermissionViewReports,
		PermissionEditPolicies,
		PermissionExecutePolicies,
	},
	RoleAdmin: {
		PermissionViewPolicies,
		PermissionViewReports,
		PermissionEditPolicies,
		PermissionExecutePolicies,
		PermissionSharePolicies,
		PermissionInviteMembers,
		PermissionManageMembers,
	},
	RoleOwner: {
		PermissionViewPolicies,
		PermissionViewReports,
		PermissionEditPolicies,
		PermissionExecutePolicies,
		PermissionSharePolicies,
		PermissionInviteMembers,
		PermissionManageMembers,
		PermissionManageBilling,
		PermissionDeleteTeam,
	},
}

// HasPermission reports whether the role's permission set includes the
// given permission. Unknown roles have no permissions.
func HasPermission(role Role, permission Permission) bool {
	return slices.Contains(permissionsByRole[role], permission)
}
