package team_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policywise/entitlements/svc/team"
)

func TestHasPermission(t *testing.T) {
	t.Parallel()

	t.Run("privilege boundaries", func(t *testing.T) {
		t.Parallel()

		assert.True(t, team.HasPermission(team.RoleViewer, team.PermissionViewPolicies))
		assert.False(t, team.HasPermission(team.RoleViewer, team.PermissionEditPolicies))

		assert.True(t, team.HasPermission(team.RoleMember, team.PermissionExecutePolicies))
		assert.False(t, team.HasPermission(team.RoleMember, team.PermissionSharePolicies))

		assert.True(t, team.HasPermission(team.RoleAdmin, team.PermissionInviteMembers))
		assert.False(t, team.HasPermission(team.RoleAdmin, team.PermissionManageBilling))
		assert.False(t, team.HasPermission(team.RoleAdmin, team.PermissionDeleteTeam))

		assert.True(t, team.HasPermission(team.RoleOwner, team.PermissionManageBilling))
		assert.True(t, team.HasPermission(team.RoleOwner, team.PermissionDeleteTeam))
	})

	t.Run("each role is a superset of the weaker one", func(t *testing.T) {
		t.Parallel()

		order := []team.Role{team.RoleViewer, team.RoleMember, team.RoleAdmin, team.RoleOwner}
		all := []team.Permission{
			team.PermissionViewPolicies, team.PermissionEditPolicies,
			team.PermissionExecutePolicies, team.PermissionSharePolicies,
			team.PermissionViewReports, team.PermissionInviteMembers,
			team.PermissionManageMembers, team.PermissionManageBilling,
			team.PermissionDeleteTeam,
		}

		for i := 1; i < len(order); i++ {
			weaker, stronger := order[i-1], order[i]
			for _, permission := range all {
				if team.HasPermission(weaker, permission) {
					assert.True(t, team.HasPermission(stronger, permission),
						"%s has %s but %s does not", weaker, permission, stronger)
				}
			}
		}
	})

	t.Run("unknown role has nothing", func(t *testing.T) {
		t.Parallel()

		assert.False(t, team.HasPermission(team.Role("superuser"), team.PermissionViewPolicies))
	})
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"viewer", "member", "admin", "owner"} {
		role, err := team.ParseRole(name)
		require.NoError(t, err)
		assert.Equal(t, team.Role(name), role)
	}

	for _, name := range []string{"", "Owner", "root", "admin "} {
		_, err := team.ParseRole(name)
		assert.ErrorIs(t, err, team.ErrInvalidRole, "input %q", name)
	}
}

func TestRole_Rank(t *testing.T) {
	t.Parallel()

	assert.Less(t, team.RoleViewer.Rank(), team.RoleMember.Rank())
	assert.Less(t, team.RoleMember.Rank(), team.RoleAdmin.Rank())
	assert.Less(t, team.RoleAdmin.Rank(), team.RoleOwner.Rank())
}
