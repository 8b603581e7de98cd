package policy

import (
	"testing"

	"github.com/figu920/flowops/internal/models"
	"github.com/stretchr/testify/require"
)

func TestVisibilityScope(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		want Scope
	}{
		{"system admin is global", Principal{Role: models.RoleEmployee, IsSystemAdmin: true}, ScopeGlobal},
		{"admin role is global", Principal{Role: models.RoleAdmin}, ScopeGlobal},
		{"manager is establishment scoped", Principal{Role: models.RoleManager}, ScopeEstablishment},
		{"employee is establishment scoped", Principal{Role: models.RoleEmployee}, ScopeEstablishment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VisibilityScope(tt.p))
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	require.True(t, CanManageUsers(Principal{Role: models.RoleManager}))
	require.True(t, CanManageUsers(Principal{Role: models.RoleEmployee, IsSystemAdmin: true}))

	// Admin role alone is not enough to manage users.
	require.False(t, CanManageUsers(Principal{Role: models.RoleAdmin}))
	require.False(t, CanManageUsers(Principal{Role: models.RoleLead}))
}

func TestCanApprove(t *testing.T) {
	lead := Principal{Role: models.RoleLead}
	require.True(t, CanApprove(lead, models.RoleEmployee))
	require.False(t, CanApprove(lead, models.RoleLead))
	require.False(t, CanApprove(lead, models.RoleManager))

	admin := Principal{Role: models.RoleAdmin}
	require.True(t, CanApprove(admin, models.RoleManager))
	require.False(t, CanApprove(admin, models.RoleEmployee))

	employee := Principal{Role: models.RoleEmployee}
	require.False(t, CanApprove(employee, models.RoleEmployee))
}

func TestSameEstablishment(t *testing.T) {
	local := Principal{Role: models.RoleLead, Establishment: "Bison Den"}
	require.True(t, SameEstablishment(local, "Bison Den"))
	require.False(t, SameEstablishment(local, "North Grill"))

	sysadmin := Principal{Role: models.RoleEmployee, Establishment: "Bison Den", IsSystemAdmin: true}
	require.True(t, SameEstablishment(sysadmin, "North Grill"))
}
