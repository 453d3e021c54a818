package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-dsp/vantage/internal/rbac"
	_ "github.com/vantage-dsp/vantage/testing"
)

func TestPermissionsForRoleEmployeeAdminGetsFullCatalog(t *testing.T) {
	perms := rbac.PermissionsForRole(rbac.RoleEmployeeAdmin)
	require.ElementsMatch(t, rbac.Catalog, perms)
}

func TestPermissionsForRoleEmployeeTraffic(t *testing.T) {
	perms := rbac.PermissionsForRole(rbac.RoleEmployeeTraffic)
	require.ElementsMatch(t, []rbac.Permission{
		rbac.PermViewDashboard,
		rbac.PermViewAdvertisers,
		rbac.PermViewCampaigns,
		rbac.PermCreateCampaign,
		rbac.PermEditCampaign,
		rbac.PermViewAdGroups,
		rbac.PermCreateAdGroup,
		rbac.PermEditAdGroup,
		rbac.PermViewCreatives,
		rbac.PermCreateCreative,
		rbac.PermEditCreative,
		rbac.PermViewAudiences,
		rbac.PermCreateAudience,
		rbac.PermEditAudience,
		rbac.PermViewReports,
		rbac.PermExportReports,
	}, perms)
}

func TestPermissionsForRoleAdvertiserAdmin(t *testing.T) {
	perms := rbac.PermissionsForRole(rbac.RoleAdvertiserAdmin)
	require.ElementsMatch(t, []rbac.Permission{
		rbac.PermViewDashboard,
		rbac.PermViewAdvertisers,
		rbac.PermEditAdvertiser,
		rbac.PermViewCampaigns,
		rbac.PermCreateCampaign,
		rbac.PermEditCampaign,
		rbac.PermDeleteCampaign,
		rbac.PermViewAdGroups,
		rbac.PermCreateAdGroup,
		rbac.PermEditAdGroup,
		rbac.PermDeleteAdGroup,
		rbac.PermViewCreatives,
		rbac.PermCreateCreative,
		rbac.PermEditCreative,
		rbac.PermDeleteCreative,
		rbac.PermApproveCreative,
		rbac.PermViewAudiences,
		rbac.PermCreateAudience,
		rbac.PermEditAudience,
		rbac.PermDeleteAudience,
		rbac.PermViewReports,
		rbac.PermExportReports,
	}, perms)
}

func TestPermissionsForRoleAdvertiserTraffic(t *testing.T) {
	employee := rbac.PermissionsForRole(rbac.RoleEmployeeTraffic)
	var expected []rbac.Permission
	for _, p := range employee {
		if p == rbac.PermViewAdvertisers {
			continue
		}
		expected = append(expected, p)
	}
	require.ElementsMatch(t, expected, rbac.PermissionsForRole(rbac.RoleAdvertiserTraffic))
}

// The admin roles are deliberately not supersets of one another:
// platform admins hold advertiser-destructive grants that advertiser
// admins never receive.
func TestAdminRolesAreNotSupersets(t *testing.T) {
	require.True(t, rbac.HasRolePermission(rbac.RoleEmployeeAdmin, rbac.PermDeleteAdvertiser))
	require.False(t, rbac.HasRolePermission(rbac.RoleAdvertiserAdmin, rbac.PermDeleteAdvertiser))
	require.True(t, rbac.HasRolePermission(rbac.RoleEmployeeAdmin, rbac.PermManageAdvertiserBudget))
	require.False(t, rbac.HasRolePermission(rbac.RoleAdvertiserAdmin, rbac.PermManageAdvertiserBudget))
}

func TestAdvertiserAdminLacksPlatformGrants(t *testing.T) {
	for _, p := range []rbac.Permission{
		rbac.PermDeleteAdvertiser,
		rbac.PermManageAdvertiserBudget,
		rbac.PermCreateAdvertiser,
		rbac.PermManageUsers,
		rbac.PermViewAuditLog,
	} {
		require.False(t, rbac.HasRolePermission(rbac.RoleAdvertiserAdmin, p), "unexpected grant %s", p)
	}
}

func TestPermissionsForRoleUnknownIsEmpty(t *testing.T) {
	perms := rbac.PermissionsForRole("super_admin")
	require.NotNil(t, perms)
	require.Empty(t, perms)
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := rbac.PermissionsForRole(rbac.RoleAdvertiserTraffic)
	perms[0] = "tampered"
	require.NotContains(t, rbac.PermissionsForRole(rbac.RoleAdvertiserTraffic), rbac.Permission("tampered"))
}

func TestHasAnyRolePermission(t *testing.T) {
	require.True(t, rbac.HasAnyRolePermission(rbac.RoleEmployeeTraffic, []rbac.Permission{
		rbac.PermManageUsers,
		rbac.PermViewCampaigns,
	}))
	require.False(t, rbac.HasAnyRolePermission(rbac.RoleEmployeeTraffic, []rbac.Permission{
		rbac.PermManageUsers,
		rbac.PermDeleteCampaign,
	}))
}

// Any([]) is false while All([]) is true, for every role including
// unknown ones. Guards rely on this asymmetry.
func TestEmptyRequirementAsymmetry(t *testing.T) {
	for _, role := range append(rbac.Roles(), rbac.Role("ghost")) {
		require.False(t, rbac.HasAnyRolePermission(role, nil), "role %s", role)
		require.False(t, rbac.HasAnyRolePermission(role, []rbac.Permission{}), "role %s", role)
		require.True(t, rbac.HasAllRolePermissions(role, nil), "role %s", role)
		require.True(t, rbac.HasAllRolePermissions(role, []rbac.Permission{}), "role %s", role)
	}
}

func TestHasAllRolePermissions(t *testing.T) {
	require.True(t, rbac.HasAllRolePermissions(rbac.RoleEmployeeAdmin, rbac.Catalog))
	require.False(t, rbac.HasAllRolePermissions(rbac.RoleAdvertiserAdmin, []rbac.Permission{
		rbac.PermViewCampaigns,
		rbac.PermDeleteAdvertiser,
	}))
}

func TestRoleDisplayName(t *testing.T) {
	require.Equal(t, "Platform Administrator", rbac.RoleDisplayName(rbac.RoleEmployeeAdmin))
	require.Equal(t, "Advertiser Trafficker", rbac.RoleDisplayName(rbac.RoleAdvertiserTraffic))
	require.Equal(t, "Regional Manager", rbac.RoleDisplayName("regional_manager"))
}

func TestCatalogHasNoDuplicates(t *testing.T) {
	seen := make(map[rbac.Permission]struct{}, len(rbac.Catalog))
	for _, p := range rbac.Catalog {
		_, dup := seen[p]
		require.False(t, dup, "duplicate catalog entry %s", p)
		seen[p] = struct{}{}
	}
}

// Every granted permission must exist in the catalog; the tables cannot
// mint tokens of their own.
func TestRoleTablesStayWithinCatalog(t *testing.T) {
	catalog := make(map[rbac.Permission]struct{}, len(rbac.Catalog))
	for _, p := range rbac.Catalog {
		catalog[p] = struct{}{}
	}
	for _, role := range rbac.Roles() {
		for _, p := range rbac.PermissionsForRole(role) {
			_, ok := catalog[p]
			require.True(t, ok, "role %s grants unknown permission %s", role, p)
		}
	}
}
