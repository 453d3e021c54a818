package rbac

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PermissionsForRole returns the permissions granted to role.
//
// The lookup is pure and total: an unrecognized role yields an empty set
// rather than an error, so a corrupted or future-incompatible persisted
// session degrades to zero permissions instead of crashing a caller.
// The returned slice is a copy; mutating it never touches the tables.
func PermissionsForRole(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return []Permission{}
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasRolePermission reports whether role grants permission.
func HasRolePermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// HasAnyRolePermission reports whether role grants at least one of the
// given permissions. An empty requirement list yields false: "any of zero
// requirements" must not trivially grant access.
func HasAnyRolePermission(role Role, permissions []Permission) bool {
	granted := permissionSet(role)
	for _, p := range permissions {
		if _, ok := granted[p]; ok {
			return true
		}
	}
	return false
}

// HasAllRolePermissions reports whether role grants every one of the given
// permissions. An empty requirement list yields true (vacuous truth): a
// route declaring no requirements imposes none. Route guards depend on
// this asymmetry with HasAnyRolePermission.
func HasAllRolePermissions(role Role, permissions []Permission) bool {
	granted := permissionSet(role)
	for _, p := range permissions {
		if _, ok := granted[p]; !ok {
			return false
		}
	}
	return true
}

// RoleDisplayName returns the human-readable label for role. Unknown roles
// get a title-cased rendering of the raw value so logs and UI stay legible.
func RoleDisplayName(role Role) string {
	if name, ok := roleDisplayNames[role]; ok {
		return name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(role), "_", " "))
}

// RoleDescription returns the description for role, or "" when unknown.
func RoleDescription(role Role) string {
	return roleDescriptions[role]
}

// Roles returns the closed set of known roles in a stable order.
func Roles() []Role {
	return []Role{RoleEmployeeAdmin, RoleEmployeeTraffic, RoleAdvertiserAdmin, RoleAdvertiserTraffic}
}

func permissionSet(role Role) map[Permission]struct{} {
	perms := rolePermissions[role]
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
