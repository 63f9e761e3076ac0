package user

import (
	"github.com/rizkyab/partkatalog/internal/models"
)

// Role scoping is kept as explicit tables rather than inline conditionals so
// a new role only needs rows here, not handler changes. Superadmin is
// unrestricted; admin is confined to plain user accounts and never sees
// partshop or superadmin rows.

var hiddenRolesFor = map[string][]string{
	models.RoleAdmin: {models.RolePartshop, models.RoleSuperadmin},
}

var assignableRolesFor = map[string][]string{
	models.RoleAdmin: {models.RoleUser},
	models.RoleSuperadmin: {
		models.RoleUser, models.RoleAdmin, models.RoleSuperadmin, models.RolePartshop,
	},
}

var manageableRolesFor = map[string][]string{
	models.RoleAdmin: {models.RoleUser},
	models.RoleSuperadmin: {
		models.RoleUser, models.RoleAdmin, models.RoleSuperadmin, models.RolePartshop,
	},
}

// hiddenRoles lists the roles the actor must not see in listings.
func hiddenRoles(actorRole string) []string {
	if actorRole == models.RoleSuperadmin {
		return nil
	}
	if hidden, ok := hiddenRolesFor[actorRole]; ok {
		return hidden
	}
	return []string{models.RolePartshop, models.RoleSuperadmin}
}

// canAssign reports whether the actor may create an account with, or grant,
// the given role.
func canAssign(actorRole, role string) bool {
	for _, r := range assignableRolesFor[actorRole] {
		if r == role {
			return true
		}
	}
	return false
}

// canManage reports whether the actor may modify or delete an account that
// currently holds the given role.
func canManage(actorRole, targetRole string) bool {
	for _, r := range manageableRolesFor[actorRole] {
		if r == targetRole {
			return true
		}
	}
	return false
}
