// Package authz centralizes the capability checks gating pet and user
// mutation. Every function is pure and total: it takes only the minimal
// facts needed (actor id/role, target ownership) and never touches I/O.
// Callers stop processing on a false result; they never re-derive policy.
package authz

import (
	"pawmatch/internal/models"
)

// Actor is the authenticated identity a request acts as, as read back from
// its token claims.
type Actor struct {
	ID       uint
	Username string
	Role     models.Role
}

// CanModifyPet reports whether the actor may update or delete the pet.
// Admins may modify any pet; otherwise only the supplying shelter may.
func CanModifyPet(actor Actor, pet *models.Pet) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return pet != nil && actor.ID == pet.SupplierID
}

// CanCreatePet reports whether the actor may list a new pet for adoption.
func CanCreatePet(actor Actor) bool {
	return actor.Role == models.RoleShelter
}

// CanAdoptPet reports whether the actor may finalize an adoption. Whether
// the pet is still available is a separate state check made by the caller.
func CanAdoptPet(actor Actor) bool {
	return actor.Role == models.RoleAdopter
}

// CanManageUsers reports whether the actor may list, read, update, or
// delete arbitrary user records and view dashboard stats.
func CanManageUsers(actor Actor) bool {
	return actor.Role == models.RoleAdmin
}

// SignupRoleAllowed reports whether the requested role may be taken at
// signup. Admin is always rejected here: no authenticated actor exists yet
// at signup time, so admin accounts can only come from an existing admin.
func SignupRoleAllowed(requested models.Role) bool {
	return requested == models.RoleAdopter || requested == models.RoleShelter
}
