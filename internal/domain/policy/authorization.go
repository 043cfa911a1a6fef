// Package policy concentra las reglas de autorización sobre cuentas.
package policy

import "github.com/jhoicas/marketplace-identity/internal/domain/entity"

// Actor quien ejecuta la operación.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin indica si el actor tiene rol Admin.
func IsAdmin(actor Actor) bool {
	return actor.Role == entity.RoleAdmin
}

// CanActOn indica si el actor puede operar sobre la cuenta targetID:
// la propia cuenta o cualquier cuenta si es Admin.
func CanActOn(actor Actor, targetID string) bool {
	if actor.ID != "" && actor.ID == targetID {
		return true
	}
	return IsAdmin(actor)
}
