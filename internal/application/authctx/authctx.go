// Package authctx: contexto de autorización explícito. Sustituye el estado
// ambiental de middleware por un objeto que viaja como argumento a cada
// operación del núcleo.
package authctx

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// Actor identidad efectiva de la petición: usuario, sucursal y rol.
type Actor struct {
	UserID   string
	BranchID string
	Role     string
}

// Valid indica si el actor tiene identidad suficiente para operar en caja.
func (a Actor) Valid() bool {
	return a.UserID != ""
}

// IsManager indica si el actor puede ejecutar operaciones de gerencia
// (ajustes de stock, cierre de turnos ajenos).
func (a Actor) IsManager() bool {
	return a.Role == entity.RoleManager || a.Role == entity.RoleAdmin
}
