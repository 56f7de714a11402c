package entity

import "time"

// Roles de la aplicación.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User usuario del sistema (cajero, gerente o admin), adscrito a una sucursal.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	BranchID     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
