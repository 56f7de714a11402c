package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// ShiftRepository turnos de caja. GetOpenByCashier devuelve (nil, nil) cuando
// el cajero no tiene turno abierto.
type ShiftRepository interface {
	Create(s *entity.Shift) error
	GetByID(id string) (*entity.Shift, error)
	GetOpenByCashier(cashierID string) (*entity.Shift, error)
	// GetForUpdate bloquea la fila del turno dentro de la transacción activa.
	GetForUpdate(id string) (*entity.Shift, error)
	Update(s *entity.Shift) error
}
