package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// CustomerRepository acceso a clientes. GetByID/GetByPhone devuelven (nil, nil)
// cuando no existe.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente dentro de la transacción activa.
	GetForUpdate(id string) (*entity.Customer, error)
	Update(c *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
}
