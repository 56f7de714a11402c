package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// DiscountRepository códigos de descuento. GetByCode devuelve (nil, nil)
// cuando el código no existe.
type DiscountRepository interface {
	Create(d *entity.Discount) error
	GetByCode(code string) (*entity.Discount, error)
	// IncrementUsage suma 1 a times_used de forma atómica en el almacén,
	// sin leer-modificar-escribir en el cliente.
	IncrementUsage(id string) error
	Update(d *entity.Discount) error
}
