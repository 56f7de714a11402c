package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// ProductRepository acceso a productos del catálogo.
// GetByID/GetByBarcode devuelven (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(branchID, barcode string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro
	// de la transacción activa; fuera de una tx equivale a GetByID.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe la cantidad resultante. Solo el libro de inventario
	// debe llamarlo, siempre bajo bloqueo de fila.
	UpdateStock(id string, quantity int) error
	Update(p *entity.Product) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(branchID string) ([]*entity.Product, error)
}
