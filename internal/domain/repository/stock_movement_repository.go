package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// StockMovementRepository bitácora de inventario, solo-append: sin update ni
// delete en operación normal.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// LastByProduct devuelve el movimiento más reciente del producto, o (nil, nil).
	LastByProduct(productID string) (*entity.StockMovement, error)
}
