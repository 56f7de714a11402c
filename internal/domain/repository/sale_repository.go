package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// SaleRepository ventas y sus líneas. La venta posee sus líneas en exclusiva.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta durante el finalizado para
	// que dos finalizados concurrentes de la misma venta se serialicen.
	GetForUpdate(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	Update(s *entity.Sale) error
	ListCompletedByShift(shiftID string) ([]*entity.Sale, error)
}
