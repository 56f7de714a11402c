package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// PaymentRepository pagos registrados contra una venta.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	ListBySale(saleID string) ([]*entity.Payment, error)
}
