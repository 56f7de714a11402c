package inventory

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// TxRunner ejecuta el ajuste de stock en una transacción: descuento y
// movimiento de auditoría se escriben juntos o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
