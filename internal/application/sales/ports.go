package sales

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// TxRunner ejecuta las fases transaccionales del motor de ventas.
// Cada callback recibe repositorios ligados a la misma transacción;
// si el callback retorna error se hace rollback completo.
type TxRunner interface {
	RunDraft(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		discountRepo repository.DiscountRepository,
	) error) error

	RunFinalize(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
		loyaltyRepo repository.LoyaltyRepository,
		shiftRepo repository.ShiftRepository,
	) error) error
}

// ReceiptCache cachea respuestas fiscales ya firmadas. Una implementación
// que falla debe degradar en silencio: el caché nunca bloquea la venta.
type ReceiptCache interface {
	GetFiscal(ctx context.Context, saleID string) (*dto.FiscalResponse, bool)
	SetFiscal(ctx context.Context, saleID string, resp *dto.FiscalResponse)
}
