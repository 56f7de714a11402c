package memory

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/application/inventory"
	"github.com/dukapos/dukapos-api/internal/application/loyalty"
	"github.com/dukapos/dukapos-api/internal/application/sales"
	"github.com/dukapos/dukapos-api/internal/application/shifts"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ shifts.TxRunner = (*TxRunner)(nil)
var _ loyalty.TxRunner = (*LoyaltyTxRunner)(nil)

// TxRunner transacciones sobre el almacén en memoria. Las transacciones se
// serializan con el mutex de transacción del almacén y el rollback se
// implementa con snapshot: si el callback falla, el estado completo vuelve al
// punto de partida. Con esto los GetForUpdate se comportan como bloqueos de
// fila reales: dentro de una transacción nadie más puede escribir, sin
// importar desde qué runner llegue.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// Run transacción de ajuste de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Products(), r.s.Movements())
	})
}

// RunDraft transacción de creación de borrador de venta.
func (r *TxRunner) RunDraft(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	discountRepo repository.DiscountRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Sales(), r.s.Discounts())
	})
}

// RunFinalize transacción de finalizado de venta.
func (r *TxRunner) RunFinalize(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository,
	shiftRepo repository.ShiftRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Sales(), r.s.Products(), r.s.Movements(), r.s.Customers(), r.s.Loyalty(), r.s.Shifts())
	})
}

// RunShiftClose transacción de cierre de turno.
func (r *TxRunner) RunShiftClose(ctx context.Context, fn func(
	shiftRepo repository.ShiftRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Shifts(), r.s.Sales(), r.s.Payments())
	})
}

// LoyaltyTxRunner transacciones de puntos sobre el mismo almacén.
type LoyaltyTxRunner struct {
	inner *TxRunner
}

// NewLoyaltyTxRunner construye el runner de puntos.
func NewLoyaltyTxRunner(s *Store) *LoyaltyTxRunner {
	return &LoyaltyTxRunner{inner: NewTxRunner(s)}
}

// Run transacción de saldo + libro de puntos.
func (r *LoyaltyTxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository,
) error) error {
	return r.inner.run(func() error {
		return fn(r.inner.s.Customers(), r.inner.s.Loyalty())
	})
}
