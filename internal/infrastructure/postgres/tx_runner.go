package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

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

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los repos
// que recibe cada callback quedan atados a la misma tx; el commit es al final
// y cualquier error hace rollback de todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción de ajuste de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewStockMovementRepository(q))
	})
}

// RunDraft transacción de creación de borrador de venta.
func (r *TxRunner) RunDraft(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	discountRepo repository.DiscountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSaleRepository(q), NewDiscountRepository(q))
	})
}

// RunFinalize transacción de finalizado de venta: inventario, puntos,
// estado de la venta y totales del turno en un solo commit.
func (r *TxRunner) RunFinalize(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository,
	shiftRepo repository.ShiftRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewSaleRepository(q),
			NewProductRepository(q),
			NewStockMovementRepository(q),
			NewCustomerRepository(q),
			NewLoyaltyRepository(q),
			NewShiftRepository(q),
		)
	})
}

// RunShiftClose transacción de cierre de turno.
func (r *TxRunner) RunShiftClose(ctx context.Context, fn func(
	shiftRepo repository.ShiftRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewShiftRepository(q), NewSaleRepository(q), NewPaymentRepository(q))
	})
}

// LoyaltyTxRunner runner dedicado para operaciones de puntos: el puerto de
// loyalty también se llama Run y ese nombre ya lo toma inventario en TxRunner.
type LoyaltyTxRunner struct {
	inner *TxRunner
}

// NewLoyaltyTxRunner construye el runner de puntos sobre el mismo pool.
func NewLoyaltyTxRunner(pool *pgxpool.Pool) *LoyaltyTxRunner {
	return &LoyaltyTxRunner{inner: NewTxRunner(pool)}
}

// Run transacción de saldo + libro de puntos.
func (r *LoyaltyTxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository,
) error) error {
	return r.inner.run(ctx, func(q Querier) error {
		return fn(NewCustomerRepository(q), NewLoyaltyRepository(q))
	})
}
