package loyalty

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// TxRunner ejecuta una operación de puntos en transacción: el saldo del
// cliente y el registro del libro cambian juntos o no cambia nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		loyaltyRepo repository.LoyaltyRepository,
	) error) error
}
