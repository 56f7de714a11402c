package shifts

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// TxRunner ejecuta el cierre de turno en una transacción: el cuadre se
// calcula y el turno se cierra de forma atómica, bajo bloqueo de fila.
type TxRunner interface {
	RunShiftClose(ctx context.Context, fn func(
		shiftRepo repository.ShiftRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
