package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodMpesa        = "mpesa"
	PaymentMethodAirtelMoney  = "airtel_money"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Estados de un pago.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// ValidPaymentMethod verifica que el método pertenezca al catálogo.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodAirtelMoney,
		PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Payment pago registrado contra una venta. El cuadre de caja del turno suma
// los pagos en efectivo completados y descuenta los vueltos.
type Payment struct {
	ID              string
	SaleID          string
	Method          string
	Amount          decimal.Decimal // mayor que cero
	ReferenceNumber string          // código M-Pesa, ID de tarjeta, etc.
	PhoneNumber     string          // para dinero móvil
	Status          string
	ProcessedBy     string
	ProcessedAt     time.Time
	Notes           string
}
