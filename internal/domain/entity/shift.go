package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un turno de caja. open -> closed, terminal.
const (
	ShiftStatusOpen   = "open"
	ShiftStatusClosed = "closed"
)

// Shift sesión de caja de un cajero. Un solo turno abierto por cajero.
// ExpectedCash y CashDifference se calculan al cierre:
//
//	expected = opening + pagos en efectivo completados - vueltos entregados
//	difference = closing - expected (positivo = sobrante, negativo = faltante)
type Shift struct {
	ID                string
	CashierID         string
	BranchID          string
	OpeningTime       time.Time
	ClosingTime       *time.Time
	OpeningCash       decimal.Decimal
	ClosingCash       *decimal.Decimal
	ExpectedCash      *decimal.Decimal
	CashDifference    *decimal.Decimal
	Status            string
	TotalSales        decimal.Decimal
	TotalTransactions int
	ClosedBy          string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
