package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenShiftRequest apertura de turno de caja.
type OpenShiftRequest struct {
	OpeningCash decimal.Decimal `json:"opening_cash"`
	Notes       string          `json:"notes"`
}

// CloseShiftRequest cierre de turno con conteo de efectivo.
type CloseShiftRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash"`
	Notes       string          `json:"notes"`
}

// ShiftResponse estado del turno, incluido el cuadre al cierre.
type ShiftResponse struct {
	ID                string           `json:"id"`
	CashierID         string           `json:"cashier_id"`
	BranchID          string           `json:"branch_id,omitempty"`
	OpeningTime       time.Time        `json:"opening_time"`
	ClosingTime       *time.Time       `json:"closing_time,omitempty"`
	OpeningCash       decimal.Decimal  `json:"opening_cash"`
	ClosingCash       *decimal.Decimal `json:"closing_cash,omitempty"`
	ExpectedCash      *decimal.Decimal `json:"expected_cash,omitempty"`
	CashDifference    *decimal.Decimal `json:"cash_difference,omitempty"`
	Status            string           `json:"status"`
	TotalSales        decimal.Decimal  `json:"total_sales"`
	TotalTransactions int              `json:"total_transactions"`
	ClosedBy          string           `json:"closed_by,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}
