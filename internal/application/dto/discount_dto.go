package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDiscountRequest alta de código de descuento (solo gerencia).
type CreateDiscountRequest struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Type              string          `json:"discount_type"`
	Value             decimal.Decimal `json:"value"`
	MinPurchaseAmount decimal.Decimal `json:"min_purchase_amount"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	MaxUses           *int            `json:"max_uses"`
}

// ValidateDiscountRequest consulta de vigencia de un código.
type ValidateDiscountRequest struct {
	Code string `json:"code"`
}

// DiscountResponse código de descuento con su vigencia.
type DiscountResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"discount_type"`
	Value     decimal.Decimal `json:"value"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	MaxUses   *int            `json:"max_uses,omitempty"`
	TimesUsed int             `json:"times_used"`
	IsValid   bool            `json:"is_valid"`
}
