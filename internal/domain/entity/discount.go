package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Discount código de descuento con ventana de vigencia y tope de usos.
type Discount struct {
	ID                string
	Code              string // único
	Name              string
	Type              string
	Value             decimal.Decimal
	MinPurchaseAmount decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	RequiresApproval  bool
	IsActive          bool
	MaxUses           *int // nil = ilimitado
	TimesUsed         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValid indica si el código puede aplicarse en el instante dado:
// activo, dentro de la ventana y con usos disponibles.
func (d *Discount) IsValid(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if now.Before(d.StartDate) || now.After(d.EndDate) {
		return false
	}
	if d.MaxUses != nil && d.TimesUsed >= *d.MaxUses {
		return false
	}
	return true
}
