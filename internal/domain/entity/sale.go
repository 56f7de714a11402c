package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// Sale cabecera de una venta. El número se asigna en el constructor,
// antes de persistir; nunca como efecto oculto del guardado.
type Sale struct {
	ID             string
	SaleNumber     string // único, formato SALE-XXXXXXXXXXXX
	BranchID       string
	CashierID      string
	CustomerID     string // opcional
	ShiftID        string // opcional
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	PointsDiscount decimal.Decimal
	TotalAmount    decimal.Decimal
	PointsEarned   int
	Status         string
	Notes          string

	// Artefacto fiscal (recibo simulado eTIMS).
	RcptSignature     string
	FiscalQR          string
	FiscalQRImage     string // puede quedar vacío si no hay renderizador
	FiscalSubmitted   bool
	FiscalSubmittedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// NewSaleNumber genera un número de venta único: SALE- más 12 hex en mayúscula.
func NewSaleNumber() string {
	return "SALE-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}
