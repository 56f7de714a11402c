package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito. Se resuelve por ProductID o Barcode;
// para líneas ad-hoc basta IsAdHoc + AdHocName + UnitPrice.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Barcode   string           `json:"barcode"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // nil = precio de catálogo
	Discount  decimal.Decimal  `json:"discount"`
	IsAdHoc   bool             `json:"is_ad_hoc"`
	AdHocName string           `json:"ad_hoc_name"`
}

// CreateSaleRequest crea un borrador de venta (estado pending).
type CreateSaleRequest struct {
	CustomerID     string            `json:"customer_id"`
	Items          []SaleItemRequest `json:"items"`
	DiscountCode   string            `json:"discount_code"`
	PointsDiscount decimal.Decimal   `json:"points_discount"`
	Notes          string            `json:"notes"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	IsAdHoc   bool            `json:"is_ad_hoc"`
	AdHocName string          `json:"ad_hoc_name,omitempty"`
}

// SaleResponse cabecera de venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	BranchID       string             `json:"branch_id,omitempty"`
	CashierID      string             `json:"cashier_id"`
	CustomerID     string             `json:"customer_id,omitempty"`
	ShiftID        string             `json:"shift_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	PointsDiscount decimal.Decimal    `json:"points_discount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PointsEarned   int                `json:"points_earned"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items"`
}

// FiscalResponse artefacto fiscal de una venta completada.
type FiscalResponse struct {
	SaleNumber  string     `json:"sale_number"`
	Signature   string     `json:"signature"`
	QRPayload   string     `json:"qr_payload"`
	QRImage     string     `json:"qr_image,omitempty"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// RecordPaymentRequest registra un pago completado contra una venta.
type RecordPaymentRequest struct {
	Method          string          `json:"method"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"reference_number"`
	PhoneNumber     string          `json:"phone_number"`
	Notes           string          `json:"notes"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	ProcessedAt time.Time       `json:"processed_at"`
}
