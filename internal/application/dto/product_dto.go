package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo de la sucursal.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	IsLowStock    bool            `json:"is_low_stock"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}
