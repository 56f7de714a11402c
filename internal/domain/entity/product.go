package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una sucursal.
// StockQuantity solo se muta a través del libro de inventario (movimientos);
// nunca directamente desde handlers ni CRUD.
type Product struct {
	ID            string
	BranchID      string
	Name          string
	Barcode       string // único por sucursal
	Description   string
	Price         decimal.Decimal // precio de venta, IVA incluido
	CostPrice     decimal.Decimal // precio de compra al por mayor
	StockQuantity int             // nunca negativo en la ruta de venta
	ReorderLevel  int             // alerta cuando el stock cae a este nivel
	TaxRate       decimal.Decimal // porcentaje IVA
	CategoryID    string
	SupplierID    string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el producto está en o por debajo del punto de reorden.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}
