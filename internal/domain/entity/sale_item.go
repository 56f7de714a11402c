package entity

import "github.com/shopspring/decimal"

// SaleItem línea de venta. Pertenece en exclusiva a su Sale (borrado en cascada
// solo mientras la venta sigue pendiente); Product se referencia, nunca se
// borra en cascada desde una venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string // vacío para líneas ad-hoc
	Quantity  int    // mínimo 1
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal // unit_price*quantity - discount
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal // IVA incluido en el subtotal
	IsAdHoc   bool
	AdHocName string
}
