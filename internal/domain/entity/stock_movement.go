package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"
	MovementTypePurchase   = "purchase"
	MovementTypeAdjustment = "adjustment"
	MovementTypeReturn     = "return"
	MovementTypeDamage     = "damage"
	MovementTypeTransfer   = "transfer"
)

// ValidMovementType verifica que el tipo pertenezca al catálogo de movimientos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment,
		MovementTypeReturn, MovementTypeDamage, MovementTypeTransfer:
		return true
	}
	return false
}

// IsDepletionMovement indica si el tipo representa una salida de mercancía.
// Para estos tipos nunca se permite que el stock resultante quede negativo.
func IsDepletionMovement(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypeDamage, MovementTypeTransfer:
		return true
	}
	return false
}

// StockMovement registro inmutable de auditoría de inventario, solo-append.
// Invariante: NewQuantity = PreviousQuantity + Quantity.
type StockMovement struct {
	ID               string
	ProductID        string
	BranchID         string
	Type             string
	Quantity         int // positivo para entradas, negativo para salidas
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	ReferenceID      string // número de venta, orden de compra, etc.
	CreatedAt        time.Time
	CreatedBy        string // UserID
}
