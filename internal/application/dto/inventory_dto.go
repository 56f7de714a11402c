package dto

import "time"

// AdjustStockRequest ajuste manual de inventario.
type AdjustStockRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"` // positivo entrada, negativo salida
	MovementType string `json:"movement_type"`
	Reason       string `json:"reason"`
}

// StockMovementResponse registro de auditoría devuelto tras un ajuste.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"movement_type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	ReferenceID      string    `json:"reference_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
