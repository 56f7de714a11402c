package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente del programa de fidelización.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerResponse cliente con su estado de fidelización.
type CustomerResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email,omitempty"`
	Tier              string          `json:"tier"`
	TotalPoints       int             `json:"total_points"`
	LifetimePurchases decimal.Decimal `json:"lifetime_purchases"`
	CreatedAt         time.Time       `json:"created_at"`
}

// AdjustPointsRequest ajuste manual de puntos (positivo o negativo).
type AdjustPointsRequest struct {
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// RedeemPointsRequest redención de puntos, opcionalmente contra una venta.
type RedeemPointsRequest struct {
	Points int    `json:"points"`
	SaleID string `json:"sale_id"`
}

// PointsResponse resultado de una operación de puntos.
type PointsResponse struct {
	CustomerID     string `json:"customer_id"`
	PreviousPoints int    `json:"previous_points"`
	NewPoints      int    `json:"new_points"`
	Tier           string `json:"tier"`
}
