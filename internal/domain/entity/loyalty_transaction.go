package entity

import "time"

// Tipos de transacción de puntos.
const (
	LoyaltyEarn   = "earn"
	LoyaltyRedeem = "redeem"
	LoyaltyAdjust = "adjust"
	LoyaltyExpire = "expire"
)

// LoyaltyTransaction registro inmutable del libro de puntos, solo-append.
// Invariante: NewPoints = PreviousPoints + Points.
type LoyaltyTransaction struct {
	ID             string
	CustomerID     string
	Points         int // positivo al ganar, negativo al redimir
	Type           string
	SaleID         string // opcional, venta asociada
	Description    string
	PreviousPoints int
	NewPoints      int
	CreatedAt      time.Time
	CreatedBy      string
}
