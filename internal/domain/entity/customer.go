package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de fidelización.
const (
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

// Customer cliente del programa de fidelización.
// TotalPoints nunca negativo; LifetimePurchases solo crece.
type Customer struct {
	ID                string
	Name              string
	Phone             string // único
	Email             string
	Tier              string
	TotalPoints       int
	LifetimePurchases decimal.Decimal
	Address           string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
