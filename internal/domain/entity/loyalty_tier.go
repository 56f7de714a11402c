package entity

import "github.com/shopspring/decimal"

// LoyaltyTier define el umbral de compras acumuladas para cada nivel.
type LoyaltyTier struct {
	Name               string // bronze, silver, gold
	MinPurchaseAmount  decimal.Decimal
	PointsMultiplier   decimal.Decimal
	DiscountPercentage decimal.Decimal
}
