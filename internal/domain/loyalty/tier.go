// Package loyalty: resolución pura del nivel de fidelización.
package loyalty

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
)

// ResolveTier devuelve el nivel cuyo umbral más alto es menor o igual a las
// compras acumuladas: se recorren los niveles en orden descendente por umbral
// y gana la primera coincidencia. Si ningún umbral alcanza (o no hay niveles
// configurados), se conserva el nivel actual.
func ResolveTier(tiers []*entity.LoyaltyTier, lifetimePurchases decimal.Decimal, current string) string {
	ordered := make([]*entity.LoyaltyTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinPurchaseAmount.GreaterThan(ordered[j].MinPurchaseAmount)
	})
	for _, t := range ordered {
		if lifetimePurchases.GreaterThanOrEqual(t.MinPurchaseAmount) {
			return t.Name
		}
	}
	return current
}
