package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/loyalty"
)

func defaultTiers() []*entity.LoyaltyTier {
	return []*entity.LoyaltyTier{
		{Name: entity.TierBronze, MinPurchaseAmount: decimal.Zero},
		{Name: entity.TierSilver, MinPurchaseAmount: decimal.NewFromInt(50_000)},
		{Name: entity.TierGold, MinPurchaseAmount: decimal.NewFromInt(200_000)},
	}
}

func TestResolveTier_UmbralMasAltoGana(t *testing.T) {
	cases := []struct {
		name     string
		lifetime int64
		want     string
	}{
		{"cero compras queda en bronze", 0, entity.TierBronze},
		{"por debajo de silver", 49_999, entity.TierBronze},
		{"exactamente en el umbral silver", 50_000, entity.TierSilver},
		{"entre silver y gold", 120_000, entity.TierSilver},
		{"exactamente en el umbral gold", 200_000, entity.TierGold},
		{"muy por encima de gold", 1_000_000, entity.TierGold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := loyalty.ResolveTier(defaultTiers(), decimal.NewFromInt(tc.lifetime), entity.TierBronze)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveTier_OrdenDeEntradaIrrelevante(t *testing.T) {
	// Los niveles llegan en cualquier orden desde la DB; la resolución ordena
	// descendente por umbral antes de buscar.
	desordenados := []*entity.LoyaltyTier{
		{Name: entity.TierGold, MinPurchaseAmount: decimal.NewFromInt(200_000)},
		{Name: entity.TierBronze, MinPurchaseAmount: decimal.Zero},
		{Name: entity.TierSilver, MinPurchaseAmount: decimal.NewFromInt(50_000)},
	}
	got := loyalty.ResolveTier(desordenados, decimal.NewFromInt(75_000), entity.TierBronze)
	assert.Equal(t, entity.TierSilver, got)
}

func TestResolveTier_SinNivelesConservaElActual(t *testing.T) {
	got := loyalty.ResolveTier(nil, decimal.NewFromInt(999_999), entity.TierSilver)
	assert.Equal(t, entity.TierSilver, got, "Sin configuración de niveles no se degrada al cliente")
}

func TestResolveTier_NoMutaElSliceDeEntrada(t *testing.T) {
	tiers := defaultTiers()
	loyalty.ResolveTier(tiers, decimal.NewFromInt(300_000), entity.TierBronze)
	assert.Equal(t, entity.TierBronze, tiers[0].Name, "El orden del slice del caller no debe cambiar")
}
