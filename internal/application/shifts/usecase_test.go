package shifts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/shifts"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/infrastructure/memory"
)

func newUseCase() (*memory.Store, *shifts.ShiftUseCase) {
	store := memory.NewStore()
	uc := shifts.NewShiftUseCase(memory.NewTxRunner(store), store.Shifts())
	return store, uc
}

func cajero() authctx.Actor {
	return authctx.Actor{UserID: "cajero-1", BranchID: "sucursal-1", Role: entity.RoleCashier}
}

// seedCompletedSale registra una venta completada del turno junto a sus pagos.
func seedCompletedSale(t *testing.T, store *memory.Store, saleID, shiftID string, total int64, pagos ...*entity.Payment) {
	t.Helper()
	require.NoError(t, store.Sales().Create(&entity.Sale{
		ID:          saleID,
		SaleNumber:  "SALE-" + saleID,
		CashierID:   "cajero-1",
		ShiftID:     shiftID,
		TotalAmount: decimal.NewFromInt(total),
		Status:      entity.SaleStatusCompleted,
		CreatedAt:   time.Now(),
	}))
	for i, p := range pagos {
		p.ID = saleID + "-pago-" + string(rune('a'+i))
		p.SaleID = saleID
		if p.Status == "" {
			p.Status = entity.PaymentStatusCompleted
		}
		require.NoError(t, store.Payments().Create(p))
	}
}

func TestOpen(t *testing.T) {
	_, uc := newUseCase()

	resp, err := uc.Open(context.Background(), cajero(), dto.OpenShiftRequest{
		OpeningCash: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusOpen, resp.Status)
	assert.Equal(t, "cajero-1", resp.CashierID)
	assert.True(t, resp.OpeningCash.Equal(decimal.NewFromInt(1000)))
}

func TestOpen_UnSoloTurnoAbiertoPorCajero(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	_, err = uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Otro cajero sí puede abrir el suyo.
	otro := authctx.Actor{UserID: "cajero-2", BranchID: "sucursal-1", Role: entity.RoleCashier}
	_, err = uc.Open(ctx, otro, dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(500)})
	assert.NoError(t, err)
}

func TestOpen_EfectivoNegativoFalla(t *testing.T) {
	_, uc := newUseCase()
	_, err := uc.Open(context.Background(), cajero(), dto.OpenShiftRequest{
		OpeningCash: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCurrent(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Current(ctx, cajero())
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin turno abierto no hay turno actual")

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	actual, err := uc.Current(ctx, cajero())
	require.NoError(t, err)
	assert.Equal(t, abierto.ID, actual.ID)
}

func TestClose_CuadreDeCaja(t *testing.T) {
	store, uc := newUseCase()
	ctx := context.Background()

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	// Venta de 180 pagada con 200 en efectivo: vuelto de 20.
	seedCompletedSale(t, store, "venta-1", abierto.ID, 180, &entity.Payment{
		Method: entity.PaymentMethodCash,
		Amount: decimal.NewFromInt(200),
	})
	// Venta de 300 pagada exacta con M-Pesa: no entra al efectivo.
	seedCompletedSale(t, store, "venta-2", abierto.ID, 300, &entity.Payment{
		Method: entity.PaymentMethodMpesa,
		Amount: decimal.NewFromInt(300),
	})

	// expected = 1000 + 200 - 20 = 1180; el conteo trae 1175.
	resp, err := uc.Close(ctx, cajero(), abierto.ID, dto.CloseShiftRequest{
		ClosingCash: decimal.NewFromInt(1175),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusClosed, resp.Status)
	require.NotNil(t, resp.ExpectedCash)
	assert.True(t, resp.ExpectedCash.Equal(decimal.NewFromInt(1180)))
	require.NotNil(t, resp.CashDifference)
	assert.True(t, resp.CashDifference.Equal(decimal.NewFromInt(-5)), "faltante de 5 en caja")
	assert.NotNil(t, resp.ClosingTime)
	assert.Equal(t, "cajero-1", resp.ClosedBy)
}

func TestClose_IgnoraPagosNoCompletados(t *testing.T) {
	store, uc := newUseCase()
	ctx := context.Background()

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	seedCompletedSale(t, store, "venta-1", abierto.ID, 100,
		&entity.Payment{Method: entity.PaymentMethodCash, Amount: decimal.NewFromInt(100)},
		&entity.Payment{Method: entity.PaymentMethodCash, Amount: decimal.NewFromInt(100), Status: entity.PaymentStatusFailed},
	)

	resp, err := uc.Close(ctx, cajero(), abierto.ID, dto.CloseShiftRequest{
		ClosingCash: decimal.NewFromInt(1100),
	})
	require.NoError(t, err)
	assert.True(t, resp.ExpectedCash.Equal(decimal.NewFromInt(1100)), "un pago fallido no cuenta en el cuadre")
	assert.True(t, resp.CashDifference.IsZero())
}

func TestClose_TurnoYaCerrado(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	_, err = uc.Close(ctx, cajero(), abierto.ID, dto.CloseShiftRequest{ClosingCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	_, err = uc.Close(ctx, cajero(), abierto.ID, dto.CloseShiftRequest{ClosingCash: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestClose_SoloElCajeroOGerencia(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	otroCajero := authctx.Actor{UserID: "cajero-2", BranchID: "sucursal-1", Role: entity.RoleCashier}
	_, err = uc.Close(ctx, otroCajero, abierto.ID, dto.CloseShiftRequest{ClosingCash: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	gerente := authctx.Actor{UserID: "gerente-1", BranchID: "sucursal-1", Role: entity.RoleManager}
	resp, err := uc.Close(ctx, gerente, abierto.ID, dto.CloseShiftRequest{ClosingCash: decimal.NewFromInt(1000)})
	require.NoError(t, err, "gerencia puede cerrar turnos ajenos")
	assert.Equal(t, "gerente-1", resp.ClosedBy)
}

func TestClose_NoExiste(t *testing.T) {
	_, uc := newUseCase()
	_, err := uc.Close(context.Background(), cajero(), "no-existe", dto.CloseShiftRequest{
		ClosingCash: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	abierto, err := uc.Open(ctx, cajero(), dto.OpenShiftRequest{OpeningCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	got, err := uc.Get(ctx, cajero(), abierto.ID)
	require.NoError(t, err)
	assert.Equal(t, abierto.ID, got.ID)

	_, err = uc.Get(ctx, cajero(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
