package loyalty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/loyalty"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/infrastructure/memory"
)

func newUseCase() (*memory.Store, *loyalty.LoyaltyUseCase) {
	store := memory.NewStore()
	uc := loyalty.NewLoyaltyUseCase(memory.NewLoyaltyTxRunner(store), store.Customers(), store.Loyalty())
	return store, uc
}

func gerente() authctx.Actor {
	return authctx.Actor{UserID: "gerente-1", BranchID: "sucursal-1", Role: entity.RoleManager}
}

func cajero() authctx.Actor {
	return authctx.Actor{UserID: "cajero-1", BranchID: "sucursal-1", Role: entity.RoleCashier}
}

func TestCreateCustomer(t *testing.T) {
	_, uc := newUseCase()

	resp, err := uc.CreateCustomer(context.Background(), cajero(), dto.CreateCustomerRequest{
		Name:  "Amina Otieno",
		Phone: "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TierBronze, resp.Tier, "todo cliente arranca en bronze")
	assert.Equal(t, 0, resp.TotalPoints)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateCustomer_TelefonoDuplicado(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	_, err = uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "B", Phone: "0712345678"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFindByPhone(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	creado, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	got, err := uc.FindByPhone(ctx, cajero(), "0712345678")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, got.ID)

	_, err = uc.FindByPhone(ctx, cajero(), "0700000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustPoints(t *testing.T) {
	store, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	resp, err := uc.AdjustPoints(ctx, gerente(), cliente.ID, dto.AdjustPointsRequest{
		Points:      50,
		Description: "Compensación por reclamo",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.PreviousPoints)
	assert.Equal(t, 50, resp.NewPoints)

	// El ajuste queda en el libro con sus snapshots.
	tx, err := store.Loyalty().LastByCustomer(cliente.ID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, entity.LoyaltyAdjust, tx.Type)
	assert.Equal(t, 50, tx.Points)
	assert.Equal(t, 0, tx.PreviousPoints)
	assert.Equal(t, 50, tx.NewPoints)
	assert.Equal(t, "Compensación por reclamo", tx.Description)
}

func TestAdjustPoints_SoloGerencia(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	_, err = uc.AdjustPoints(ctx, cajero(), cliente.ID, dto.AdjustPointsRequest{Points: 50})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjustPoints_NoDejaSaldoNegativo(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	_, err = uc.AdjustPoints(ctx, gerente(), cliente.ID, dto.AdjustPointsRequest{Points: 10})
	require.NoError(t, err)

	_, err = uc.AdjustPoints(ctx, gerente(), cliente.ID, dto.AdjustPointsRequest{Points: -20})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	got, err := uc.GetCustomer(ctx, gerente(), cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalPoints, "el rechazo no toca el saldo")
}

func TestRedeemPoints(t *testing.T) {
	store, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)
	_, err = uc.AdjustPoints(ctx, gerente(), cliente.ID, dto.AdjustPointsRequest{Points: 100})
	require.NoError(t, err)

	resp, err := uc.RedeemPoints(ctx, cajero(), cliente.ID, dto.RedeemPointsRequest{
		Points: 30,
		SaleID: "venta-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.PreviousPoints)
	assert.Equal(t, 70, resp.NewPoints)

	tx, err := store.Loyalty().LastByCustomer(cliente.ID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, entity.LoyaltyRedeem, tx.Type)
	assert.Equal(t, -30, tx.Points, "la redención se registra en negativo")
	assert.Equal(t, "venta-1", tx.SaleID)
}

func TestRedeemPoints_SaldoInsuficiente(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	_, err = uc.RedeemPoints(ctx, cajero(), cliente.ID, dto.RedeemPointsRequest{Points: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
}

func TestRedeemPoints_Validaciones(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	_, err := uc.RedeemPoints(ctx, cajero(), "cliente-x", dto.RedeemPointsRequest{Points: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "redimir cero puntos no tiene sentido")

	_, err = uc.RedeemPoints(ctx, cajero(), "cliente-x", dto.RedeemPointsRequest{Points: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RedeemPoints(ctx, cajero(), "no-existe", dto.RedeemPointsRequest{Points: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTransactions_MasRecientePrimero(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	cliente, err := uc.CreateCustomer(ctx, cajero(), dto.CreateCustomerRequest{Name: "A", Phone: "0712345678"})
	require.NoError(t, err)

	for _, pts := range []int{10, 20, 30} {
		_, err = uc.AdjustPoints(ctx, gerente(), cliente.ID, dto.AdjustPointsRequest{Points: pts})
		require.NoError(t, err)
	}

	txs, err := uc.ListTransactions(ctx, cajero(), cliente.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, 30, txs[0].Points)
	assert.Equal(t, 10, txs[2].Points)
}
