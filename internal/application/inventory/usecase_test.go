package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/inventory"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/infrastructure/memory"
)

func newUseCase() (*memory.Store, *inventory.InventoryUseCase) {
	store := memory.NewStore()
	uc := inventory.NewInventoryUseCase(memory.NewTxRunner(store), store.Products(), store.Movements())
	return store, uc
}

func gerente() authctx.Actor {
	return authctx.Actor{UserID: "gerente-1", BranchID: "sucursal-1", Role: entity.RoleManager}
}

func cajero() authctx.Actor {
	return authctx.Actor{UserID: "cajero-1", BranchID: "sucursal-1", Role: entity.RoleCashier}
}

func seedProduct(t *testing.T, store *memory.Store, id string, stock, reorder int) {
	t.Helper()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:            id,
		BranchID:      "sucursal-1",
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(100),
		StockQuantity: stock,
		ReorderLevel:  reorder,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}))
}

func TestAdjustStock_EntradaDeMercancia(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 10, 2)

	mov, err := uc.AdjustStock(context.Background(), gerente(), dto.AdjustStockRequest{
		ProductID:    "prod-1",
		Quantity:     5,
		MovementType: entity.MovementTypePurchase,
		Reason:       "Reposición semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, mov.PreviousQuantity)
	assert.Equal(t, 15, mov.NewQuantity)
	assert.Equal(t, 5, mov.Quantity)

	p, err := store.Products().GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 15, p.StockQuantity)
}

func TestAdjustStock_SoloGerencia(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 10, 2)

	_, err := uc.AdjustStock(context.Background(), cajero(), dto.AdjustStockRequest{
		ProductID:    "prod-1",
		Quantity:     5,
		MovementType: entity.MovementTypePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjustStock_MermaNoDejaStockNegativo(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 3, 2)

	_, err := uc.AdjustStock(context.Background(), gerente(), dto.AdjustStockRequest{
		ProductID:    "prod-1",
		Quantity:     -5,
		MovementType: entity.MovementTypeDamage,
		Reason:       "Rotura en bodega",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := store.Products().GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.StockQuantity, "el rechazo no toca el stock")
}

func TestAdjustStock_CorreccionPuedeQuedarNegativa(t *testing.T) {
	// Un conteo físico puede revelar menos unidades de las que el sistema
	// cree tener: la corrección registra la discrepancia tal cual.
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 3, 2)

	mov, err := uc.AdjustStock(context.Background(), gerente(), dto.AdjustStockRequest{
		ProductID:    "prod-1",
		Quantity:     -5,
		MovementType: entity.MovementTypeAdjustment,
		Reason:       "Conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, -2, mov.NewQuantity)
}

func TestAdjustStock_Validaciones(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 10, 2)
	ctx := context.Background()

	t.Run("cantidad cero", func(t *testing.T) {
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "prod-1",
			MovementType: entity.MovementTypePurchase,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("tipo desconocido", func(t *testing.T) {
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "prod-1",
			Quantity:     1,
			MovementType: "regalo",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("tipo sale reservado al motor de ventas", func(t *testing.T) {
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "prod-1",
			Quantity:     -1,
			MovementType: entity.MovementTypeSale,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("merma con cantidad positiva", func(t *testing.T) {
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "prod-1",
			Quantity:     2,
			MovementType: entity.MovementTypeDamage,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "no-existe",
			Quantity:     1,
			MovementType: entity.MovementTypePurchase,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListMovements_CadenaDeAuditoria(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "prod-1", 10, 2)
	ctx := context.Background()

	ajustes := []int{5, -3, 2}
	for _, q := range ajustes {
		tipo := entity.MovementTypePurchase
		if q < 0 {
			tipo = entity.MovementTypeAdjustment
		}
		_, err := uc.AdjustStock(ctx, gerente(), dto.AdjustStockRequest{
			ProductID:    "prod-1",
			Quantity:     q,
			MovementType: tipo,
		})
		require.NoError(t, err)
	}

	movs, err := uc.ListMovements(ctx, gerente(), "prod-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 3)

	// Más reciente primero; cada eslabón cumple new = previous + quantity y
	// encadena con el anterior.
	assert.Equal(t, 14, movs[0].NewQuantity)
	for i, m := range movs {
		assert.Equal(t, m.PreviousQuantity+m.Quantity, m.NewQuantity)
		if i < len(movs)-1 {
			assert.Equal(t, movs[i+1].NewQuantity, m.PreviousQuantity, "la cadena de auditoría no tiene huecos")
		}
	}
}

func TestCreateProduct_RegistraStockInicial(t *testing.T) {
	store, uc := newUseCase()

	resp, err := uc.CreateProduct(context.Background(), gerente(), dto.CreateProductRequest{
		Name:          "Azúcar 1kg",
		Barcode:       "750100001",
		Price:         decimal.NewFromInt(180),
		StockQuantity: 24,
		ReorderLevel:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, "sucursal-1", resp.BranchID)
	assert.False(t, resp.IsLowStock)

	mov, err := store.Movements().LastByProduct(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, mov, "el stock inicial queda en la bitácora")
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.Equal(t, 24, mov.Quantity)
	assert.Equal(t, 0, mov.PreviousQuantity)
}

func TestCreateProduct_SinStockNoGeneraMovimiento(t *testing.T) {
	store, uc := newUseCase()

	resp, err := uc.CreateProduct(context.Background(), gerente(), dto.CreateProductRequest{
		Name:  "Por encargo",
		Price: decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	mov, err := store.Movements().LastByProduct(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, mov)
}

func TestCreateProduct_BarcodeDuplicadoEnSucursal(t *testing.T) {
	_, uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, gerente(), dto.CreateProductRequest{
		Name: "A", Barcode: "111", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, gerente(), dto.CreateProductRequest{
		Name: "B", Barcode: "111", Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestListLowStock_IncluyeElLimite(t *testing.T) {
	store, uc := newUseCase()
	seedProduct(t, store, "justo", 5, 5)
	seedProduct(t, store, "sobrado", 6, 5)
	seedProduct(t, store, "agotado", 0, 5)

	lista, err := uc.ListLowStock(context.Background(), gerente())
	require.NoError(t, err)

	ids := make([]string, 0, len(lista))
	for _, p := range lista {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"justo", "agotado"}, ids, "stock igual al punto de reorden también alerta")
}
