package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// InventoryUseCase catálogo de productos y libro de inventario.
type InventoryUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// AdjustStock aplica un ajuste manual de inventario bajo bloqueo de fila y
// registra el movimiento de auditoría en la misma transacción.
//
// Para tipos de salida de mercancía (damage, transfer) el resultado nunca
// puede quedar negativo. Un 'adjustment' de corrección puede dejar el stock
// donde el conteo físico lo ponga, incluso negativo: registra la discrepancia
// en vez de ocultarla.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, actor authctx.Actor, in dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" || in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.MovementType) || in.MovementType == entity.MovementTypeSale {
		// 'sale' solo lo escribe el motor de ventas.
		return nil, domain.ErrInvalidInput
	}
	if entity.IsDepletionMovement(in.MovementType) && in.Quantity > 0 {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQty := product.StockQuantity + in.Quantity
		if newQty < 0 && entity.IsDepletionMovement(in.MovementType) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
			return err
		}

		movement = &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			BranchID:         product.BranchID,
			Type:             in.MovementType,
			Quantity:         in.Quantity,
			PreviousQuantity: product.StockQuantity,
			NewQuantity:      newQty,
			Reason:           in.Reason,
			CreatedAt:        time.Now(),
			CreatedBy:        actor.UserID,
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	return toMovementResponse(movement), nil
}

// ListMovements historial de auditoría de un producto, del más reciente
// al más antiguo.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, actor authctx.Actor, productID string, page dto.PageRequest) ([]*dto.StockMovementResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// CreateProduct da de alta un producto en el catálogo de la sucursal del actor.
func (uc *InventoryUseCase) CreateProduct(ctx context.Context, actor authctx.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.Price.IsNegative() || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		BranchID:      actor.BranchID,
		Name:          in.Name,
		Barcode:       in.Barcode,
		Description:   in.Description,
		Price:         in.Price,
		CostPrice:     in.CostPrice,
		StockQuantity: in.StockQuantity,
		ReorderLevel:  in.ReorderLevel,
		TaxRate:       in.TaxRate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	// El stock inicial también queda en la bitácora.
	if product.StockQuantity > 0 {
		if err := uc.movementRepo.Create(&entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			BranchID:         product.BranchID,
			Type:             entity.MovementTypePurchase,
			Quantity:         product.StockQuantity,
			PreviousQuantity: 0,
			NewQuantity:      product.StockQuantity,
			Reason:           "Stock inicial",
			CreatedAt:        now,
			CreatedBy:        actor.UserID,
		}); err != nil {
			return nil, err
		}
	}

	return toProductResponse(product), nil
}

// GetProduct devuelve un producto por ID.
func (uc *InventoryUseCase) GetProduct(ctx context.Context, actor authctx.Actor, id string) (*dto.ProductResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts lista el catálogo de la sucursal del actor.
func (uc *InventoryUseCase) ListProducts(ctx context.Context, actor authctx.Actor, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	products, err := uc.productRepo.ListByBranch(actor.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock productos en o por debajo de su punto de reorden.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context, actor authctx.Actor) ([]*dto.ProductResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	products, err := uc.productRepo.ListLowStock(actor.BranchID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		ReferenceID:      m.ReferenceID,
		CreatedAt:        m.CreatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		BranchID:      p.BranchID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		ReorderLevel:  p.ReorderLevel,
		TaxRate:       p.TaxRate,
		IsLowStock:    p.IsLowStock(),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
