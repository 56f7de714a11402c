package loyalty

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

// LoyaltyUseCase clientes del programa de fidelización y su libro de puntos.
type LoyaltyUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	loyaltyRepo  repository.LoyaltyRepository
}

// NewLoyaltyUseCase construye el caso de uso.
func NewLoyaltyUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyRepository,
) *LoyaltyUseCase {
	return &LoyaltyUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		loyaltyRepo:  loyaltyRepo,
	}
}

// CreateCustomer da de alta un cliente. El teléfono es único: un duplicado
// retorna ErrDuplicate.
func (uc *LoyaltyUseCase) CreateCustomer(ctx context.Context, actor authctx.Actor, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Tier:      entity.TierBronze,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer devuelve un cliente por ID.
func (uc *LoyaltyUseCase) GetCustomer(ctx context.Context, actor authctx.Actor, id string) (*dto.CustomerResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// FindByPhone busca un cliente por teléfono, el identificador natural en caja.
func (uc *LoyaltyUseCase) FindByPhone(ctx context.Context, actor authctx.Actor, phone string) (*dto.CustomerResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// AdjustPoints aplica un ajuste manual de puntos (positivo o negativo) con
// registro en el libro. El saldo nunca queda negativo.
func (uc *LoyaltyUseCase) AdjustPoints(ctx context.Context, actor authctx.Actor, customerID string, in dto.AdjustPointsRequest) (*dto.PointsResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if customerID == "" || in.Points == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyPoints(ctx, actor, customerID, in.Points, entity.LoyaltyAdjust, "", in.Description)
}

// RedeemPoints descuenta puntos del cliente, opcionalmente ligando la
// redención a una venta. Redimir más puntos de los disponibles retorna
// ErrInsufficientPoints.
func (uc *LoyaltyUseCase) RedeemPoints(ctx context.Context, actor authctx.Actor, customerID string, in dto.RedeemPointsRequest) (*dto.PointsResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if customerID == "" || in.Points <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyPoints(ctx, actor, customerID, -in.Points, entity.LoyaltyRedeem, in.SaleID, "Redención de puntos")
}

// ListTransactions historial de puntos del cliente, del más reciente al
// más antiguo.
func (uc *LoyaltyUseCase) ListTransactions(ctx context.Context, actor authctx.Actor, customerID string, page dto.PageRequest) ([]*entity.LoyaltyTransaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.loyaltyRepo.ListByCustomer(customerID, page.Limit, page.Offset)
}

// applyPoints muta el saldo bajo bloqueo de fila y registra la transacción
// con los snapshots previous/new, en una sola transacción.
func (uc *LoyaltyUseCase) applyPoints(ctx context.Context, actor authctx.Actor, customerID string, points int, txType, saleID, description string) (*dto.PointsResponse, error) {
	var result *dto.PointsResponse
	err := uc.txRunner.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		loyaltyRepo repository.LoyaltyRepository,
	) error {
		customer, err := customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		previous := customer.TotalPoints
		newPoints := previous + points
		if newPoints < 0 {
			return domain.ErrInsufficientPoints
		}

		now := time.Now()
		customer.TotalPoints = newPoints
		customer.UpdatedAt = now
		if err := customerRepo.Update(customer); err != nil {
			return err
		}
		if err := loyaltyRepo.CreateTransaction(&entity.LoyaltyTransaction{
			ID:             uuid.New().String(),
			CustomerID:     customer.ID,
			Points:         points,
			Type:           txType,
			SaleID:         saleID,
			Description:    description,
			PreviousPoints: previous,
			NewPoints:      newPoints,
			CreatedAt:      now,
			CreatedBy:      actor.UserID,
		}); err != nil {
			return err
		}

		result = &dto.PointsResponse{
			CustomerID:     customer.ID,
			PreviousPoints: previous,
			NewPoints:      newPoints,
			Tier:           customer.Tier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		Tier:              c.Tier,
		TotalPoints:       c.TotalPoints,
		LifetimePurchases: c.LifetimePurchases,
		CreatedAt:         c.CreatedAt,
	}
}
