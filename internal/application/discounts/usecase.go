package discounts

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

// DiscountUseCase códigos de descuento: alta y consulta de vigencia.
// La aplicación del código a una venta la hace el motor de ventas.
type DiscountUseCase struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(discountRepo repository.DiscountRepository) *DiscountUseCase {
	return &DiscountUseCase{discountRepo: discountRepo}
}

// Create da de alta un código de descuento (solo gerencia).
func (uc *DiscountUseCase) Create(ctx context.Context, actor authctx.Actor, in dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if in.Code == "" || in.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.DiscountTypePercentage && in.Type != entity.DiscountTypeFixed {
		return nil, domain.ErrInvalidInput
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	d := &entity.Discount{
		ID:                uuid.New().String(),
		Code:              in.Code,
		Name:              in.Name,
		Type:              in.Type,
		Value:             in.Value,
		MinPurchaseAmount: in.MinPurchaseAmount,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		IsActive:          true,
		MaxUses:           in.MaxUses,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.discountRepo.Create(d); err != nil {
		return nil, err
	}
	return toDiscountResponse(d, now), nil
}

// Validate consulta un código y reporta si puede aplicarse ahora mismo.
// Un código inexistente retorna ErrNotFound: este endpoint sí lo reporta,
// a diferencia del motor de ventas que lo ignora en silencio.
func (uc *DiscountUseCase) Validate(ctx context.Context, actor authctx.Actor, code string) (*dto.DiscountResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.discountRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDiscountResponse(d, time.Now()), nil
}

func toDiscountResponse(d *entity.Discount, now time.Time) *dto.DiscountResponse {
	return &dto.DiscountResponse{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		Type:      d.Type,
		Value:     d.Value,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		MaxUses:   d.MaxUses,
		TimesUsed: d.TimesUsed,
		IsValid:   d.IsValid(now),
	}
}
