package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/loyalty"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// Finalize completa una venta pendiente en una sola transacción:
//
//  1. bloquea la cabecera de la venta
//  2. por cada línea de catálogo: bloquea el producto, verifica stock,
//     descuenta y registra el movimiento de auditoría
//  3. acredita puntos al cliente y recalcula su nivel
//  4. marca la venta como completada
//  5. acumula los totales del turno
//
// Cualquier error revierte todo: nunca queda inventario descontado con la
// venta aún pendiente. Finalizar una venta ya completada es idempotente.
func (uc *SaleUseCase) Finalize(ctx context.Context, actor authctx.Actor, saleID string) (*dto.SaleResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		result      *entity.Sale
		resultItems []*entity.SaleItem
	)

	err := uc.txRunner.RunFinalize(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
		loyaltyRepo repository.LoyaltyRepository,
		shiftRepo repository.ShiftRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		switch sale.Status {
		case entity.SaleStatusCompleted:
			// Ya finalizada: no repetir efectos, devolver el estado actual.
			result = sale
			resultItems, err = saleRepo.GetItems(saleID)
			return err
		case entity.SaleStatusCancelled, entity.SaleStatusRefunded:
			return domain.ErrInvalidState
		}

		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()

		// Inventario: descuento bajo bloqueo de fila + registro de auditoría.
		// Las líneas ad-hoc no tocan inventario.
		for _, item := range items {
			if item.ProductID == "" {
				continue
			}
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.StockQuantity < item.Quantity {
				return domain.ErrInsufficientStock
			}
			newQty := product.StockQuantity - item.Quantity
			if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
				return err
			}
			if err := movementRepo.Create(&entity.StockMovement{
				ID:               uuid.New().String(),
				ProductID:        product.ID,
				BranchID:         sale.BranchID,
				Type:             entity.MovementTypeSale,
				Quantity:         -item.Quantity,
				PreviousQuantity: product.StockQuantity,
				NewQuantity:      newQty,
				Reason:           "Venta",
				ReferenceID:      sale.SaleNumber,
				CreatedAt:        now,
				CreatedBy:        actor.UserID,
			}); err != nil {
				return err
			}
		}

		// Puntos: 1 por cada 100 del total, truncado. Solo con cliente asociado.
		if sale.CustomerID != "" {
			customer, err := customerRepo.GetForUpdate(sale.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrNotFound
			}

			// Sin puntos no hay efecto sobre el cliente: ni compras
			// acumuladas ni recálculo de nivel.
			points := int(sale.TotalAmount.Div(cien).IntPart())
			if points > 0 {
				previous := customer.TotalPoints
				customer.TotalPoints += points
				if err := loyaltyRepo.CreateTransaction(&entity.LoyaltyTransaction{
					ID:             uuid.New().String(),
					CustomerID:     customer.ID,
					Points:         points,
					Type:           entity.LoyaltyEarn,
					SaleID:         sale.ID,
					Description:    saleDescription(sale.SaleNumber),
					PreviousPoints: previous,
					NewPoints:      customer.TotalPoints,
					CreatedAt:      now,
					CreatedBy:      actor.UserID,
				}); err != nil {
					return err
				}

				customer.LifetimePurchases = customer.LifetimePurchases.Add(sale.TotalAmount)
				tiers, err := loyaltyRepo.ListTiers()
				if err != nil {
					return err
				}
				customer.Tier = loyalty.ResolveTier(tiers, customer.LifetimePurchases, customer.Tier)
				customer.UpdatedAt = now
				if err := customerRepo.Update(customer); err != nil {
					return err
				}
			}
			sale.PointsEarned = points
		}

		sale.Status = entity.SaleStatusCompleted
		sale.UpdatedAt = now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		// Totales del turno, si la venta quedó asociada a uno abierto.
		if sale.ShiftID != "" {
			shift, err := shiftRepo.GetForUpdate(sale.ShiftID)
			if err != nil {
				return err
			}
			if shift != nil && shift.Status == entity.ShiftStatusOpen {
				shift.TotalSales = shift.TotalSales.Add(sale.TotalAmount)
				shift.TotalTransactions++
				shift.UpdatedAt = now
				if err := shiftRepo.Update(shift); err != nil {
					return err
				}
			}
		}

		result = sale
		resultItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(result, resultItems), nil
}
