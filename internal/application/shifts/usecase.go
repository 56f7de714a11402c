package shifts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// ShiftUseCase turnos de caja: apertura, cierre con cuadre y consulta.
type ShiftUseCase struct {
	txRunner  TxRunner
	shiftRepo repository.ShiftRepository
}

// NewShiftUseCase construye el caso de uso.
func NewShiftUseCase(txRunner TxRunner, shiftRepo repository.ShiftRepository) *ShiftUseCase {
	return &ShiftUseCase{txRunner: txRunner, shiftRepo: shiftRepo}
}

// Open abre un turno para el actor. Un cajero solo puede tener un turno
// abierto a la vez: intentarlo de nuevo retorna ErrConflict.
func (uc *ShiftUseCase) Open(ctx context.Context, actor authctx.Actor, in dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.OpeningCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.shiftRepo.GetOpenByCashier(actor.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	shift := &entity.Shift{
		ID:          uuid.New().String(),
		CashierID:   actor.UserID,
		BranchID:    actor.BranchID,
		OpeningTime: now,
		OpeningCash: in.OpeningCash,
		Status:      entity.ShiftStatusOpen,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return toShiftResponse(shift), nil
}

// Current devuelve el turno abierto del actor, o ErrNotFound si no hay.
func (uc *ShiftUseCase) Current(ctx context.Context, actor authctx.Actor) (*dto.ShiftResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	shift, err := uc.shiftRepo.GetOpenByCashier(actor.UserID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	return toShiftResponse(shift), nil
}

// Get devuelve un turno por ID.
func (uc *ShiftUseCase) Get(ctx context.Context, actor authctx.Actor, shiftID string) (*dto.ShiftResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	shift, err := uc.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	return toShiftResponse(shift), nil
}

// Close cierra el turno con el conteo físico de efectivo y calcula el cuadre:
//
//	expected = apertura + pagos en efectivo de las ventas del turno - vueltos
//	difference = conteo - expected
//
// El vuelto de una venta es el exceso pagado sobre su total; se asume
// entregado en efectivo. Cerrar un turno ya cerrado retorna ErrInvalidState.
// Solo el propio cajero o un gerente pueden cerrar el turno.
func (uc *ShiftUseCase) Close(ctx context.Context, actor authctx.Actor, shiftID string, in dto.CloseShiftRequest) (*dto.ShiftResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if shiftID == "" || in.ClosingCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Shift
	err := uc.txRunner.RunShiftClose(ctx, func(
		shiftRepo repository.ShiftRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		shift, err := shiftRepo.GetForUpdate(shiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return domain.ErrNotFound
		}
		if shift.CashierID != actor.UserID && !actor.IsManager() {
			return domain.ErrForbidden
		}
		if shift.Status != entity.ShiftStatusOpen {
			return domain.ErrInvalidState
		}

		sales, err := saleRepo.ListCompletedByShift(shift.ID)
		if err != nil {
			return err
		}

		var cashReceived, changeGiven decimal.Decimal
		for _, sale := range sales {
			payments, err := paymentRepo.ListBySale(sale.ID)
			if err != nil {
				return err
			}
			var cashPaid, totalPaid decimal.Decimal
			for _, p := range payments {
				if p.Status != entity.PaymentStatusCompleted {
					continue
				}
				totalPaid = totalPaid.Add(p.Amount)
				if p.Method == entity.PaymentMethodCash {
					cashPaid = cashPaid.Add(p.Amount)
				}
			}
			cashReceived = cashReceived.Add(cashPaid)
			if over := totalPaid.Sub(sale.TotalAmount); over.IsPositive() {
				changeGiven = changeGiven.Add(over)
			}
		}

		now := time.Now()
		expected := shift.OpeningCash.Add(cashReceived).Sub(changeGiven)
		difference := in.ClosingCash.Sub(expected)

		shift.Status = entity.ShiftStatusClosed
		shift.ClosingTime = &now
		shift.ClosingCash = &in.ClosingCash
		shift.ExpectedCash = &expected
		shift.CashDifference = &difference
		shift.ClosedBy = actor.UserID
		if in.Notes != "" {
			shift.Notes = in.Notes
		}
		shift.UpdatedAt = now
		if err := shiftRepo.Update(shift); err != nil {
			return err
		}

		result = shift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toShiftResponse(result), nil
}

func toShiftResponse(s *entity.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:                s.ID,
		CashierID:         s.CashierID,
		BranchID:          s.BranchID,
		OpeningTime:       s.OpeningTime,
		ClosingTime:       s.ClosingTime,
		OpeningCash:       s.OpeningCash,
		ClosingCash:       s.ClosingCash,
		ExpectedCash:      s.ExpectedCash,
		CashDifference:    s.CashDifference,
		Status:            s.Status,
		TotalSales:        s.TotalSales,
		TotalTransactions: s.TotalTransactions,
		ClosedBy:          s.ClosedBy,
		Notes:             s.Notes,
	}
}
