package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
)

// RecordPayment registra un pago completado contra una venta. Un pago en
// efectivo puede superar el total: el exceso es el vuelto entregado y se
// descuenta en el cuadre de caja del turno.
func (uc *SaleUseCase) RecordPayment(ctx context.Context, actor authctx.Actor, saleID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if saleID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled || sale.Status == entity.SaleStatusRefunded {
		return nil, domain.ErrInvalidState
	}

	payment := &entity.Payment{
		ID:              uuid.New().String(),
		SaleID:          sale.ID,
		Method:          in.Method,
		Amount:          in.Amount,
		ReferenceNumber: in.ReferenceNumber,
		PhoneNumber:     in.PhoneNumber,
		Status:          entity.PaymentStatusCompleted,
		ProcessedBy:     actor.UserID,
		ProcessedAt:     time.Now(),
		Notes:           in.Notes,
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		ID:          payment.ID,
		SaleID:      payment.SaleID,
		Method:      payment.Method,
		Amount:      payment.Amount,
		Status:      payment.Status,
		ProcessedAt: payment.ProcessedAt,
	}, nil
}

// ListPayments lista los pagos registrados contra una venta.
func (uc *SaleUseCase) ListPayments(ctx context.Context, actor authctx.Actor, saleID string) ([]*dto.PaymentResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.paymentRepo.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, &dto.PaymentResponse{
			ID:          p.ID,
			SaleID:      p.SaleID,
			Method:      p.Method,
			Amount:      p.Amount,
			Status:      p.Status,
			ProcessedAt: p.ProcessedAt,
		})
	}
	return out, nil
}
