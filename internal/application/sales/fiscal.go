package sales

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/fiscal"
)

// Fiscal devuelve el recibo fiscal de una venta completada. La firma se
// genera en la primera consulta y se persiste junto a la venta; consultas
// posteriores devuelven siempre el mismo recibo (la firma es determinista).
func (uc *SaleUseCase) Fiscal(ctx context.Context, actor authctx.Actor, saleID string) (*dto.FiscalResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El caché solo acelera relecturas; un fallo aquí nunca bloquea.
	if uc.receipts != nil {
		if cached, ok := uc.receipts.GetFiscal(ctx, saleID); ok {
			return cached, nil
		}
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return nil, domain.ErrInvalidState
	}

	if sale.RcptSignature == "" {
		receipt, err := uc.signer.Sign(&fiscal.ReceiptParams{
			SaleNumber:  sale.SaleNumber,
			TotalAmount: sale.TotalAmount,
			CreatedAt:   sale.CreatedAt,
			CashierID:   sale.CashierID,
		})
		if err != nil {
			return nil, err
		}
		now := time.Now()
		sale.RcptSignature = receipt.Signature
		sale.FiscalQR = receipt.QRPayload
		sale.FiscalQRImage = receipt.QRImage
		sale.FiscalSubmitted = true
		sale.FiscalSubmittedAt = &now
		sale.UpdatedAt = now
		if err := uc.saleRepo.Update(sale); err != nil {
			return nil, err
		}
	}

	resp := &dto.FiscalResponse{
		SaleNumber:  sale.SaleNumber,
		Signature:   sale.RcptSignature,
		QRPayload:   sale.FiscalQR,
		QRImage:     sale.FiscalQRImage,
		Submitted:   sale.FiscalSubmitted,
		SubmittedAt: sale.FiscalSubmittedAt,
	}
	if uc.receipts != nil {
		uc.receipts.SetFiscal(ctx, saleID, resp)
	}
	return resp, nil
}
