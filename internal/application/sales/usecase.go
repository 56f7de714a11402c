package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/dukapos-api/internal/application/authctx"
	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/fiscal"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// IVA 16%, incluido en el precio de venta. El impuesto de cada línea se
// extrae del subtotal: tax = subtotal * 16 / 116.
var (
	vatRate    = decimal.NewFromInt(16)
	vatDivisor = decimal.NewFromInt(116)
	cien       = decimal.NewFromInt(100)
)

// SaleUseCase motor de ventas: borrador, finalizado atómico, recibo fiscal
// y registro de pagos.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	shiftRepo    repository.ShiftRepository
	paymentRepo  repository.PaymentRepository
	signer       *fiscal.SignerService
	receipts     ReceiptCache
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	shiftRepo repository.ShiftRepository,
	paymentRepo repository.PaymentRepository,
	signer *fiscal.SignerService,
	receipts ReceiptCache,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		shiftRepo:    shiftRepo,
		paymentRepo:  paymentRepo,
		signer:       signer,
		receipts:     receipts,
	}
}

// CreateDraft crea una venta en estado pending con sus líneas y totales
// calculados. No toca inventario ni puntos: eso ocurre en Finalize.
func (uc *SaleUseCase) CreateDraft(ctx context.Context, actor authctx.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PointsDiscount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional; si viene, debe existir.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar líneas y resolver productos (fuera de la tx, solo lectura).
	now := time.Now()
	saleID := uuid.New().String()
	items := make([]*entity.SaleItem, 0, len(in.Items))
	var subtotal, taxTotal decimal.Decimal

	for i := range in.Items {
		line := &in.Items[i]
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if line.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}

		item := &entity.SaleItem{
			ID:       uuid.New().String(),
			SaleID:   saleID,
			Quantity: line.Quantity,
			Discount: line.Discount,
			TaxRate:  vatRate,
		}

		switch {
		case line.IsAdHoc:
			// Línea ad-hoc: sin producto de catálogo, precio obligatorio.
			if line.AdHocName == "" || line.UnitPrice == nil {
				return nil, domain.ErrInvalidInput
			}
			item.IsAdHoc = true
			item.AdHocName = line.AdHocName
			item.UnitPrice = *line.UnitPrice
		case line.ProductID != "":
			product, err := uc.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			item.ProductID = product.ID
			item.UnitPrice = product.Price
			if line.UnitPrice != nil {
				item.UnitPrice = *line.UnitPrice
			}
		case line.Barcode != "":
			product, err := uc.productRepo.GetByBarcode(actor.BranchID, line.Barcode)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			item.ProductID = product.ID
			item.UnitPrice = product.Price
			if line.UnitPrice != nil {
				item.UnitPrice = *line.UnitPrice
			}
		default:
			return nil, domain.ErrInvalidInput
		}

		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}

		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		if item.Subtotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		// Precio con IVA incluido: el impuesto se extrae, no se suma.
		item.TaxAmount = item.Subtotal.Mul(vatRate).Div(vatDivisor)

		subtotal = subtotal.Add(item.Subtotal)
		taxTotal = taxTotal.Add(item.TaxAmount)
		items = append(items, item)
	}

	// Turno abierto del cajero, si lo hay. La venta puede existir sin turno.
	var shiftID string
	shift, err := uc.shiftRepo.GetOpenByCashier(actor.UserID)
	if err != nil {
		return nil, err
	}
	if shift != nil {
		shiftID = shift.ID
	}

	sale := &entity.Sale{
		ID:             saleID,
		SaleNumber:     entity.NewSaleNumber(),
		BranchID:       actor.BranchID,
		CashierID:      actor.UserID,
		CustomerID:     in.CustomerID,
		ShiftID:        shiftID,
		Subtotal:       subtotal,
		TaxAmount:      taxTotal,
		PointsDiscount: in.PointsDiscount,
		Status:         entity.SaleStatusPending,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actor.UserID,
	}

	err = uc.txRunner.RunDraft(ctx, func(
		saleRepo repository.SaleRepository,
		discountRepo repository.DiscountRepository,
	) error {
		// Código de descuento: si no existe o no está vigente se ignora en
		// silencio, la venta se crea sin descuento.
		var discountAmount decimal.Decimal
		if in.DiscountCode != "" {
			disc, err := discountRepo.GetByCode(in.DiscountCode)
			if err != nil {
				return err
			}
			if disc != nil && disc.IsValid(now) {
				discountAmount = applyDiscount(disc, subtotal)
				if err := discountRepo.IncrementUsage(disc.ID); err != nil {
					return err
				}
			}
		}

		sale.DiscountAmount = discountAmount
		sale.TotalAmount = subtotal.Sub(discountAmount).Sub(sale.PointsDiscount)
		if sale.TotalAmount.IsNegative() {
			return domain.ErrInvalidInput
		}

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items), nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, actor authctx.Actor, saleID string) (*dto.SaleResponse, error) {
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
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// applyDiscount calcula el monto a descontar según el tipo del código.
// El descuento nunca supera el subtotal.
func applyDiscount(d *entity.Discount, subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Type {
	case entity.DiscountTypePercentage:
		amount = subtotal.Mul(d.Value).Div(cien)
	case entity.DiscountTypeFixed:
		amount = d.Value
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		BranchID:       s.BranchID,
		CashierID:      s.CashierID,
		CustomerID:     s.CustomerID,
		ShiftID:        s.ShiftID,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		PointsDiscount: s.PointsDiscount,
		TotalAmount:    s.TotalAmount,
		PointsEarned:   s.PointsEarned,
		Status:         s.Status,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		Items:          make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Subtotal:  item.Subtotal,
			TaxRate:   item.TaxRate,
			TaxAmount: item.TaxAmount,
			IsAdHoc:   item.IsAdHoc,
			AdHocName: item.AdHocName,
		})
	}
	return resp
}

// saleDescription describe la venta en el libro de puntos.
func saleDescription(saleNumber string) string {
	return fmt.Sprintf("Puntos por venta %s", saleNumber)
}
