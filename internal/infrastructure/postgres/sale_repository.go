package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, branch_id, cashier_id, customer_id, shift_id, subtotal, tax_amount, discount_amount, points_discount, total_amount, points_earned, status, notes, rcpt_signature, fiscal_qr, fiscal_qr_image, fiscal_submitted, fiscal_submitted_at, created_at, updated_at, created_by`

// SaleRepo ventas y líneas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.SaleNumber, nullable(s.BranchID), s.CashierID, nullable(s.CustomerID),
		nullable(s.ShiftID), s.Subtotal, s.TaxAmount, s.DiscountAmount, s.PointsDiscount,
		s.TotalAmount, s.PointsEarned, s.Status, s.Notes, s.RcptSignature, s.FiscalQR,
		s.FiscalQRImage, s.FiscalSubmitted, s.FiscalSubmittedAt, s.CreatedAt, s.UpdatedAt,
		nullable(s.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, subtotal, tax_rate, tax_amount, is_ad_hoc, ad_hoc_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, nullable(item.ProductID), item.Quantity, item.UnitPrice,
		item.Discount, item.Subtotal, item.TaxRate, item.TaxAmount, item.IsAdHoc, item.AdHocName,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return scanSale(r.q.QueryRow(context.Background(), query, id), "get sale")
}

// GetForUpdate bloquea la cabecera de la venta dentro de la transacción activa.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return scanSale(r.q.QueryRow(context.Background(), query, id), "lock sale")
}

// GetItems líneas de la venta, en orden de inserción.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount, subtotal, tax_rate, tax_amount, is_ad_hoc, ad_hoc_name
		FROM sale_items WHERE sale_id = $1 ORDER BY ctid`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		var productID *string
		if err := rows.Scan(
			&item.ID, &item.SaleID, &productID, &item.Quantity, &item.UnitPrice,
			&item.Discount, &item.Subtotal, &item.TaxRate, &item.TaxAmount,
			&item.IsAdHoc, &item.AdHocName,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		item.ProductID = deref(productID)
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera (estado, puntos, artefacto fiscal).
func (r *SaleRepo) Update(s *entity.Sale) error {
	query := `
		UPDATE sales SET status = $2, discount_amount = $3, points_discount = $4,
			total_amount = $5, points_earned = $6, notes = $7, rcpt_signature = $8,
			fiscal_qr = $9, fiscal_qr_image = $10, fiscal_submitted = $11,
			fiscal_submitted_at = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.DiscountAmount, s.PointsDiscount, s.TotalAmount, s.PointsEarned,
		s.Notes, s.RcptSignature, s.FiscalQR, s.FiscalQRImage, s.FiscalSubmitted,
		s.FiscalSubmittedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// ListCompletedByShift ventas completadas de un turno (para el cuadre de caja).
func (r *SaleRepo) ListCompletedByShift(shiftID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE shift_id = $1 AND status = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, shiftID, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list sales by shift: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row, op string) (*entity.Sale, error) {
	s, err := scanSaleRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func scanSaleRow(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var branchID, customerID, shiftID, createdBy *string
	if err := row.Scan(
		&s.ID, &s.SaleNumber, &branchID, &s.CashierID, &customerID, &shiftID,
		&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.PointsDiscount, &s.TotalAmount,
		&s.PointsEarned, &s.Status, &s.Notes, &s.RcptSignature, &s.FiscalQR,
		&s.FiscalQRImage, &s.FiscalSubmitted, &s.FiscalSubmittedAt,
		&s.CreatedAt, &s.UpdatedAt, &createdBy,
	); err != nil {
		return nil, err
	}
	s.BranchID = deref(branchID)
	s.CustomerID = deref(customerID)
	s.ShiftID = deref(shiftID)
	s.CreatedBy = deref(createdBy)
	return &s, nil
}
