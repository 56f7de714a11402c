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

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

const discountColumns = `id, code, name, discount_type, value, min_purchase_amount, start_date, end_date, requires_approval, is_active, max_uses, times_used, created_at, updated_at`

// DiscountRepo códigos de descuento sobre PostgreSQL (usable con pool o tx).
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

// Create persiste un código de descuento. Código duplicado retorna ErrDuplicate.
func (r *DiscountRepo) Create(d *entity.Discount) error {
	query := `
		INSERT INTO discounts (` + discountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Code, d.Name, d.Type, d.Value, d.MinPurchaseAmount,
		d.StartDate, d.EndDate, d.RequiresApproval, d.IsActive,
		d.MaxUses, d.TimesUsed, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

// GetByCode obtiene un código de descuento, o (nil, nil) si no existe.
func (r *DiscountRepo) GetByCode(code string) (*entity.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1`
	var d entity.Discount
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&d.ID, &d.Code, &d.Name, &d.Type, &d.Value, &d.MinPurchaseAmount,
		&d.StartDate, &d.EndDate, &d.RequiresApproval, &d.IsActive,
		&d.MaxUses, &d.TimesUsed, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return &d, nil
}

// IncrementUsage suma 1 a times_used de forma atómica en el almacén.
func (r *DiscountRepo) IncrementUsage(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE discounts SET times_used = times_used + 1, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("increment discount usage: %w", err)
	}
	return nil
}

// Update actualiza un código de descuento.
func (r *DiscountRepo) Update(d *entity.Discount) error {
	query := `
		UPDATE discounts SET name = $2, discount_type = $3, value = $4, min_purchase_amount = $5,
			start_date = $6, end_date = $7, requires_approval = $8, is_active = $9,
			max_uses = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.Type, d.Value, d.MinPurchaseAmount, d.StartDate, d.EndDate,
		d.RequiresApproval, d.IsActive, d.MaxUses, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update discount: %w", err)
	}
	return nil
}
