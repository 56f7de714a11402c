package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

const loyaltyTxColumns = `id, customer_id, points, tx_type, sale_id, description, previous_points, new_points, created_at, created_by`

// LoyaltyRepo libro de puntos y catálogo de niveles sobre PostgreSQL
// (usable con pool o tx). El libro es solo-append.
type LoyaltyRepo struct {
	q Querier
}

// NewLoyaltyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoyaltyRepository(q Querier) *LoyaltyRepo {
	return &LoyaltyRepo{q: q}
}

// CreateTransaction persiste un registro del libro de puntos.
func (r *LoyaltyRepo) CreateTransaction(t *entity.LoyaltyTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO loyalty_transactions (` + loyaltyTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CustomerID, t.Points, t.Type, nullable(t.SaleID), t.Description,
		t.PreviousPoints, t.NewPoints, t.CreatedAt, nullable(t.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create loyalty transaction: %w", err)
	}
	return nil
}

// ListByCustomer historial de puntos, del más reciente al más antiguo.
func (r *LoyaltyRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error) {
	query := `SELECT ` + loyaltyTxColumns + ` FROM loyalty_transactions
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loyalty transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.LoyaltyTransaction
	for rows.Next() {
		t, err := scanLoyaltyTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loyalty transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// LastByCustomer transacción más reciente del cliente, o (nil, nil).
func (r *LoyaltyRepo) LastByCustomer(customerID string) (*entity.LoyaltyTransaction, error) {
	query := `SELECT ` + loyaltyTxColumns + ` FROM loyalty_transactions
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 1`
	t, err := scanLoyaltyTx(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last loyalty transaction: %w", err)
	}
	return t, nil
}

// ListTiers catálogo de niveles del programa.
func (r *LoyaltyRepo) ListTiers() ([]*entity.LoyaltyTier, error) {
	query := `
		SELECT name, min_purchase_amount, points_multiplier, discount_percentage
		FROM loyalty_tiers ORDER BY min_purchase_amount`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list loyalty tiers: %w", err)
	}
	defer rows.Close()

	var tiers []*entity.LoyaltyTier
	for rows.Next() {
		var t entity.LoyaltyTier
		if err := rows.Scan(&t.Name, &t.MinPurchaseAmount, &t.PointsMultiplier, &t.DiscountPercentage); err != nil {
			return nil, fmt.Errorf("scan loyalty tier: %w", err)
		}
		tiers = append(tiers, &t)
	}
	return tiers, rows.Err()
}

func scanLoyaltyTx(row pgx.Row) (*entity.LoyaltyTransaction, error) {
	var t entity.LoyaltyTransaction
	var saleID, createdBy *string
	if err := row.Scan(
		&t.ID, &t.CustomerID, &t.Points, &t.Type, &saleID, &t.Description,
		&t.PreviousPoints, &t.NewPoints, &t.CreatedAt, &createdBy,
	); err != nil {
		return nil, err
	}
	t.SaleID = deref(saleID)
	t.CreatedBy = deref(createdBy)
	return &t, nil
}
