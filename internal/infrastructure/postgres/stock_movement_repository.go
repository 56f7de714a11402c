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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, branch_id, movement_type, quantity, previous_quantity, new_quantity, reason, reference_id, created_at, created_by`

// StockMovementRepo bitácora de inventario sobre PostgreSQL (usable con pool o tx).
// Solo-append: no expone update ni delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, nullable(movement.BranchID), movement.Type,
		movement.Quantity, movement.PreviousQuantity, movement.NewQuantity,
		movement.Reason, nullable(movement.ReferenceID), movement.CreatedAt,
		nullable(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LastByProduct movimiento más reciente del producto, o (nil, nil).
func (r *StockMovementRepo) LastByProduct(productID string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last stock movement: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var branchID, referenceID, createdBy *string
	if err := row.Scan(
		&m.ID, &m.ProductID, &branchID, &m.Type, &m.Quantity,
		&m.PreviousQuantity, &m.NewQuantity, &m.Reason, &referenceID,
		&m.CreatedAt, &createdBy,
	); err != nil {
		return nil, err
	}
	m.BranchID = deref(branchID)
	m.ReferenceID = deref(referenceID)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
