package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, cashier_id, branch_id, opening_time, closing_time, opening_cash, closing_cash, expected_cash, cash_difference, status, total_sales, total_transactions, closed_by, notes, created_at, updated_at`

// ShiftRepo turnos de caja sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persiste un turno.
func (r *ShiftRepo) Create(s *entity.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CashierID, nullable(s.BranchID), s.OpeningTime, s.ClosingTime,
		s.OpeningCash, s.ClosingCash, s.ExpectedCash, s.CashDifference, s.Status,
		s.TotalSales, s.TotalTransactions, nullable(s.ClosedBy), s.Notes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID.
func (r *ShiftRepo) GetByID(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	return scanShift(r.q.QueryRow(context.Background(), query, id), "get shift")
}

// GetOpenByCashier turno abierto del cajero, o (nil, nil).
func (r *ShiftRepo) GetOpenByCashier(cashierID string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
		WHERE cashier_id = $1 AND status = $2 ORDER BY opening_time DESC LIMIT 1`
	return scanShift(r.q.QueryRow(context.Background(), query, cashierID, entity.ShiftStatusOpen), "get open shift")
}

// GetForUpdate bloquea la fila del turno dentro de la transacción activa.
func (r *ShiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 FOR UPDATE`
	return scanShift(r.q.QueryRow(context.Background(), query, id), "lock shift")
}

// Update actualiza el turno (totales acumulados o cierre).
func (r *ShiftRepo) Update(s *entity.Shift) error {
	query := `
		UPDATE shifts SET closing_time = $2, closing_cash = $3, expected_cash = $4,
			cash_difference = $5, status = $6, total_sales = $7, total_transactions = $8,
			closed_by = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClosingTime, s.ClosingCash, s.ExpectedCash, s.CashDifference,
		s.Status, s.TotalSales, s.TotalTransactions, nullable(s.ClosedBy),
		s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}

func scanShift(row pgx.Row, op string) (*entity.Shift, error) {
	var s entity.Shift
	var branchID, closedBy *string
	err := row.Scan(
		&s.ID, &s.CashierID, &branchID, &s.OpeningTime, &s.ClosingTime,
		&s.OpeningCash, &s.ClosingCash, &s.ExpectedCash, &s.CashDifference,
		&s.Status, &s.TotalSales, &s.TotalTransactions, &closedBy, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.BranchID = deref(branchID)
	s.ClosedBy = deref(closedBy)
	return &s, nil
}
