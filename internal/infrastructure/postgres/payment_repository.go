package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, sale_id, method, amount, reference_number, phone_number, status, processed_by, processed_at, notes`

// PaymentRepo pagos sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SaleID, p.Method, p.Amount, p.ReferenceNumber, p.PhoneNumber,
		p.Status, nullable(p.ProcessedBy), p.ProcessedAt, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListBySale pagos de una venta, en orden de registro.
func (r *PaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE sale_id = $1 ORDER BY processed_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var processedBy *string
		if err := rows.Scan(
			&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.ReferenceNumber,
			&p.PhoneNumber, &p.Status, &processedBy, &p.ProcessedAt, &p.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.ProcessedBy = deref(processedBy)
		list = append(list, &p)
	}
	return list, rows.Err()
}
