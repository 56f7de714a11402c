package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// LoyaltyRepository libro de puntos (solo-append) y catálogo de niveles.
type LoyaltyRepository interface {
	CreateTransaction(t *entity.LoyaltyTransaction) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error)
	// LastByCustomer devuelve la transacción más reciente del cliente, o (nil, nil).
	LastByCustomer(customerID string) (*entity.LoyaltyTransaction, error)
	ListTiers() ([]*entity.LoyaltyTier, error)
}
