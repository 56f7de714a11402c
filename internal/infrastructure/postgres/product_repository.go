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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, branch_id, name, barcode, description, price, cost_price, stock_quantity, reorder_level, tax_rate, category_id, supplier_id, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BranchID, product.Name, product.Barcode, product.Description,
		product.Price, product.CostPrice, product.StockQuantity, product.ReorderLevel,
		product.TaxRate, nullable(product.CategoryID), nullable(product.SupplierID),
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode obtiene un producto por código de barras dentro de la sucursal.
func (r *ProductRepo) GetByBarcode(branchID, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE branch_id = $1 AND barcode = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, barcode), "get product by barcode")
}

// GetForUpdate bloquea la fila del producto dentro de la transacción activa.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// UpdateStock escribe la cantidad resultante. Solo bajo bloqueo de fila.
func (r *ProductRepo) UpdateStock(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Update actualiza un producto. No toca stock_quantity: eso va por el libro de inventario.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, description = $4, price = $5,
			cost_price = $6, reorder_level = $7, tax_rate = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Description, product.Price,
		product.CostPrice, product.ReorderLevel, product.TaxRate, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByBranch lista productos de la sucursal con paginación.
func (r *ProductRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE branch_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListLowStock productos activos en o por debajo de su punto de reorden.
func (r *ProductRepo) ListLowStock(branchID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE branch_id = $1 AND is_active AND stock_quantity <= reorder_level
		ORDER BY stock_quantity ASC`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var categoryID, supplierID *string
	err := row.Scan(
		&p.ID, &p.BranchID, &p.Name, &p.Barcode, &p.Description, &p.Price, &p.CostPrice,
		&p.StockQuantity, &p.ReorderLevel, &p.TaxRate, &categoryID, &supplierID,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.CategoryID = deref(categoryID)
	p.SupplierID = deref(supplierID)
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, supplierID *string
		if err := rows.Scan(
			&p.ID, &p.BranchID, &p.Name, &p.Barcode, &p.Description, &p.Price, &p.CostPrice,
			&p.StockQuantity, &p.ReorderLevel, &p.TaxRate, &categoryID, &supplierID,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CategoryID = deref(categoryID)
		p.SupplierID = deref(supplierID)
		list = append(list, &p)
	}
	return list, rows.Err()
}
