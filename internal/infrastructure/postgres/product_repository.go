package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, quantity, unit, active, last_modified_by, last_modified_at, created_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, quantity, unit, active, last_modified_by, last_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Quantity, product.Unit, product.Active,
		product.LastModifiedBy, product.LastModifiedAt,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeQuantity
		}
		if isNumericOutOfRange(err) {
			return fmt.Errorf("%w: quantity fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListActive lista los productos activos por id ascendente.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE active = true ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto activo.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, unit = $4, last_modified_by = $5, last_modified_at = $6
		WHERE id = $1 AND active = true`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Quantity, product.Unit,
		product.LastModifiedBy, product.LastModifiedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeQuantity
		}
		if isNumericOutOfRange(err) {
			return fmt.Errorf("%w: quantity fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el producto como inactivo; la fila se conserva.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64, by string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET active = false, last_modified_by = $2, last_modified_at = $3 WHERE id = $1 AND active = true`,
		id, by, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.Unit, &p.Active,
		&p.LastModifiedBy, &p.LastModifiedAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
