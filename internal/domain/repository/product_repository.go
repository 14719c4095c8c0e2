package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste el producto y completa ID y CreatedAt.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve el producto (activo o no); (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// ListActive devuelve los productos activos ordenados por id ascendente.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// Update guarda name, quantity, unit y la marca de modificación de un producto activo.
	// ErrNotFound si no existe o está inactivo.
	Update(ctx context.Context, product *entity.Product) error
	// SoftDelete marca el producto como inactivo. ErrNotFound si no existe o ya estaba inactivo.
	SoftDelete(ctx context.Context, id int64, by string, at time.Time) error
}
