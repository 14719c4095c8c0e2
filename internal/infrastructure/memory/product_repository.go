package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo almacena productos en un mapa protegido por mutex.
type ProductRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]entity.Product
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{byID: make(map[int64]entity.Product)}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.Quantity.IsNegative() {
		return domain.ErrNegativeQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = time.Now()
	r.byID[product.ID] = *product
	return nil
}

// GetByID obtiene un producto por ID, activo o no.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListActive devuelve los productos activos por id ascendente.
func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update guarda name, quantity, unit y la marca de modificación.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	if product.Quantity.IsNegative() {
		return domain.ErrNegativeQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[product.ID]
	if !ok || !stored.Active {
		return domain.ErrNotFound
	}
	stored.Name = product.Name
	stored.Quantity = product.Quantity
	stored.Unit = product.Unit
	stored.LastModifiedBy = product.LastModifiedBy
	stored.LastModifiedAt = product.LastModifiedAt
	r.byID[product.ID] = stored
	return nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductRepo) SoftDelete(_ context.Context, id int64, by string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok || !stored.Active {
		return domain.ErrNotFound
	}
	stored.Active = false
	stored.Touch(by, at)
	r.byID[id] = stored
	return nil
}
