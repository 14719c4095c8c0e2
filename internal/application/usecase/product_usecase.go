package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// quantity se guarda como NUMERIC(14, 3): tres decimales y menos de 10^11.
const quantityScale = 3

var maxQuantity = decimal.New(1, 11)

// ProductUseCase casos de uso para productos. Cada mutación exitosa emite product_update.
//
// Dos actualizaciones concurrentes del mismo producto se resuelven por "último en escribir gana":
// no hay columna de versión ni bloqueo optimista.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier ChangeNotifier
	observe  MutationObserver
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notifier ChangeNotifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier, now: time.Now}
}

// WithMutationObserver registra un observador de mutaciones (ej. contador Prometheus).
func (uc *ProductUseCase) WithMutationObserver(fn MutationObserver) *ProductUseCase {
	uc.observe = fn
	return uc
}

// List devuelve los productos activos por id ascendente, proyectados según el rol del actor.
func (uc *ProductUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p, actor.Role))
	}
	return out, nil
}

// GetByID devuelve un producto activo. ErrNotFound si no existe o fue dado de baja.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Actor, id int64) (*dto.ProductResponse, error) {
	p, err := uc.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(p, actor.Role)
	return &out, nil
}

// Create crea un producto (solo administrador).
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || in.Quantity == nil {
		return nil, fmt.Errorf("%w: name, quantity y unit son obligatorios", domain.ErrInvalidInput)
	}
	if err := validateQuantity(*in.Quantity); err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:     name,
		Quantity: *in.Quantity,
		Unit:     unit,
		Active:   true,
	}
	p.Touch(actor.Username, uc.now())
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.changed(ctx, "create")
	out := ToProductResponse(p, actor.Role)
	return &out, nil
}

// Update aplica los cambios permitidos al rol del actor.
// Un vendedor solo puede cambiar quantity; si envía name o unit se rechaza con ErrForbidden.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == nil && in.Quantity == nil && in.Unit == nil {
		return nil, fmt.Errorf("%w: no hay campos para actualizar", domain.ErrInvalidInput)
	}
	if !actor.Role.IsAdmin() && (in.Name != nil || in.Unit != nil) {
		return nil, fmt.Errorf("%w: solo un administrador puede cambiar name o unit", domain.ErrForbidden)
	}
	if in.Quantity != nil {
		if err := validateQuantity(*in.Quantity); err != nil {
			return nil, err
		}
	}
	p, err := uc.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, fmt.Errorf("%w: unit no puede estar vacío", domain.ErrInvalidInput)
		}
		p.Unit = unit
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	p.Touch(actor.Username, uc.now())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.changed(ctx, "update")
	out := ToProductResponse(p, actor.Role)
	return &out, nil
}

// Delete da de baja el producto (soft delete, solo administrador).
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if !actor.Role.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := uc.repo.SoftDelete(ctx, id, actor.Username, uc.now()); err != nil {
		return err
	}
	uc.changed(ctx, "delete")
	return nil
}

func validateQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return domain.ErrNegativeQuantity
	}
	if !q.Round(quantityScale).Equal(q) {
		return fmt.Errorf("%w: quantity admite como máximo %d decimales", domain.ErrInvalidInput, quantityScale)
	}
	if q.GreaterThanOrEqual(maxQuantity) {
		return fmt.Errorf("%w: quantity debe ser menor que %s", domain.ErrInvalidInput, maxQuantity.String())
	}
	return nil
}

func (uc *ProductUseCase) activeProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) changed(ctx context.Context, operation string) {
	if uc.observe != nil {
		uc.observe(operation)
	}
	if uc.notifier != nil {
		uc.notifier.Broadcast(ctx, entity.ChangeEvent{Event: entity.EventProductUpdate})
	}
}

// ToProductResponse proyecta el producto: las columnas de auditoría solo para administradores.
func ToProductResponse(p *entity.Product, role entity.Role) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Quantity: p.Quantity,
		Unit:     p.Unit,
	}
	if role.IsAdmin() {
		out.ProductAudit = &dto.ProductAudit{
			Active:         p.Active,
			LastModifiedBy: p.LastModifiedBy,
			LastModifiedAt: p.LastModifiedAt,
		}
	}
	return out
}
