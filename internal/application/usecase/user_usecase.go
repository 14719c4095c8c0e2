package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (rutas solo para administrador).
type UserUseCase struct {
	repo     repository.UserRepository
	hashCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt para contraseñas nuevas.
func (uc *UserUseCase) WithHashCost(cost int) *UserUseCase {
	uc.hashCost = cost
	return uc
}

// List devuelve todos los usuarios ordenados por username, sin hash.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia la función del usuario. Solo acepta vendedor o administrador.
func (uc *UserUseCase) UpdateRole(ctx context.Context, id int64, role string) (*dto.UserResponse, error) {
	return uc.Update(ctx, id, dto.UpdateUserRequest{Role: &role})
}

// Update cambia la función y/o la contraseña del usuario.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Role == nil && in.Password == nil {
		return nil, fmt.Errorf("%w: role o password son obligatorios", domain.ErrInvalidInput)
	}
	var role entity.Role
	if in.Role != nil {
		r, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		role = r
	}
	if in.Password != nil && *in.Password == "" {
		return nil, fmt.Errorf("%w: password no puede estar vacío", domain.ErrInvalidInput)
	}

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Role != nil {
		user.Role = role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. Un administrador no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if actor.UserID == id {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, id)
}
