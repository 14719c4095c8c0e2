package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay registro.
type UserRepository interface {
	// Create persiste el usuario y completa ID y CreatedAt. ErrUsernameTaken si el username existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List devuelve todos los usuarios ordenados por username.
	List(ctx context.Context) ([]*entity.User, error)
	// Update guarda role y password_hash. ErrNotFound si el usuario no existe.
	Update(ctx context.Context, user *entity.User) error
	// Delete borra el usuario. ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
