// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (desarrollo local sin PostgreSQL) y en los tests.
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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacena usuarios en un mapa protegido por mutex.
type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: make(map[int64]entity.User)}
}

// Create persiste un nuevo usuario; el username es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	if user.Role == "" {
		user.Role = entity.RoleVendedor
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.byID[user.ID] = *user
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve los usuarios ordenados por username.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

// Update guarda role y password_hash.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Role = user.Role
	stored.PasswordHash = user.PasswordHash
	r.byID[user.ID] = stored
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
