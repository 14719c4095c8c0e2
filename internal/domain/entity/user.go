package entity

import "time"

// Role es la función de un usuario. Solo existen dos valores.
type Role string

const (
	RoleVendedor      Role = "vendedor"
	RoleAdministrador Role = "administrador"
)

// ParseRole convierte s en Role; ok es false si no es uno de los valores válidos.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleVendedor, RoleAdministrador:
		return Role(s), true
	}
	return "", false
}

// IsAdmin indica si el rol tiene privilegios completos.
func (r Role) IsAdmin() bool { return r == RoleAdministrador }

// Allows es la única decisión de autorización del sistema: r pasa si está entre allowed.
// Sin allowed, cualquier rol válido pasa.
func (r Role) Allows(allowed ...Role) bool {
	if _, ok := ParseRole(string(r)); !ok {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt; nunca sale en una respuesta
	Role         Role
	CreatedAt    time.Time
}

// Actor es la identidad verificada que ejecuta una operación (viene del token).
type Actor struct {
	UserID   int64
	Username string
	Role     Role
}
