package dto

// RegisterRequest entrada para registro: username y password en texto (se hashea en el use case).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de sesión y rol para que el cliente adapte la vista.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// UserResponse salida de un usuario (nunca incluye el hash de la contraseña).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdateRoleRequest entrada para PUT/PATCH /api/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRequest entrada para PUT/PATCH /api/users/:id. Al menos un campo.
type UpdateUserRequest struct {
	Role     *string `json:"role"`
	Password *string `json:"password"`
}
