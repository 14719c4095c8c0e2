package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrNegativeQuantity = errors.New("la cantidad no puede ser negativa")
	ErrInvalidRole      = errors.New("función inválida")
	ErrUsernameTaken    = errors.New("el usuario ya existe")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
)
