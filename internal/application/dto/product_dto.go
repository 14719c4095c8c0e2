package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo administrador).
// Quantity es puntero para distinguir "no enviado" de cero.
type CreateProductRequest struct {
	Name     string           `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     string           `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Un vendedor solo puede enviar Quantity; un administrador cualquiera de los tres.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
}

// ProductResponse salida de un producto. ProductAudit solo se rellena para administradores;
// al ser un puntero embebido, sus campos no aparecen en el JSON cuando es nil.
type ProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	*ProductAudit
}

// ProductAudit columnas visibles solo para administradores.
type ProductAudit struct {
	Active         bool       `json:"active"`
	LastModifiedBy *string    `json:"last_modified_by"`
	LastModifiedAt *time.Time `json:"last_modified_at"`
}
