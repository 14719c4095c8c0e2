package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Quantity >= 0 siempre.
// Los productos no se borran: Active=false los saca de los listados.
type Product struct {
	ID             int64
	Name           string
	Quantity       decimal.Decimal
	Unit           string
	Active         bool
	LastModifiedBy *string
	LastModifiedAt *time.Time
	CreatedAt      time.Time
}

// Touch registra quién y cuándo modificó el producto por última vez.
func (p *Product) Touch(username string, at time.Time) {
	p.LastModifiedBy = &username
	p.LastModifiedAt = &at
}
