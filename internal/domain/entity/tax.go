package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax impuesto porcentual de la mipyme. Solo los activos suman al precio con impuestos;
// desactivarlo no elimina la asociación con los productos.
type Tax struct {
	ID         string
	MipymeID   string
	Name       string
	Percentage decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
