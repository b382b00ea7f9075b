package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material (insumo) consumido por las recetas. Stock solo baja al ejecutar lotes.
type Material struct {
	ID          string
	MipymeID    string
	Name        string
	Description string
	UnitID      string
	CostPerUnit decimal.Decimal
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
