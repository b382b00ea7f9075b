package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Process operación de producción con costo por hora.
type Process struct {
	ID          string
	MipymeID    string
	Name        string
	Description string
	CostPerHour decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
