package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUnitRequest alta de una unidad de medida global.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	Abbreviation string `json:"abbreviation" validate:"required,min=1,max=10"`
}

// UnitResponse unidad de medida.
type UnitResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// CreateMaterialRequest alta de un insumo.
type CreateMaterialRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	UnitID      string          `json:"unit_id" validate:"required,uuid"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" validate:"min=0"`
	Stock       decimal.Decimal `json:"stock" validate:"min=0"`
}

// UpdateMaterialRequest edición parcial de un insumo.
type UpdateMaterialRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	UnitID      *string          `json:"unit_id" validate:"omitempty,uuid"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" validate:"omitempty,min=0"`
	Stock       *decimal.Decimal `json:"stock" validate:"omitempty,min=0"`
}

// RestockRequest compra de insumo. UnitCost opcional recalcula el costo promedio ponderado.
type RestockRequest struct {
	Quantity decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitCost *decimal.Decimal `json:"unit_cost" validate:"omitempty,min=0"`
}

// MaterialResponse salida de un insumo.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitID      string          `json:"unit_id"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Stock       decimal.Decimal `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de insumos.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateProcessRequest alta de un proceso productivo.
type CreateProcessRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	CostPerHour decimal.Decimal `json:"cost_per_hour" validate:"min=0"`
}

// UpdateProcessRequest edición parcial de un proceso.
type UpdateProcessRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CostPerHour *decimal.Decimal `json:"cost_per_hour" validate:"omitempty,min=0"`
}

// ProcessResponse salida de un proceso.
type ProcessResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CostPerHour decimal.Decimal `json:"cost_per_hour"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProcessListResponse lista paginada de procesos.
type ProcessListResponse struct {
	Items []ProcessResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateTaxRequest alta de un impuesto porcentual.
type CreateTaxRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=100"`
	Percentage decimal.Decimal `json:"percentage" validate:"min=0,max=100"`
	Active     *bool           `json:"active"`
}

// UpdateTaxRequest edición parcial de un impuesto.
type UpdateTaxRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Percentage *decimal.Decimal `json:"percentage" validate:"omitempty,min=0,max=100"`
	Active     *bool            `json:"active"`
}

// SetTaxActiveRequest activa o desactiva un impuesto.
type SetTaxActiveRequest struct {
	Active bool `json:"active"`
}

// TaxResponse salida de un impuesto.
type TaxResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
