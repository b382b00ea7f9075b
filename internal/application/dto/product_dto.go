package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// ProfitMode: manual (usa sale_price), explicit (usa profit_pct) o tenant_default.
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description"`
	ProfitMode   string           `json:"profit_mode" validate:"required,oneof=manual explicit tenant_default"`
	ProfitPct    *decimal.Decimal `json:"profit_pct" validate:"omitempty,min=0"`
	SalePrice    *decimal.Decimal `json:"sale_price" validate:"omitempty,min=0"`
	Stock        int64            `json:"stock" validate:"min=0"`
	Weight       *decimal.Decimal `json:"weight" validate:"omitempty,min=0"`
	Length       *decimal.Decimal `json:"length" validate:"omitempty,min=0"`
	Width        *decimal.Decimal `json:"width" validate:"omitempty,min=0"`
	Height       *decimal.Decimal `json:"height" validate:"omitempty,min=0"`
	Presentation string           `json:"presentation" validate:"max=100"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni precios derivados).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	ProfitMode   *string          `json:"profit_mode" validate:"omitempty,oneof=manual explicit tenant_default"`
	ProfitPct    *decimal.Decimal `json:"profit_pct" validate:"omitempty,min=0"`
	SalePrice    *decimal.Decimal `json:"sale_price" validate:"omitempty,min=0"`
	Weight       *decimal.Decimal `json:"weight" validate:"omitempty,min=0"`
	Length       *decimal.Decimal `json:"length" validate:"omitempty,min=0"`
	Width        *decimal.Decimal `json:"width" validate:"omitempty,min=0"`
	Height       *decimal.Decimal `json:"height" validate:"omitempty,min=0"`
	Presentation *string          `json:"presentation" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto con su foto de precios.
type ProductResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	ProfitMode     string           `json:"profit_mode"`
	ProfitPct      *decimal.Decimal `json:"profit_pct,omitempty"`
	SalePrice      decimal.Decimal  `json:"sale_price"`
	Stock          int64            `json:"stock"`
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Length         *decimal.Decimal `json:"length,omitempty"`
	Width          *decimal.Decimal `json:"width,omitempty"`
	Height         *decimal.Decimal `json:"height,omitempty"`
	Presentation   string           `json:"presentation,omitempty"`
	ProductionCost decimal.Decimal  `json:"production_cost"`
	Margin         decimal.Decimal  `json:"margin"`
	PriceWithTaxes decimal.Decimal  `json:"price_with_taxes"`
	PricedAt       *time.Time       `json:"priced_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// BoundRequest rango opcional; cualquiera de los extremos puede omitirse.
type BoundRequest struct {
	Min *decimal.Decimal `json:"min" validate:"omitempty,min=0"`
	Max *decimal.Decimal `json:"max" validate:"omitempty,min=0"`
}

// StandardsRequest estándares físicos del producto.
type StandardsRequest struct {
	Weight BoundRequest `json:"weight"`
	Length BoundRequest `json:"length"`
	Width  BoundRequest `json:"width"`
	Height BoundRequest `json:"height"`
}

// StandardsResponse estándares guardados.
type StandardsResponse struct {
	ProductID string       `json:"product_id"`
	Weight    BoundRequest `json:"weight"`
	Length    BoundRequest `json:"length"`
	Width     BoundRequest `json:"width"`
	Height    BoundRequest `json:"height"`
}
