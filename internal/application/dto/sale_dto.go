package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta: producto y cantidad entera.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

// RegisterSaleRequest venta con al menos una línea.
type RegisterSaleRequest struct {
	Lines []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleItemResponse ítem vendido con el precio congelado.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID        string             `json:"id"`
	CreatedBy string             `json:"created_by"`
	Total     decimal.Decimal    `json:"total"`
	Currency  string             `json:"currency"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []SaleItemResponse `json:"items,omitempty"`
}

// SaleListRequest filtros del historial de ventas.
type SaleListRequest struct {
	From *time.Time
	To   *time.Time
	PageRequest
}

// SaleListResponse historial paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
