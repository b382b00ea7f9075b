package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMipymeRequest alta de la mipyme (tenant) al registrarse.
type CreateMipymeRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	FiscalID         string          `json:"fiscal_id" validate:"required,min=1,max=30"`
	DefaultProfitPct decimal.Decimal `json:"default_profit_pct" validate:"min=0,max=100"`
	DefaultWastePct  decimal.Decimal `json:"default_waste_pct" validate:"min=0,max=100"`
	Currency         string          `json:"currency" validate:"omitempty,oneof=USD NIO HNL CRC"`
	PermittedUnits   []string        `json:"permitted_units" validate:"dive,oneof=kg g l ml un m cm m2 m3"`
}

// UpdateProductionSettingsRequest cambia los valores por defecto de producción.
type UpdateProductionSettingsRequest struct {
	DefaultProfitPct *decimal.Decimal `json:"default_profit_pct" validate:"omitempty,min=0,max=100"`
	DefaultWastePct  *decimal.Decimal `json:"default_waste_pct" validate:"omitempty,min=0,max=100"`
	Currency         *string          `json:"currency" validate:"omitempty,oneof=USD NIO HNL CRC"`
	PermittedUnits   *[]string        `json:"permitted_units"`
}

// MipymeResponse salida de la configuración del tenant.
type MipymeResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	FiscalID         string          `json:"fiscal_id"`
	DefaultProfitPct decimal.Decimal `json:"default_profit_pct"`
	DefaultWastePct  decimal.Decimal `json:"default_waste_pct"`
	Currency         string          `json:"currency"`
	PermittedUnits   []string        `json:"permitted_units"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
