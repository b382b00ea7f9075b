package dto

import "github.com/shopspring/decimal"

// MaterialCostLine detalle de costo de una línea de receta.
type MaterialCostLine struct {
	RecipeLineID string          `json:"recipe_line_id"`
	MaterialID   string          `json:"material_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	WastePct     decimal.Decimal `json:"waste_pct"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Cost         decimal.Decimal `json:"cost"`
}

// ProcessCostLine detalle de costo de un paso de producción.
type ProcessCostLine struct {
	StepID      string          `json:"step_id"`
	ProcessID   string          `json:"process_id"`
	Name        string          `json:"name"`
	Minutes     decimal.Decimal `json:"minutes"`
	CostPerHour decimal.Decimal `json:"cost_per_hour"`
	Cost        decimal.Decimal `json:"cost"`
}

// TaxCostLine aporte de un impuesto activo.
type TaxCostLine struct {
	TaxID      string          `json:"tax_id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// CostingResponse desglose de costos de un producto, redondeado a 2 decimales.
type CostingResponse struct {
	ProductID      string             `json:"product_id"`
	Currency       string             `json:"currency"`
	Materials      []MaterialCostLine `json:"materials"`
	Processes      []ProcessCostLine  `json:"processes"`
	Taxes          []TaxCostLine      `json:"taxes"`
	MaterialCost   decimal.Decimal    `json:"material_cost"`
	ProcessCost    decimal.Decimal    `json:"process_cost"`
	ProductionCost decimal.Decimal    `json:"production_cost"`
	ProfitPct      *decimal.Decimal   `json:"profit_pct,omitempty"`
	SalePrice      decimal.Decimal    `json:"sale_price"`
	Margin         decimal.Decimal    `json:"margin"`
	TaxBase        string             `json:"tax_base"`
	PriceWithTaxes decimal.Decimal    `json:"price_with_taxes"`
}

// RecalculateResponse resultado del barrido de precios.
type RecalculateResponse struct {
	Products int `json:"products"`
}
