package costing

import "github.com/shopspring/decimal"

// MaterialLine costo de una línea de receta.
type MaterialLine struct {
	RecipeLineID string
	MaterialID   string
	Name         string
	Quantity     decimal.Decimal
	WastePct     decimal.Decimal
	CostPerUnit  decimal.Decimal
	Cost         decimal.Decimal
}

// ProcessLine costo de un paso de producción.
type ProcessLine struct {
	StepID      string
	ProcessID   string
	Name        string
	Minutes     decimal.Decimal
	CostPerHour decimal.Decimal
	Cost        decimal.Decimal
}

// TaxLine aporte de un impuesto activo.
type TaxLine struct {
	TaxID      string
	Name       string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

// Breakdown desglose de costos y precios de un producto.
type Breakdown struct {
	ProductID      string
	Materials      []MaterialLine
	Processes      []ProcessLine
	Taxes          []TaxLine
	MaterialCost   decimal.Decimal
	ProcessCost    decimal.Decimal
	ProductionCost decimal.Decimal
	Profit         ResolvedProfit
	SalePrice      decimal.Decimal
	Margin         decimal.Decimal
	TaxBase        TaxBase
	TaxTotal       decimal.Decimal
	PriceWithTaxes decimal.Decimal
}
