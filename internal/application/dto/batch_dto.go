package dto

import "github.com/shopspring/decimal"

// ExecuteBatchRequest ejecución de un lote de producción.
type ExecuteBatchRequest struct {
	Units int64 `json:"units" validate:"gt=0"`
}

// MaterialRequirementResponse consumo de un insumo en el lote.
type MaterialRequirementResponse struct {
	MaterialID  string          `json:"material_id"`
	Name        string          `json:"name"`
	PerUnit     decimal.Decimal `json:"per_unit"`
	WastePct    decimal.Decimal `json:"waste_pct"`
	Required    decimal.Decimal `json:"required"`
	Available   decimal.Decimal `json:"available"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Cost        decimal.Decimal `json:"cost"`
	Sufficient  bool            `json:"sufficient"`
}

// ProcessRequirementResponse costo de un proceso en el lote.
type ProcessRequirementResponse struct {
	ProcessID   string          `json:"process_id"`
	Name        string          `json:"name"`
	Minutes     decimal.Decimal `json:"minutes"`
	CostPerHour decimal.Decimal `json:"cost_per_hour"`
	Cost        decimal.Decimal `json:"cost"`
}

// BatchPlanResponse proyección de un lote.
type BatchPlanResponse struct {
	ProductID        string                        `json:"product_id"`
	ProductName      string                        `json:"product_name"`
	Units            int64                         `json:"units"`
	Currency         string                        `json:"currency"`
	Materials        []MaterialRequirementResponse `json:"materials"`
	Processes        []ProcessRequirementResponse  `json:"processes"`
	MaterialCost     decimal.Decimal               `json:"material_cost"`
	ProcessCost      decimal.Decimal               `json:"process_cost"`
	TotalCost        decimal.Decimal               `json:"total_cost"`
	ProjectedRevenue decimal.Decimal               `json:"projected_revenue"`
	ProjectedMargin  decimal.Decimal               `json:"projected_margin"`
	Feasible         bool                          `json:"feasible"`
	Shortfalls       []ShortfallResponse           `json:"shortfalls,omitempty"`
}

// BatchResultResponse resultado de un lote ejecutado.
type BatchResultResponse struct {
	Plan         BatchPlanResponse `json:"plan"`
	ProductStock int64             `json:"product_stock"`
}
