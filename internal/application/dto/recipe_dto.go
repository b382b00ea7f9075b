package dto

import "github.com/shopspring/decimal"

// AddRecipeLineRequest agrega un insumo a la formulación. WastePct nil usa la merma por defecto.
type AddRecipeLineRequest struct {
	MaterialID string           `json:"material_id" validate:"required,uuid"`
	Quantity   decimal.Decimal  `json:"quantity" validate:"gt=0"`
	WastePct   *decimal.Decimal `json:"waste_pct" validate:"omitempty,min=0,max=100"`
}

// UpdateRecipeLineRequest cambia cantidad o merma de una línea.
type UpdateRecipeLineRequest struct {
	Quantity *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	WastePct *decimal.Decimal `json:"waste_pct" validate:"omitempty,min=0,max=100"`
}

// RecipeLineResponse línea de formulación.
type RecipeLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	WastePct   decimal.Decimal `json:"waste_pct"`
}

// AddRoutingStepRequest agrega un proceso a la ruta de producción.
type AddRoutingStepRequest struct {
	ProcessID string          `json:"process_id" validate:"required,uuid"`
	Minutes   decimal.Decimal `json:"minutes" validate:"gt=0"`
}

// UpdateRoutingStepRequest cambia los minutos de un paso.
type UpdateRoutingStepRequest struct {
	Minutes decimal.Decimal `json:"minutes" validate:"gt=0"`
}

// RoutingStepResponse paso de producción.
type RoutingStepResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	ProcessID string          `json:"process_id"`
	Minutes   decimal.Decimal `json:"minutes"`
}
