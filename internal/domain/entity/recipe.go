package entity

import "github.com/shopspring/decimal"

// RecipeLine (formulación) une un producto con un insumo. Único por (producto, insumo).
type RecipeLine struct {
	ID         string
	ProductID  string
	MaterialID string
	Quantity   decimal.Decimal // cantidad neta por unidad producida, > 0
	WastePct   decimal.Decimal // 0..100, multiplica el costo
}

// RoutingStep (paso de producción) une un producto con un proceso. Único por (producto, proceso).
type RoutingStep struct {
	ID        string
	ProductID string
	ProcessID string
	Minutes   decimal.Decimal // > 0
}
