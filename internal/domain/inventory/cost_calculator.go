package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado de un insumo tras una compra.
// nuevo = ((stock × costo) + (entrada × costoEntrada)) / (stock + entrada)
func WeightedAverageCost(stock, cost, incoming, incomingCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(incoming)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return stock.Mul(cost).Add(incoming.Mul(incomingCost)).Div(total)
}
