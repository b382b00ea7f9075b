// Package production proyecta lotes de producción a partir de la ficha de costos.
package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
)

// MaterialRequirement consumo proyectado de un insumo para el lote.
type MaterialRequirement struct {
	MaterialID  string
	Name        string
	PerUnit     decimal.Decimal
	WastePct    decimal.Decimal
	Required    decimal.Decimal
	Available   decimal.Decimal
	CostPerUnit decimal.Decimal
	Cost        decimal.Decimal
	Sufficient  bool
}

// ProcessRequirement costo de un proceso escalado al lote.
type ProcessRequirement struct {
	ProcessID   string
	Name        string
	Minutes     decimal.Decimal
	CostPerHour decimal.Decimal
	Cost        decimal.Decimal
}

// BatchPlan proyección completa del lote y su factibilidad contra el stock actual.
type BatchPlan struct {
	ProductID        string
	ProductName      string
	Units            int64
	Materials        []MaterialRequirement
	Processes        []ProcessRequirement
	MaterialCost     decimal.Decimal
	ProcessCost      decimal.Decimal
	TotalCost        decimal.Decimal
	ProjectedRevenue decimal.Decimal
	ProjectedMargin  decimal.Decimal
	Feasible         bool
	Shortfalls       []domain.Shortfall
}

// Plan escala receta y ruta por units. No muta nada.
func Plan(engine *costing.Engine, sheet costing.Sheet, units int64) (*BatchPlan, error) {
	if units <= 0 {
		return nil, domain.NewValidationError("units", units, "debe ser un entero mayor que cero")
	}
	b, err := engine.Compute(sheet)
	if err != nil {
		return nil, err
	}
	n := decimal.NewFromInt(units)

	plan := &BatchPlan{
		ProductID:   sheet.Product.ID,
		ProductName: sheet.Product.Name,
		Units:       units,
		Feasible:    true,
	}
	for i, line := range b.Materials {
		required := costing.ApplyPct(line.Quantity.Mul(n), line.WastePct)
		available := sheet.Recipe[i].Material.Stock
		req := MaterialRequirement{
			MaterialID:  line.MaterialID,
			Name:        line.Name,
			PerUnit:     line.Quantity,
			WastePct:    line.WastePct,
			Required:    required,
			Available:   available,
			CostPerUnit: line.CostPerUnit,
			Cost:        line.Cost.Mul(n),
			Sufficient:  available.GreaterThanOrEqual(required),
		}
		if !req.Sufficient {
			plan.Feasible = false
			plan.Shortfalls = append(plan.Shortfalls, domain.Shortfall{
				Kind:      domain.StockMaterial,
				ID:        line.MaterialID,
				Name:      line.Name,
				Available: available,
				Required:  required,
			})
		}
		plan.Materials = append(plan.Materials, req)
	}
	for _, line := range b.Processes {
		plan.Processes = append(plan.Processes, ProcessRequirement{
			ProcessID:   line.ProcessID,
			Name:        line.Name,
			Minutes:     line.Minutes.Mul(n),
			CostPerHour: line.CostPerHour,
			Cost:        line.Cost.Mul(n),
		})
	}
	plan.MaterialCost = b.MaterialCost.Mul(n)
	plan.ProcessCost = b.ProcessCost.Mul(n)
	plan.TotalCost = plan.MaterialCost.Add(plan.ProcessCost)
	plan.ProjectedRevenue = b.SalePrice.Mul(n)
	plan.ProjectedMargin = b.Margin.Mul(n)
	return plan, nil
}

// Err devuelve un *domain.InsufficientStockError si el lote no es factible.
func (p *BatchPlan) Err() error {
	if p.Feasible {
		return nil
	}
	return &domain.InsufficientStockError{Shortfalls: p.Shortfalls}
}
