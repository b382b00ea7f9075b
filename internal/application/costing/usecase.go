package costing

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// CostingUseCase consulta el desglose de costos de un producto (solo lectura).
type CostingUseCase struct {
	store  repository.Store
	engine *costing.Engine
}

// NewCostingUseCase construye el caso de uso.
func NewCostingUseCase(store repository.Store, engine *costing.Engine) *CostingUseCase {
	return &CostingUseCase{store: store, engine: engine}
}

// Breakdown calcula costos y precios actuales del producto sin persistir nada.
func (uc *CostingUseCase) Breakdown(ctx context.Context, tenantID, productID string) (*dto.CostingResponse, error) {
	sheet, err := LoadSheet(ctx, uc.store, tenantID, productID)
	if err != nil {
		return nil, err
	}
	b, err := uc.engine.Compute(*sheet)
	if err != nil {
		return nil, err
	}
	return ToCostingResponse(b, sheet.Mipyme.Currency), nil
}

// ToCostingResponse redondea el desglose a 2 decimales para la salida.
func ToCostingResponse(b *costing.Breakdown, currency string) *dto.CostingResponse {
	out := &dto.CostingResponse{
		ProductID:      b.ProductID,
		Currency:       currency,
		Materials:      make([]dto.MaterialCostLine, 0, len(b.Materials)),
		Processes:      make([]dto.ProcessCostLine, 0, len(b.Processes)),
		Taxes:          make([]dto.TaxCostLine, 0, len(b.Taxes)),
		MaterialCost:   costing.Money(b.MaterialCost),
		ProcessCost:    costing.Money(b.ProcessCost),
		ProductionCost: costing.Money(b.ProductionCost),
		SalePrice:      costing.Money(b.SalePrice),
		Margin:         costing.Money(b.Margin),
		TaxBase:        string(b.TaxBase),
		PriceWithTaxes: costing.Money(b.PriceWithTaxes),
	}
	if b.Profit.Derived {
		pct := b.Profit.Percentage
		out.ProfitPct = &pct
	}
	for _, l := range b.Materials {
		out.Materials = append(out.Materials, dto.MaterialCostLine{
			RecipeLineID: l.RecipeLineID,
			MaterialID:   l.MaterialID,
			Name:         l.Name,
			Quantity:     l.Quantity,
			WastePct:     l.WastePct,
			CostPerUnit:  l.CostPerUnit,
			Cost:         costing.Money(l.Cost),
		})
	}
	for _, l := range b.Processes {
		out.Processes = append(out.Processes, dto.ProcessCostLine{
			StepID:      l.StepID,
			ProcessID:   l.ProcessID,
			Name:        l.Name,
			Minutes:     l.Minutes,
			CostPerHour: l.CostPerHour,
			Cost:        costing.Money(l.Cost),
		})
	}
	for _, t := range b.Taxes {
		out.Taxes = append(out.Taxes, dto.TaxCostLine{
			TaxID:      t.TaxID,
			Name:       t.Name,
			Percentage: t.Percentage,
			Amount:     costing.Money(t.Amount),
		})
	}
	return out
}
