// Package costing contiene el motor de costos de producción: función pura sobre
// la ficha de un producto (receta, ruta de procesos e impuestos).
package costing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

var (
	hundred       = decimal.NewFromInt(100)
	minutesInHour = decimal.NewFromInt(60)
)

// TaxBase define sobre qué monto se aplican los impuestos activos.
type TaxBase string

const (
	TaxBaseProductionCost TaxBase = "production_cost"
	TaxBaseSalePrice      TaxBase = "sale_price"
)

// ParseTaxBase convierte el valor de configuración; vacío = production_cost.
func ParseTaxBase(s string) (TaxBase, error) {
	switch TaxBase(s) {
	case "", TaxBaseProductionCost:
		return TaxBaseProductionCost, nil
	case TaxBaseSalePrice:
		return TaxBaseSalePrice, nil
	}
	return "", fmt.Errorf("costing: base de impuestos desconocida %q", s)
}

// RecipeItem línea de receta con su insumo ya cargado (nil si la referencia está rota).
type RecipeItem struct {
	Line     entity.RecipeLine
	Material *entity.Material
}

// RoutingItem paso de producción con su proceso cargado.
type RoutingItem struct {
	Step    entity.RoutingStep
	Process *entity.Process
}

// Sheet todo lo que el motor necesita para costear un producto.
type Sheet struct {
	Mipyme  *entity.Mipyme
	Product *entity.Product
	Recipe  []RecipeItem
	Routing []RoutingItem
	Taxes   []entity.Tax
}

// Engine motor de costos. Sin estado salvo la política de base de impuestos.
type Engine struct {
	taxBase TaxBase
}

// NewEngine construye el motor; base vacía equivale a production_cost.
func NewEngine(base TaxBase) *Engine {
	if base == "" {
		base = TaxBaseProductionCost
	}
	return &Engine{taxBase: base}
}

// TaxBase devuelve la política configurada.
func (e *Engine) TaxBase() TaxBase { return e.taxBase }

// LineMaterialCost = quantity × costPerUnit × (1 + waste/100).
func LineMaterialCost(quantity, costPerUnit, wastePct decimal.Decimal) decimal.Decimal {
	return quantity.Mul(costPerUnit).Mul(ApplyPct(decimal.NewFromInt(1), wastePct))
}

// LineProcessCost = (minutes / 60) × costPerHour.
func LineProcessCost(minutes, costPerHour decimal.Decimal) decimal.Decimal {
	return minutes.Mul(costPerHour).Div(minutesInHour)
}

// ApplyPct devuelve value × (1 + pct/100).
func ApplyPct(value, pct decimal.Decimal) decimal.Decimal {
	return value.Add(PctOf(value, pct))
}

// PctOf devuelve value × pct/100.
func PctOf(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(hundred)
}

// Money redondea a 2 decimales (mitad hacia arriba) para almacenar o responder.
func Money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// MaterialCost suma el costo de todas las líneas de receta con merma.
func (e *Engine) MaterialCost(s Sheet) (decimal.Decimal, error) {
	lines, err := materialLines(s)
	if err != nil {
		return decimal.Zero, err
	}
	return sumMaterial(lines), nil
}

// ProcessCost suma el costo de todos los pasos de producción.
func (e *Engine) ProcessCost(s Sheet) (decimal.Decimal, error) {
	lines, err := processLines(s)
	if err != nil {
		return decimal.Zero, err
	}
	return sumProcess(lines), nil
}

// ProductionCost = MaterialCost + ProcessCost.
func (e *Engine) ProductionCost(s Sheet) (decimal.Decimal, error) {
	b, err := e.Compute(s)
	if err != nil {
		return decimal.Zero, err
	}
	return b.ProductionCost, nil
}

// SalePrice precio según la política de ganancia resuelta.
func (e *Engine) SalePrice(s Sheet) (decimal.Decimal, error) {
	b, err := e.Compute(s)
	if err != nil {
		return decimal.Zero, err
	}
	return b.SalePrice, nil
}

// Margin = SalePrice - ProductionCost.
func (e *Engine) Margin(s Sheet) (decimal.Decimal, error) {
	b, err := e.Compute(s)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Margin, nil
}

// PriceWithTaxes base + Σ impuestos activos sobre la base.
func (e *Engine) PriceWithTaxes(s Sheet) (decimal.Decimal, error) {
	b, err := e.Compute(s)
	if err != nil {
		return decimal.Zero, err
	}
	return b.PriceWithTaxes, nil
}

// Compute calcula el desglose completo. Los montos quedan sin redondear.
func (e *Engine) Compute(s Sheet) (*Breakdown, error) {
	if s.Product == nil {
		return nil, domain.ErrNotFound
	}
	mats, err := materialLines(s)
	if err != nil {
		return nil, err
	}
	procs, err := processLines(s)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		ProductID: s.Product.ID,
		Materials: mats,
		Processes: procs,
		TaxBase:   e.taxBase,
	}
	b.MaterialCost = sumMaterial(mats)
	b.ProcessCost = sumProcess(procs)
	b.ProductionCost = b.MaterialCost.Add(b.ProcessCost)

	profit := ResolveProfit(s.Product, s.Mipyme)
	b.Profit = profit
	if profit.Derived {
		b.SalePrice = ApplyPct(b.ProductionCost, profit.Percentage)
	} else {
		b.SalePrice = s.Product.SalePrice
	}
	b.Margin = b.SalePrice.Sub(b.ProductionCost)

	base := b.ProductionCost
	if e.taxBase == TaxBaseSalePrice {
		base = b.SalePrice
	}
	b.TaxTotal = decimal.Zero
	for _, t := range s.Taxes {
		if !t.Active {
			continue
		}
		amount := PctOf(base, t.Percentage)
		b.Taxes = append(b.Taxes, TaxLine{TaxID: t.ID, Name: t.Name, Percentage: t.Percentage, Amount: amount})
		b.TaxTotal = b.TaxTotal.Add(amount)
	}
	b.PriceWithTaxes = base.Add(b.TaxTotal)
	return b, nil
}

// ResolvedProfit resultado de resolver la ProfitPolicy en el borde del motor.
type ResolvedProfit struct {
	Derived    bool
	Percentage decimal.Decimal
}

// ResolveProfit decide si el precio se deriva del costo y con qué porcentaje.
// TenantDefault con porcentaje por defecto en cero se comporta como precio manual.
func ResolveProfit(p *entity.Product, m *entity.Mipyme) ResolvedProfit {
	switch p.Profit.Mode {
	case entity.ProfitExplicit:
		return ResolvedProfit{Derived: true, Percentage: p.Profit.Percentage}
	case entity.ProfitTenantDefault:
		if m != nil && m.DefaultProfitPct.IsPositive() {
			return ResolvedProfit{Derived: true, Percentage: m.DefaultProfitPct}
		}
	}
	return ResolvedProfit{}
}

func materialLines(s Sheet) ([]MaterialLine, error) {
	out := make([]MaterialLine, 0, len(s.Recipe))
	for _, it := range s.Recipe {
		if it.Material == nil {
			return nil, &domain.IntegrityError{Entity: "insumo", ID: it.Line.MaterialID, Ref: "receta " + it.Line.ID}
		}
		out = append(out, MaterialLine{
			RecipeLineID: it.Line.ID,
			MaterialID:   it.Material.ID,
			Name:         it.Material.Name,
			Quantity:     it.Line.Quantity,
			WastePct:     it.Line.WastePct,
			CostPerUnit:  it.Material.CostPerUnit,
			Cost:         LineMaterialCost(it.Line.Quantity, it.Material.CostPerUnit, it.Line.WastePct),
		})
	}
	return out, nil
}

func processLines(s Sheet) ([]ProcessLine, error) {
	out := make([]ProcessLine, 0, len(s.Routing))
	for _, it := range s.Routing {
		if it.Process == nil {
			return nil, &domain.IntegrityError{Entity: "proceso", ID: it.Step.ProcessID, Ref: "paso " + it.Step.ID}
		}
		out = append(out, ProcessLine{
			StepID:      it.Step.ID,
			ProcessID:   it.Process.ID,
			Name:        it.Process.Name,
			Minutes:     it.Step.Minutes,
			CostPerHour: it.Process.CostPerHour,
			Cost:        LineProcessCost(it.Step.Minutes, it.Process.CostPerHour),
		})
	}
	return out, nil
}

func sumMaterial(lines []MaterialLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Cost)
	}
	return total
}

func sumProcess(lines []ProcessLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Cost)
	}
	return total
}

// Pricing foto redondeada lista para persistir en el producto.
func (b *Breakdown) Pricing(at time.Time) entity.Pricing {
	return entity.Pricing{
		ProductionCost: Money(b.ProductionCost),
		SalePrice:      Money(b.SalePrice),
		Margin:         Money(b.Margin),
		PriceWithTaxes: Money(b.PriceWithTaxes),
		PricedAt:       at,
	}
}
