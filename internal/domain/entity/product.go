package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitMode discrimina cómo se obtiene el precio de venta de un producto.
type ProfitMode string

const (
	ProfitManual        ProfitMode = "manual"         // precio ingresado por el usuario
	ProfitExplicit      ProfitMode = "explicit"       // % propio del producto
	ProfitTenantDefault ProfitMode = "tenant_default" // % por defecto de la mipyme
)

// ProfitPolicy variante etiquetada; Percentage solo aplica a ProfitExplicit.
type ProfitPolicy struct {
	Mode       ProfitMode
	Percentage decimal.Decimal
}

func ManualPrice() ProfitPolicy { return ProfitPolicy{Mode: ProfitManual} }

func ExplicitProfit(pct decimal.Decimal) ProfitPolicy {
	return ProfitPolicy{Mode: ProfitExplicit, Percentage: pct}
}

func UseTenantDefault() ProfitPolicy { return ProfitPolicy{Mode: ProfitTenantDefault} }

// IsValid valida el modo.
func (p ProfitPolicy) IsValid() bool {
	switch p.Mode {
	case ProfitManual, ProfitExplicit, ProfitTenantDefault:
		return true
	}
	return false
}

// PhysicalAttributes atributos opcionales validados contra Standards.
type PhysicalAttributes struct {
	Weight       *decimal.Decimal
	Length       *decimal.Decimal
	Width        *decimal.Decimal
	Height       *decimal.Decimal
	Presentation string
}

// Product producto terminado de la mipyme. El nombre es único por mipyme.
// SalePrice es el precio manual o el último derivado; ProductionCost, Margin y
// PriceWithTaxes son la foto guardada por el recalculador.
type Product struct {
	ID             string
	MipymeID       string
	Name           string
	Description    string
	Profit         ProfitPolicy
	SalePrice      decimal.Decimal
	Stock          int64
	Physical       PhysicalAttributes
	ProductionCost decimal.Decimal
	Margin         decimal.Decimal
	PriceWithTaxes decimal.Decimal
	PricedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Pricing foto de precios persistida por el recalculador.
type Pricing struct {
	ProductionCost decimal.Decimal
	SalePrice      decimal.Decimal
	Margin         decimal.Decimal
	PriceWithTaxes decimal.Decimal
	PricedAt       time.Time
}

// Apply copia la foto sobre el producto.
func (p *Product) Apply(pr Pricing) {
	p.ProductionCost = pr.ProductionCost
	p.SalePrice = pr.SalePrice
	p.Margin = pr.Margin
	p.PriceWithTaxes = pr.PriceWithTaxes
	at := pr.PricedAt
	p.PricedAt = &at
}
