package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta (ledger de solo agregado). Total se deriva de los ítems.
type Sale struct {
	ID        string
	MipymeID  string
	CreatedBy string
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []SaleItem
}

// SaleItem línea de venta. UnitPrice es la foto del precio al momento de vender.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Recalculate fija Subtotal = Quantity × UnitPrice. Se llama antes de cada guardado.
func (i *SaleItem) Recalculate() {
	i.Subtotal = decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice).Round(2)
}

// RecalculateTotal suma los subtotales de los ítems.
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for i := range s.Items {
		s.Items[i].Recalculate()
		total = total.Add(s.Items[i].Subtotal)
	}
	s.Total = total
}
