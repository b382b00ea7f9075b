package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas soportadas como moneda por defecto de la mipyme.
const (
	CurrencyUSD = "USD"
	CurrencyNIO = "NIO"
	CurrencyHNL = "HNL"
	CurrencyCRC = "CRC"
)

// UnitAbbreviations catálogo de abreviaturas que una mipyme puede habilitar.
var UnitAbbreviations = []string{"kg", "g", "l", "ml", "un", "m", "cm", "m2", "m3"}

// Mipyme es el tenant dueño de todo el catálogo, las recetas y las ventas.
// Guarda los valores por defecto que consume el motor de costos.
type Mipyme struct {
	ID               string
	Name             string
	FiscalID         string
	DefaultProfitPct decimal.Decimal // 0 = sin margen por defecto (precio manual)
	DefaultWastePct  decimal.Decimal
	Currency         string
	PermittedUnits   []string // vacío = cualquier unidad
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AllowsUnit indica si la abreviatura está habilitada para la mipyme.
func (m *Mipyme) AllowsUnit(abbreviation string) bool {
	if len(m.PermittedUnits) == 0 {
		return true
	}
	for _, u := range m.PermittedUnits {
		if u == abbreviation {
			return true
		}
	}
	return false
}

// IsCurrency verifica que c sea una de las monedas soportadas.
func IsCurrency(c string) bool {
	switch c {
	case CurrencyUSD, CurrencyNIO, CurrencyHNL, CurrencyCRC:
		return true
	}
	return false
}

// IsUnitAbbreviation verifica que abbr pertenezca al catálogo de unidades.
func IsUnitAbbreviation(abbr string) bool {
	for _, u := range UnitAbbreviations {
		if u == abbr {
			return true
		}
	}
	return false
}
