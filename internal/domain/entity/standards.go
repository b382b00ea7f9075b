package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
)

// Bound rango cerrado opcional; nil en un extremo = sin límite.
type Bound struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Standards límites físicos opcionales de un producto (uno a uno).
type Standards struct {
	ProductID string
	Weight    Bound
	Length    Bound
	Width     Bound
	Height    Bound
}

// Validate exige min <= max en cada dimensión.
func (s *Standards) Validate() error {
	for _, b := range s.bounds() {
		if b.bound.Min != nil && b.bound.Max != nil && b.bound.Min.GreaterThan(*b.bound.Max) {
			return domain.NewValidationError(b.field, b.bound.Min.String(), "mínimo mayor que máximo")
		}
		if b.bound.Min != nil && b.bound.Min.IsNegative() {
			return domain.NewValidationError(b.field, b.bound.Min.String(), "no puede ser negativo")
		}
	}
	return nil
}

// Check devuelve un ValidationError con el primer atributo fuera de rango.
func (s *Standards) Check(attrs PhysicalAttributes) error {
	values := map[string]*decimal.Decimal{
		"weight": attrs.Weight,
		"length": attrs.Length,
		"width":  attrs.Width,
		"height": attrs.Height,
	}
	for _, b := range s.bounds() {
		v := values[b.field]
		if v == nil {
			continue
		}
		if b.bound.Min != nil && v.LessThan(*b.bound.Min) {
			return domain.NewValidationError(b.field, v.String(), "menor que el mínimo "+b.bound.Min.String())
		}
		if b.bound.Max != nil && v.GreaterThan(*b.bound.Max) {
			return domain.NewValidationError(b.field, v.String(), "mayor que el máximo "+b.bound.Max.String())
		}
	}
	return nil
}

type namedBound struct {
	field string
	bound Bound
}

func (s *Standards) bounds() []namedBound {
	return []namedBound{
		{"weight", s.Weight},
		{"length", s.Length},
		{"width", s.Width},
		{"height", s.Height},
	}
}
