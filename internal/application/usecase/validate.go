package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// twoDecimals rechaza valores con más de 2 decimales significativos.
func twoDecimals(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return domain.NewValidationError(field, d.String(), "máximo 2 decimales")
	}
	return nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.NewValidationError(field, d.String(), "no puede ser negativo")
	}
	return twoDecimals(field, d)
}

func positive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return domain.NewValidationError(field, d.String(), "debe ser mayor que cero")
	}
	return twoDecimals(field, d)
}

// percentage exige 0 <= d <= 100 con 2 decimales.
func percentage(field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return domain.NewValidationError(field, d.String(), "debe estar entre 0 y 100")
	}
	return twoDecimals(field, d)
}

func required(field, v string) error {
	if v == "" {
		return domain.NewValidationError(field, "", "requerido")
	}
	return nil
}

// firstErr devuelve el primer error no nil.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
