package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIntegrity         = errors.New("falla de integridad referencial")
)

// ValidationError identifica el campo y el valor rechazado.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// NewValidationError construye un error de validación para field.
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: fmt.Sprint(value), Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// StockKind indica qué tipo de fila quedó corta de existencias.
type StockKind string

const (
	StockMaterial StockKind = "material"
	StockProduct  StockKind = "product"
)

// Shortfall describe un faltante concreto: disponible vs requerido.
type Shortfall struct {
	Kind      StockKind
	ID        string
	Name      string
	Available decimal.Decimal
	Required  decimal.Decimal
}

// Missing devuelve required - available.
func (s Shortfall) Missing() decimal.Decimal {
	return s.Required.Sub(s.Available)
}

// InsufficientStockError agrupa todos los faltantes detectados antes de mutar.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s %q: disponible %s, requerido %s",
			s.Kind, s.Name, s.Available.String(), s.Required.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IntegrityError indica una referencia rota (ej. receta apuntando a un insumo borrado).
type IntegrityError struct {
	Entity string
	ID     string
	Ref    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s %s referenciado por %s", ErrIntegrity.Error(), e.Entity, e.ID, e.Ref)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }
