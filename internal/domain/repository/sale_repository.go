package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// SaleFilter rango opcional de fechas y paginación del historial.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SaleRepository ledger de ventas; solo se agrega, nunca se edita.
type SaleRepository interface {
	// Create persiste cabecera e ítems.
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, mipymeID, id string) (*entity.Sale, error)
	List(ctx context.Context, mipymeID string, f SaleFilter) ([]*entity.Sale, error)
}
