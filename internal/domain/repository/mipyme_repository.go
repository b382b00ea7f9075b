package repository

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// MipymeRepository puerto de persistencia para el tenant y su configuración.
type MipymeRepository interface {
	Create(ctx context.Context, m *entity.Mipyme) error
	GetByID(ctx context.Context, id string) (*entity.Mipyme, error)
	GetByFiscalID(ctx context.Context, fiscalID string) (*entity.Mipyme, error)
	Update(ctx context.Context, m *entity.Mipyme) error
	ListIDs(ctx context.Context) ([]string, error)
}

// UnitRepository unidades de medida globales.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.UnitOfMeasure) error
	GetByID(ctx context.Context, id string) (*entity.UnitOfMeasure, error)
	List(ctx context.Context) ([]*entity.UnitOfMeasure, error)
}
