package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// MaterialRepository puerto de persistencia para insumos. Todas las lecturas filtran por mipyme.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, mipymeID, id string) (*entity.Material, error)
	GetByIDs(ctx context.Context, mipymeID string, ids []string) ([]*entity.Material, error)
	// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de id.
	GetForUpdate(ctx context.Context, mipymeID string, ids []string) ([]*entity.Material, error)
	// Update no toca Stock; las existencias solo cambian por UpdateStock.
	Update(ctx context.Context, m *entity.Material) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Material, error)
	Delete(ctx context.Context, mipymeID, id string) error
}

// ProcessRepository puerto de persistencia para procesos.
type ProcessRepository interface {
	Create(ctx context.Context, p *entity.Process) error
	GetByID(ctx context.Context, mipymeID, id string) (*entity.Process, error)
	GetByIDs(ctx context.Context, mipymeID string, ids []string) ([]*entity.Process, error)
	Update(ctx context.Context, p *entity.Process) error
	ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Process, error)
	Delete(ctx context.Context, mipymeID, id string) error
}
