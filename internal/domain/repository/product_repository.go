package repository

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Stock y la foto de precios solo se escriben por sus métodos dedicados.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, mipymeID, id string) (*entity.Product, error)
	GetByName(ctx context.Context, mipymeID, name string) (*entity.Product, error)
	// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de id.
	GetForUpdate(ctx context.Context, mipymeID string, ids []string) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int64) error
	UpdatePricing(ctx context.Context, id string, pricing entity.Pricing) error
	ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Product, error)
	ListIDs(ctx context.Context, mipymeID string) ([]string, error)
	ListIDsByProfitMode(ctx context.Context, mipymeID string, mode entity.ProfitMode) ([]string, error)
	Delete(ctx context.Context, mipymeID, id string) error

	GetStandards(ctx context.Context, productID string) (*entity.Standards, error)
	SaveStandards(ctx context.Context, s *entity.Standards) error
}
