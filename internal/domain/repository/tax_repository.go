package repository

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// TaxRepository impuestos y su asociación muchos a muchos con productos.
type TaxRepository interface {
	Create(ctx context.Context, t *entity.Tax) error
	GetByID(ctx context.Context, mipymeID, id string) (*entity.Tax, error)
	Update(ctx context.Context, t *entity.Tax) error
	Delete(ctx context.Context, mipymeID, id string) error
	ListByMipyme(ctx context.Context, mipymeID string) ([]*entity.Tax, error)
	ListByProduct(ctx context.Context, mipymeID, productID string) ([]*entity.Tax, error)
	Assign(ctx context.Context, productID, taxID string) error
	Unassign(ctx context.Context, productID, taxID string) error
	ProductIDs(ctx context.Context, mipymeID, taxID string) ([]string, error)
}
