package usecase

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// Repricer recálculo sincrónico de la foto de precios (lo implementa pricing.Propagator).
// Recibe el Store de la transacción en curso.
type Repricer interface {
	OnRecipeChanged(ctx context.Context, s repository.Store, tenantID, productID string) error
	OnRoutingChanged(ctx context.Context, s repository.Store, tenantID, productID string) error
	OnProductChanged(ctx context.Context, s repository.Store, tenantID, productID string) error
	OnTaxChanged(ctx context.Context, s repository.Store, tenantID, taxID string) error
	OnTaxRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error
	OnMaterialChanged(ctx context.Context, s repository.Store, tenantID, materialID string) error
	OnMaterialRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error
	OnProcessChanged(ctx context.Context, s repository.Store, tenantID, processID string) error
	OnProcessRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error
	OnTenantDefaultsChanged(ctx context.Context, s repository.Store, tenantID string) error
}
