package repository

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// RecipeRepository líneas de formulación. AddLine devuelve domain.ErrDuplicate
// si ya existe la pareja (producto, insumo).
type RecipeRepository interface {
	AddLine(ctx context.Context, l *entity.RecipeLine) error
	GetLine(ctx context.Context, productID, id string) (*entity.RecipeLine, error)
	UpdateLine(ctx context.Context, l *entity.RecipeLine) error
	DeleteLine(ctx context.Context, productID, id string) error
	ListLines(ctx context.Context, productID string) ([]*entity.RecipeLine, error)
	ProductIDsByMaterial(ctx context.Context, materialID string) ([]string, error)
}

// RoutingRepository pasos de producción, únicos por (producto, proceso).
type RoutingRepository interface {
	AddStep(ctx context.Context, s *entity.RoutingStep) error
	GetStep(ctx context.Context, productID, id string) (*entity.RoutingStep, error)
	UpdateStep(ctx context.Context, s *entity.RoutingStep) error
	DeleteStep(ctx context.Context, productID, id string) error
	ListSteps(ctx context.Context, productID string) ([]*entity.RoutingStep, error)
	ProductIDsByProcess(ctx context.Context, processID string) ([]string, error)
}
