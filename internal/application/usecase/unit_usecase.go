package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// UnitUseCase catálogo global de unidades de medida.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create agrega una unidad. Nombre duplicado => domain.ErrDuplicate.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if err := firstErr(required("name", in.Name), required("abbreviation", in.Abbreviation)); err != nil {
		return nil, err
	}
	u := &entity.UnitOfMeasure{ID: uuid.New().String(), Name: in.Name, Abbreviation: in.Abbreviation}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

// List devuelve todas las unidades ordenadas por nombre.
func (uc *UnitUseCase) List(ctx context.Context) ([]dto.UnitResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

func toUnitResponse(u *entity.UnitOfMeasure) *dto.UnitResponse {
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, Abbreviation: u.Abbreviation}
}
