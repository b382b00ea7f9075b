package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// RecipeUseCase formulación (insumos por unidad) y ruta de producción (procesos)
// de un producto. Cada mutación recalcula el producto en la misma transacción.
type RecipeUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(store repository.Store, tx ports.TxRunner, prices Repricer) *RecipeUseCase {
	return &RecipeUseCase{store: store, tx: tx, prices: prices}
}

// ListRecipe líneas de formulación del producto.
func (uc *RecipeUseCase) ListRecipe(ctx context.Context, tenantID, productID string) ([]dto.RecipeLineResponse, error) {
	if err := uc.ownProduct(ctx, uc.store, tenantID, productID); err != nil {
		return nil, err
	}
	lines, err := uc.store.Recipes.ListLines(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, toRecipeLineResponse(l))
	}
	return out, nil
}

// AddRecipeLine agrega un insumo. Merma nil => merma por defecto de la mipyme.
// Pareja (producto, insumo) repetida => domain.ErrDuplicate sin escribir nada.
func (uc *RecipeUseCase) AddRecipeLine(ctx context.Context, tenantID, productID string, in dto.AddRecipeLineRequest) (*dto.RecipeLineResponse, error) {
	if err := firstErr(required("material_id", in.MaterialID), positive("quantity", in.Quantity)); err != nil {
		return nil, err
	}
	if in.WastePct != nil {
		if err := percentage("waste_pct", *in.WastePct); err != nil {
			return nil, err
		}
	}
	var line *entity.RecipeLine
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		m, err := s.Materials.GetByID(ctx, tenantID, in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		waste := in.WastePct
		if waste == nil {
			mipyme, err := s.Mipymes.GetByID(ctx, tenantID)
			if err != nil {
				return err
			}
			if mipyme == nil {
				return domain.ErrNotFound
			}
			waste = decimalPtr(mipyme.DefaultWastePct)
		}
		line = &entity.RecipeLine{
			ID:         uuid.New().String(),
			ProductID:  productID,
			MaterialID: in.MaterialID,
			Quantity:   in.Quantity,
			WastePct:   *waste,
		}
		if err := s.Recipes.AddLine(ctx, line); err != nil {
			return err
		}
		return uc.prices.OnRecipeChanged(ctx, s, tenantID, productID)
	})
	if err != nil {
		return nil, err
	}
	out := toRecipeLineResponse(line)
	return &out, nil
}

// UpdateRecipeLine cambia cantidad y/o merma de una línea.
func (uc *RecipeUseCase) UpdateRecipeLine(ctx context.Context, tenantID, productID, lineID string, in dto.UpdateRecipeLineRequest) (*dto.RecipeLineResponse, error) {
	if in.Quantity != nil {
		if err := positive("quantity", *in.Quantity); err != nil {
			return nil, err
		}
	}
	if in.WastePct != nil {
		if err := percentage("waste_pct", *in.WastePct); err != nil {
			return nil, err
		}
	}
	var line *entity.RecipeLine
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		l, err := s.Recipes.GetLine(ctx, productID, lineID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if in.Quantity != nil {
			l.Quantity = *in.Quantity
		}
		if in.WastePct != nil {
			l.WastePct = *in.WastePct
		}
		if err := s.Recipes.UpdateLine(ctx, l); err != nil {
			return err
		}
		line = l
		return uc.prices.OnRecipeChanged(ctx, s, tenantID, productID)
	})
	if err != nil {
		return nil, err
	}
	out := toRecipeLineResponse(line)
	return &out, nil
}

// RemoveRecipeLine quita una línea de la formulación.
func (uc *RecipeUseCase) RemoveRecipeLine(ctx context.Context, tenantID, productID, lineID string) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		if err := s.Recipes.DeleteLine(ctx, productID, lineID); err != nil {
			return err
		}
		return uc.prices.OnRecipeChanged(ctx, s, tenantID, productID)
	})
}

// ListRouting pasos de producción del producto.
func (uc *RecipeUseCase) ListRouting(ctx context.Context, tenantID, productID string) ([]dto.RoutingStepResponse, error) {
	if err := uc.ownProduct(ctx, uc.store, tenantID, productID); err != nil {
		return nil, err
	}
	steps, err := uc.store.Routings.ListSteps(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoutingStepResponse, 0, len(steps))
	for _, st := range steps {
		out = append(out, toRoutingStepResponse(st))
	}
	return out, nil
}

// AddRoutingStep agrega un proceso con sus minutos por unidad.
// Pareja (producto, proceso) repetida => domain.ErrDuplicate.
func (uc *RecipeUseCase) AddRoutingStep(ctx context.Context, tenantID, productID string, in dto.AddRoutingStepRequest) (*dto.RoutingStepResponse, error) {
	if err := firstErr(required("process_id", in.ProcessID), positive("minutes", in.Minutes)); err != nil {
		return nil, err
	}
	var step *entity.RoutingStep
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		p, err := s.Processes.GetByID(ctx, tenantID, in.ProcessID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		step = &entity.RoutingStep{
			ID:        uuid.New().String(),
			ProductID: productID,
			ProcessID: in.ProcessID,
			Minutes:   in.Minutes,
		}
		if err := s.Routings.AddStep(ctx, step); err != nil {
			return err
		}
		return uc.prices.OnRoutingChanged(ctx, s, tenantID, productID)
	})
	if err != nil {
		return nil, err
	}
	out := toRoutingStepResponse(step)
	return &out, nil
}

// UpdateRoutingStep cambia los minutos de un paso.
func (uc *RecipeUseCase) UpdateRoutingStep(ctx context.Context, tenantID, productID, stepID string, in dto.UpdateRoutingStepRequest) (*dto.RoutingStepResponse, error) {
	if err := positive("minutes", in.Minutes); err != nil {
		return nil, err
	}
	var step *entity.RoutingStep
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		st, err := s.Routings.GetStep(ctx, productID, stepID)
		if err != nil {
			return err
		}
		if st == nil {
			return domain.ErrNotFound
		}
		st.Minutes = in.Minutes
		if err := s.Routings.UpdateStep(ctx, st); err != nil {
			return err
		}
		step = st
		return uc.prices.OnRoutingChanged(ctx, s, tenantID, productID)
	})
	if err != nil {
		return nil, err
	}
	out := toRoutingStepResponse(step)
	return &out, nil
}

// RemoveRoutingStep quita un paso de la ruta.
func (uc *RecipeUseCase) RemoveRoutingStep(ctx context.Context, tenantID, productID, stepID string) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.ownProduct(ctx, s, tenantID, productID); err != nil {
			return err
		}
		if err := s.Routings.DeleteStep(ctx, productID, stepID); err != nil {
			return err
		}
		return uc.prices.OnRoutingChanged(ctx, s, tenantID, productID)
	})
}

// ownProduct verifica que el producto exista y pertenezca a la mipyme.
func (uc *RecipeUseCase) ownProduct(ctx context.Context, s repository.Store, tenantID, productID string) error {
	p, err := s.Products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toRecipeLineResponse(l *entity.RecipeLine) dto.RecipeLineResponse {
	return dto.RecipeLineResponse{
		ID:         l.ID,
		ProductID:  l.ProductID,
		MaterialID: l.MaterialID,
		Quantity:   l.Quantity,
		WastePct:   l.WastePct,
	}
}

func toRoutingStepResponse(s *entity.RoutingStep) dto.RoutingStepResponse {
	return dto.RoutingStepResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		ProcessID: s.ProcessID,
		Minutes:   s.Minutes,
	}
}
