package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/inventory"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// MaterialUseCase registro de insumos de la mipyme.
type MaterialUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
	log    zerolog.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(store repository.Store, tx ports.TxRunner, prices Repricer, log zerolog.Logger) *MaterialUseCase {
	return &MaterialUseCase{store: store, tx: tx, prices: prices, log: log}
}

// Create da de alta un insumo. La unidad debe existir y estar habilitada para la mipyme.
func (uc *MaterialUseCase) Create(ctx context.Context, tenantID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := firstErr(
		required("name", in.Name),
		nonNegative("cost_per_unit", in.CostPerUnit),
		nonNegative("stock", in.Stock),
	); err != nil {
		return nil, err
	}
	if err := uc.checkUnit(ctx, uc.store, tenantID, in.UnitID); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Material{
		ID:          uuid.New().String(),
		MipymeID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		UnitID:      in.UnitID,
		CostPerUnit: in.CostPerUnit,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.store.Materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Get obtiene un insumo de la mipyme.
func (uc *MaterialUseCase) Get(ctx context.Context, tenantID, id string) (*dto.MaterialResponse, error) {
	m, err := uc.store.Materials.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// List lista insumos con paginación.
func (uc *MaterialUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.store.Materials.ListByMipyme(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita un insumo bajo bloqueo de fila. Un cambio de costo recalcula los
// productos que lo usan.
func (uc *MaterialUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	var out *entity.Material
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		m, _, err := lockMaterial(ctx, s, tenantID, id)
		if err != nil {
			return err
		}
		costChanged := false
		if in.Name != nil {
			if err := required("name", *in.Name); err != nil {
				return err
			}
			m.Name = *in.Name
		}
		if in.Description != nil {
			m.Description = *in.Description
		}
		if in.UnitID != nil && *in.UnitID != m.UnitID {
			if err := uc.checkUnit(ctx, s, tenantID, *in.UnitID); err != nil {
				return err
			}
			m.UnitID = *in.UnitID
		}
		if in.CostPerUnit != nil {
			if err := nonNegative("cost_per_unit", *in.CostPerUnit); err != nil {
				return err
			}
			costChanged = !m.CostPerUnit.Equal(*in.CostPerUnit)
			m.CostPerUnit = *in.CostPerUnit
		}
		if in.Stock != nil {
			if err := nonNegative("stock", *in.Stock); err != nil {
				return err
			}
			m.Stock = *in.Stock
			if err := s.Materials.UpdateStock(ctx, id, m.Stock); err != nil {
				return err
			}
		}
		m.UpdatedAt = time.Now()
		if err := s.Materials.Update(ctx, m); err != nil {
			return err
		}
		out = m
		if costChanged {
			return uc.prices.OnMaterialChanged(ctx, s, tenantID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(out), nil
}

// Delete borra el insumo; sus líneas de receta caen en cascada y los productos
// que lo usaban se recalculan.
func (uc *MaterialUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		_, affected, err := lockMaterial(ctx, s, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.Materials.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return uc.prices.OnMaterialRemoved(ctx, s, tenantID, affected)
	})
}

// Restock suma una compra al stock bajo bloqueo de fila. Si llega unitCost el
// costo por unidad pasa a ser el promedio ponderado.
func (uc *MaterialUseCase) Restock(ctx context.Context, tenantID, id string, in dto.RestockRequest) (*dto.MaterialResponse, error) {
	if err := positive("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if in.UnitCost != nil {
		if err := nonNegative("unit_cost", *in.UnitCost); err != nil {
			return nil, err
		}
	}
	var out *entity.Material
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		m, _, err := lockMaterial(ctx, s, tenantID, id)
		if err != nil {
			return err
		}
		costChanged := false
		if in.UnitCost != nil {
			cost := inventory.WeightedAverageCost(m.Stock, m.CostPerUnit, in.Quantity, *in.UnitCost).Round(2)
			costChanged = !cost.Equal(m.CostPerUnit)
			m.CostPerUnit = cost
		}
		m.Stock = m.Stock.Add(in.Quantity)
		m.UpdatedAt = time.Now()
		if err := s.Materials.UpdateStock(ctx, id, m.Stock); err != nil {
			return err
		}
		if err := s.Materials.Update(ctx, m); err != nil {
			return err
		}
		out = m
		if costChanged {
			return uc.prices.OnMaterialChanged(ctx, s, tenantID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("material_id", id).
		Str("quantity", in.Quantity.String()).
		Str("stock", out.Stock.String()).
		Msg("insumo repuesto")
	return toMaterialResponse(out), nil
}

func (uc *MaterialUseCase) checkUnit(ctx context.Context, s repository.Store, tenantID, unitID string) error {
	if err := required("unit_id", unitID); err != nil {
		return err
	}
	unit, err := s.Units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.NewValidationError("unit_id", unitID, "unidad inexistente")
	}
	mipyme, err := s.Mipymes.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if mipyme == nil {
		return domain.ErrNotFound
	}
	if !mipyme.AllowsUnit(unit.Abbreviation) {
		return domain.NewValidationError("unit_id", unit.Abbreviation, "unidad no habilitada para la mipyme")
	}
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitID:      m.UnitID,
		CostPerUnit: m.CostPerUnit,
		Stock:       m.Stock,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// lockMaterial bloquea primero los productos que usan el insumo y después el
// insumo, el mismo orden que siguen lotes y ventas.
func lockMaterial(ctx context.Context, s repository.Store, tenantID, id string) (*entity.Material, []string, error) {
	affected, err := s.Recipes.ProductIDsByMaterial(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(affected) > 0 {
		if _, err := s.Products.GetForUpdate(ctx, tenantID, affected); err != nil {
			return nil, nil, err
		}
	}
	locked, err := s.Materials.GetForUpdate(ctx, tenantID, []string{id})
	if err != nil {
		return nil, nil, err
	}
	if len(locked) == 0 {
		return nil, nil, domain.ErrNotFound
	}
	return locked[0], affected, nil
}
