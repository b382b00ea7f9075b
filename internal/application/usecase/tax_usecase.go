package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// TaxUseCase impuestos porcentuales y su asignación a productos. Toda mutación
// recalcula los productos que referencian el impuesto.
type TaxUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
}

// NewTaxUseCase construye el caso de uso.
func NewTaxUseCase(store repository.Store, tx ports.TxRunner, prices Repricer) *TaxUseCase {
	return &TaxUseCase{store: store, tx: tx, prices: prices}
}

// Create da de alta un impuesto; activo salvo que se indique lo contrario.
func (uc *TaxUseCase) Create(ctx context.Context, tenantID string, in dto.CreateTaxRequest) (*dto.TaxResponse, error) {
	if err := firstErr(required("name", in.Name), percentage("percentage", in.Percentage)); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	t := &entity.Tax{
		ID:         uuid.New().String(),
		MipymeID:   tenantID,
		Name:       in.Name,
		Percentage: in.Percentage,
		Active:     active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.store.Taxes.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTaxResponse(t), nil
}

// Get obtiene un impuesto de la mipyme.
func (uc *TaxUseCase) Get(ctx context.Context, tenantID, id string) (*dto.TaxResponse, error) {
	t, err := uc.store.Taxes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTaxResponse(t), nil
}

// List devuelve los impuestos de la mipyme.
func (uc *TaxUseCase) List(ctx context.Context, tenantID string) ([]dto.TaxResponse, error) {
	list, err := uc.store.Taxes.ListByMipyme(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaxResponse(t))
	}
	return out, nil
}

// Update edita nombre, porcentaje o estado.
func (uc *TaxUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateTaxRequest) (*dto.TaxResponse, error) {
	return uc.mutate(ctx, tenantID, id, func(t *entity.Tax) error {
		if in.Name != nil {
			if err := required("name", *in.Name); err != nil {
				return err
			}
			t.Name = *in.Name
		}
		if in.Percentage != nil {
			if err := percentage("percentage", *in.Percentage); err != nil {
				return err
			}
			t.Percentage = *in.Percentage
		}
		if in.Active != nil {
			t.Active = *in.Active
		}
		return nil
	})
}

// SetActive activa o desactiva el impuesto.
func (uc *TaxUseCase) SetActive(ctx context.Context, tenantID, id string, active bool) (*dto.TaxResponse, error) {
	return uc.mutate(ctx, tenantID, id, func(t *entity.Tax) error {
		t.Active = active
		return nil
	})
}

func (uc *TaxUseCase) mutate(ctx context.Context, tenantID, id string, apply func(*entity.Tax) error) (*dto.TaxResponse, error) {
	var out *entity.Tax
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Taxes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if err := apply(t); err != nil {
			return err
		}
		t.UpdatedAt = time.Now()
		if err := s.Taxes.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return uc.prices.OnTaxChanged(ctx, s, tenantID, id)
	})
	if err != nil {
		return nil, err
	}
	return toTaxResponse(out), nil
}

// Delete borra el impuesto. Los productos que lo tenían se capturan antes del borrado.
func (uc *TaxUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Taxes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		affected, err := s.Taxes.ProductIDs(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.Taxes.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return uc.prices.OnTaxRemoved(ctx, s, tenantID, affected)
	})
}

// Assign asocia el impuesto al producto (idempotente).
func (uc *TaxUseCase) Assign(ctx context.Context, tenantID, productID, taxID string) error {
	return uc.link(ctx, tenantID, productID, taxID, func(s repository.Store) error {
		return s.Taxes.Assign(ctx, productID, taxID)
	})
}

// Unassign quita el impuesto del producto.
func (uc *TaxUseCase) Unassign(ctx context.Context, tenantID, productID, taxID string) error {
	return uc.link(ctx, tenantID, productID, taxID, func(s repository.Store) error {
		return s.Taxes.Unassign(ctx, productID, taxID)
	})
}

// ListByProduct impuestos asignados a un producto.
func (uc *TaxUseCase) ListByProduct(ctx context.Context, tenantID, productID string) ([]dto.TaxResponse, error) {
	p, err := uc.store.Products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.store.Taxes.ListByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaxResponse(t))
	}
	return out, nil
}

func (uc *TaxUseCase) link(ctx context.Context, tenantID, productID, taxID string, op func(repository.Store) error) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Products.GetByID(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		t, err := s.Taxes.GetByID(ctx, tenantID, taxID)
		if err != nil {
			return err
		}
		if p == nil || t == nil {
			return domain.ErrNotFound
		}
		if err := op(s); err != nil {
			return err
		}
		return uc.prices.OnProductChanged(ctx, s, tenantID, productID)
	})
}

func toTaxResponse(t *entity.Tax) *dto.TaxResponse {
	return &dto.TaxResponse{
		ID:         t.ID,
		Name:       t.Name,
		Percentage: t.Percentage,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
