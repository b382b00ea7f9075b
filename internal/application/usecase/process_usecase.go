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

// ProcessUseCase registro de procesos productivos (costo por hora).
type ProcessUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
}

// NewProcessUseCase construye el caso de uso.
func NewProcessUseCase(store repository.Store, tx ports.TxRunner, prices Repricer) *ProcessUseCase {
	return &ProcessUseCase{store: store, tx: tx, prices: prices}
}

// Create da de alta un proceso.
func (uc *ProcessUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProcessRequest) (*dto.ProcessResponse, error) {
	if err := firstErr(required("name", in.Name), nonNegative("cost_per_hour", in.CostPerHour)); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Process{
		ID:          uuid.New().String(),
		MipymeID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		CostPerHour: in.CostPerHour,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.store.Processes.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProcessResponse(p), nil
}

// Get obtiene un proceso de la mipyme.
func (uc *ProcessUseCase) Get(ctx context.Context, tenantID, id string) (*dto.ProcessResponse, error) {
	p, err := uc.store.Processes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProcessResponse(p), nil
}

// List lista procesos con paginación.
func (uc *ProcessUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.ProcessListResponse, error) {
	list, err := uc.store.Processes.ListByMipyme(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProcessResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProcessResponse(p))
	}
	return &dto.ProcessListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita un proceso; un cambio de costo por hora recalcula los productos que lo usan.
func (uc *ProcessUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProcessRequest) (*dto.ProcessResponse, error) {
	var out *entity.Process
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Processes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		costChanged := false
		if in.Name != nil {
			if err := required("name", *in.Name); err != nil {
				return err
			}
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.CostPerHour != nil {
			if err := nonNegative("cost_per_hour", *in.CostPerHour); err != nil {
				return err
			}
			costChanged = !p.CostPerHour.Equal(*in.CostPerHour)
			p.CostPerHour = *in.CostPerHour
		}
		p.UpdatedAt = time.Now()
		if err := s.Processes.Update(ctx, p); err != nil {
			return err
		}
		out = p
		if costChanged {
			return uc.prices.OnProcessChanged(ctx, s, tenantID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProcessResponse(out), nil
}

// Delete borra el proceso y sus pasos de producción; recalcula los productos afectados.
func (uc *ProcessUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Processes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		affected, err := s.Routings.ProductIDsByProcess(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Processes.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return uc.prices.OnProcessRemoved(ctx, s, tenantID, affected)
	})
}

func toProcessResponse(p *entity.Process) *dto.ProcessResponse {
	return &dto.ProcessResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CostPerHour: p.CostPerHour,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
