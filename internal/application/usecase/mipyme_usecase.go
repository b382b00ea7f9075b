package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// MipymeUseCase alta y configuración de producción del tenant.
type MipymeUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
}

// NewMipymeUseCase construye el caso de uso.
func NewMipymeUseCase(store repository.Store, tx ports.TxRunner, prices Repricer) *MipymeUseCase {
	return &MipymeUseCase{store: store, tx: tx, prices: prices}
}

// Create registra la mipyme. Devuelve domain.ErrDuplicate si el identificador fiscal ya existe.
func (uc *MipymeUseCase) Create(ctx context.Context, in dto.CreateMipymeRequest) (*dto.MipymeResponse, error) {
	if in.Currency == "" {
		in.Currency = entity.CurrencyUSD
	}
	if err := firstErr(
		required("name", in.Name),
		required("fiscal_id", in.FiscalID),
		percentage("default_profit_pct", in.DefaultProfitPct),
		percentage("default_waste_pct", in.DefaultWastePct),
		validateCurrency(in.Currency),
		validateUnits(in.PermittedUnits),
	); err != nil {
		return nil, err
	}
	existing, err := uc.store.Mipymes.GetByFiscalID(ctx, in.FiscalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Mipyme{
		ID:               uuid.New().String(),
		Name:             in.Name,
		FiscalID:         in.FiscalID,
		DefaultProfitPct: in.DefaultProfitPct,
		DefaultWastePct:  in.DefaultWastePct,
		Currency:         in.Currency,
		PermittedUnits:   in.PermittedUnits,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.store.Mipymes.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMipymeResponse(m), nil
}

// Get devuelve la configuración del tenant.
func (uc *MipymeUseCase) Get(ctx context.Context, tenantID string) (*dto.MipymeResponse, error) {
	m, err := uc.store.Mipymes.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMipymeResponse(m), nil
}

// UpdateProductionSettings cambia los valores por defecto. Si cambia el % de
// ganancia por defecto se recalculan los productos con política TenantDefault.
func (uc *MipymeUseCase) UpdateProductionSettings(ctx context.Context, tenantID string, in dto.UpdateProductionSettingsRequest) (*dto.MipymeResponse, error) {
	var out *entity.Mipyme
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		m, err := s.Mipymes.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		profitChanged := false
		if in.DefaultProfitPct != nil {
			if err := percentage("default_profit_pct", *in.DefaultProfitPct); err != nil {
				return err
			}
			profitChanged = !m.DefaultProfitPct.Equal(*in.DefaultProfitPct)
			m.DefaultProfitPct = *in.DefaultProfitPct
		}
		if in.DefaultWastePct != nil {
			if err := percentage("default_waste_pct", *in.DefaultWastePct); err != nil {
				return err
			}
			m.DefaultWastePct = *in.DefaultWastePct
		}
		if in.Currency != nil {
			if err := validateCurrency(*in.Currency); err != nil {
				return err
			}
			m.Currency = *in.Currency
		}
		if in.PermittedUnits != nil {
			if err := validateUnits(*in.PermittedUnits); err != nil {
				return err
			}
			m.PermittedUnits = *in.PermittedUnits
		}
		m.UpdatedAt = time.Now()
		if err := s.Mipymes.Update(ctx, m); err != nil {
			return err
		}
		out = m
		if profitChanged {
			return uc.prices.OnTenantDefaultsChanged(ctx, s, tenantID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMipymeResponse(out), nil
}

func validateCurrency(c string) error {
	if !entity.IsCurrency(c) {
		return domain.NewValidationError("currency", c, "moneda no soportada")
	}
	return nil
}

func validateUnits(units []string) error {
	for _, u := range units {
		if !entity.IsUnitAbbreviation(u) {
			return domain.NewValidationError("permitted_units", u, "unidad no soportada")
		}
	}
	return nil
}

func toMipymeResponse(m *entity.Mipyme) *dto.MipymeResponse {
	units := m.PermittedUnits
	if units == nil {
		units = []string{}
	}
	return &dto.MipymeResponse{
		ID:               m.ID,
		Name:             m.Name,
		FiscalID:         m.FiscalID,
		DefaultProfitPct: m.DefaultProfitPct,
		DefaultWastePct:  m.DefaultWastePct,
		Currency:         m.Currency,
		PermittedUnits:   units,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// decimalPtr copia d para exponerlo como campo opcional.
func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
