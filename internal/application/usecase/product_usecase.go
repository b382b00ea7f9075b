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

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía lotes y ventas;
// la foto de precios la mantiene el recalculador.
type ProductUseCase struct {
	store  repository.Store
	tx     ports.TxRunner
	prices Repricer
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store, tx ports.TxRunner, prices Repricer) *ProductUseCase {
	return &ProductUseCase{store: store, tx: tx, prices: prices}
}

// Create crea un producto y calcula su primera foto de precios.
// Devuelve domain.ErrDuplicate si la mipyme ya tiene un producto con ese nombre.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", in.Stock, "no puede ser negativo")
	}
	policy, salePrice, err := resolvePolicy(in.ProfitMode, in.ProfitPct, in.SalePrice)
	if err != nil {
		return nil, err
	}
	attrs := entity.PhysicalAttributes{
		Weight:       in.Weight,
		Length:       in.Length,
		Width:        in.Width,
		Height:       in.Height,
		Presentation: in.Presentation,
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		MipymeID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		Profit:      policy,
		SalePrice:   salePrice,
		Stock:       in.Stock,
		Physical:    attrs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var out *entity.Product
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		m, err := s.Mipymes.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		existing, err := s.Products.GetByName(ctx, tenantID, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := s.Products.Create(ctx, p); err != nil {
			return err
		}
		if err := uc.prices.OnProductChanged(ctx, s, tenantID, p.ID); err != nil {
			return err
		}
		out, err = s.Products.GetByID(ctx, tenantID, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Get obtiene un producto por ID dentro de la mipyme.
func (uc *ProductUseCase) Get(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	p, err := uc.store.Products.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos de la mipyme con paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.store.Products.ListByMipyme(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto. No permite modificar Stock ni la foto de precios;
// los atributos físicos se validan contra los estándares vigentes.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Products.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil && *in.Name != p.Name {
			if err := required("name", *in.Name); err != nil {
				return err
			}
			existing, err := s.Products.GetByName(ctx, tenantID, *in.Name)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicate
			}
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.ProfitMode != nil || in.ProfitPct != nil || in.SalePrice != nil {
			mode := string(p.Profit.Mode)
			if in.ProfitMode != nil {
				mode = *in.ProfitMode
			}
			pct := in.ProfitPct
			if pct == nil && entity.ProfitMode(mode) == entity.ProfitExplicit && p.Profit.Mode == entity.ProfitExplicit {
				pct = decimalPtr(p.Profit.Percentage)
			}
			price := in.SalePrice
			if price == nil {
				price = decimalPtr(p.SalePrice)
			}
			policy, salePrice, err := resolvePolicy(mode, pct, price)
			if err != nil {
				return err
			}
			p.Profit = policy
			p.SalePrice = salePrice
		}
		attrsChanged := false
		if in.Weight != nil {
			p.Physical.Weight, attrsChanged = in.Weight, true
		}
		if in.Length != nil {
			p.Physical.Length, attrsChanged = in.Length, true
		}
		if in.Width != nil {
			p.Physical.Width, attrsChanged = in.Width, true
		}
		if in.Height != nil {
			p.Physical.Height, attrsChanged = in.Height, true
		}
		if in.Presentation != nil {
			p.Physical.Presentation = *in.Presentation
		}
		if attrsChanged {
			if err := validateAttributes(p.Physical); err != nil {
				return err
			}
			std, err := s.Products.GetStandards(ctx, p.ID)
			if err != nil {
				return err
			}
			if std != nil {
				if err := std.Check(p.Physical); err != nil {
					return err
				}
			}
		}
		p.UpdatedAt = time.Now()
		if err := s.Products.Update(ctx, p); err != nil {
			return err
		}
		if err := uc.prices.OnProductChanged(ctx, s, tenantID, p.ID); err != nil {
			return err
		}
		out, err = s.Products.GetByID(ctx, tenantID, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Delete elimina un producto con su receta, ruta y estándares.
// Un producto con ventas registradas devuelve domain.ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.store.Products.Delete(ctx, tenantID, id)
}

// SetStandards crea o reemplaza los estándares físicos. Los atributos actuales
// del producto deben cumplirlos.
func (uc *ProductUseCase) SetStandards(ctx context.Context, tenantID, productID string, in dto.StandardsRequest) (*dto.StandardsResponse, error) {
	std := &entity.Standards{
		ProductID: productID,
		Weight:    entity.Bound(in.Weight),
		Length:    entity.Bound(in.Length),
		Width:     entity.Bound(in.Width),
		Height:    entity.Bound(in.Height),
	}
	if err := std.Validate(); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Products.GetByID(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := std.Check(p.Physical); err != nil {
			return err
		}
		return s.Products.SaveStandards(ctx, std)
	})
	if err != nil {
		return nil, err
	}
	return toStandardsResponse(std), nil
}

// GetStandards devuelve los estándares del producto o domain.ErrNotFound si no tiene.
func (uc *ProductUseCase) GetStandards(ctx context.Context, tenantID, productID string) (*dto.StandardsResponse, error) {
	p, err := uc.store.Products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	std, err := uc.store.Products.GetStandards(ctx, productID)
	if err != nil {
		return nil, err
	}
	if std == nil {
		return nil, domain.ErrNotFound
	}
	return toStandardsResponse(std), nil
}

// resolvePolicy arma la política de ganancia y el precio manual guardado.
func resolvePolicy(mode string, pct, salePrice *decimal.Decimal) (entity.ProfitPolicy, decimal.Decimal, error) {
	price := decimal.Zero
	if salePrice != nil {
		if err := nonNegative("sale_price", *salePrice); err != nil {
			return entity.ProfitPolicy{}, decimal.Zero, err
		}
		price = *salePrice
	}
	switch entity.ProfitMode(mode) {
	case entity.ProfitManual:
		if salePrice == nil {
			return entity.ProfitPolicy{}, decimal.Zero, domain.NewValidationError("sale_price", "", "requerido con profit_mode=manual")
		}
		return entity.ManualPrice(), price, nil
	case entity.ProfitExplicit:
		if pct == nil {
			return entity.ProfitPolicy{}, decimal.Zero, domain.NewValidationError("profit_pct", "", "requerido con profit_mode=explicit")
		}
		if err := nonNegative("profit_pct", *pct); err != nil {
			return entity.ProfitPolicy{}, decimal.Zero, err
		}
		return entity.ExplicitProfit(*pct), price, nil
	case entity.ProfitTenantDefault:
		return entity.UseTenantDefault(), price, nil
	}
	return entity.ProfitPolicy{}, decimal.Zero, domain.NewValidationError("profit_mode", mode, "debe ser manual, explicit o tenant_default")
}

func validateAttributes(a entity.PhysicalAttributes) error {
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"weight", a.Weight},
		{"length", a.Length},
		{"width", a.Width},
		{"height", a.Height},
	}
	for _, f := range fields {
		if f.value != nil {
			if err := nonNegative(f.name, *f.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ProfitMode:     string(p.Profit.Mode),
		SalePrice:      p.SalePrice,
		Stock:          p.Stock,
		Weight:         p.Physical.Weight,
		Length:         p.Physical.Length,
		Width:          p.Physical.Width,
		Height:         p.Physical.Height,
		Presentation:   p.Physical.Presentation,
		ProductionCost: p.ProductionCost,
		Margin:         p.Margin,
		PriceWithTaxes: p.PriceWithTaxes,
		PricedAt:       p.PricedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Profit.Mode == entity.ProfitExplicit {
		out.ProfitPct = decimalPtr(p.Profit.Percentage)
	}
	return out
}

func toStandardsResponse(s *entity.Standards) *dto.StandardsResponse {
	return &dto.StandardsResponse{
		ProductID: s.ProductID,
		Weight:    dto.BoundRequest(s.Weight),
		Length:    dto.BoundRequest(s.Length),
		Width:     dto.BoundRequest(s.Width),
		Height:    dto.BoundRequest(s.Height),
	}
}
