package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/pricing"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/memory"
)

// env casos de uso reales sobre el adaptador en memoria.
type env struct {
	t     *testing.T
	ctx   context.Context
	store repository.Store

	mipymes   *usecase.MipymeUseCase
	units     *usecase.UnitUseCase
	materials *usecase.MaterialUseCase
	processes *usecase.ProcessUseCase
	taxes     *usecase.TaxUseCase
	products  *usecase.ProductUseCase
	recipes   *usecase.RecipeUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := memory.New()
	store := db.Store()
	tx := memory.NewTxRunner(db)
	prices := pricing.NewPropagator(tx, costing.NewEngine(costing.TaxBaseProductionCost), nil, zerolog.Nop())
	return &env{
		t:         t,
		ctx:       context.Background(),
		store:     store,
		mipymes:   usecase.NewMipymeUseCase(store, tx, prices),
		units:     usecase.NewUnitUseCase(store.Units),
		materials: usecase.NewMaterialUseCase(store, tx, prices, zerolog.Nop()),
		processes: usecase.NewProcessUseCase(store, tx, prices),
		taxes:     usecase.NewTaxUseCase(store, tx, prices),
		products:  usecase.NewProductUseCase(store, tx, prices),
		recipes:   usecase.NewRecipeUseCase(store, tx, prices),
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func sp(s string) *string { return &s }

// tenant crea una mipyme con 30% de ganancia y 5% de merma por defecto.
func (e *env) tenant(fiscalID string) string {
	e.t.Helper()
	m, err := e.mipymes.Create(e.ctx, dto.CreateMipymeRequest{
		Name:             "Mipyme " + fiscalID,
		FiscalID:         fiscalID,
		DefaultProfitPct: d("30"),
		DefaultWastePct:  d("5"),
	})
	require.NoError(e.t, err)
	return m.ID
}

func (e *env) unit(abbr string) string {
	e.t.Helper()
	list, err := e.units.List(e.ctx)
	require.NoError(e.t, err)
	for _, u := range list {
		if u.Abbreviation == abbr {
			return u.ID
		}
	}
	e.t.Fatalf("unidad %s no sembrada", abbr)
	return ""
}

func (e *env) material(tenantID, name, cost, stock string) *dto.MaterialResponse {
	e.t.Helper()
	m, err := e.materials.Create(e.ctx, tenantID, dto.CreateMaterialRequest{
		Name:        name,
		UnitID:      e.unit("kg"),
		CostPerUnit: d(cost),
		Stock:       d(stock),
	})
	require.NoError(e.t, err)
	return m
}

func (e *env) process(tenantID, name, perHour string) *dto.ProcessResponse {
	e.t.Helper()
	p, err := e.processes.Create(e.ctx, tenantID, dto.CreateProcessRequest{Name: name, CostPerHour: d(perHour)})
	require.NoError(e.t, err)
	return p
}

func (e *env) product(tenantID, name string) *dto.ProductResponse {
	e.t.Helper()
	p, err := e.products.Create(e.ctx, tenantID, dto.CreateProductRequest{Name: name, ProfitMode: "tenant_default"})
	require.NoError(e.t, err)
	return p
}

func (e *env) reload(tenantID, productID string) *dto.ProductResponse {
	e.t.Helper()
	p, err := e.products.Get(e.ctx, tenantID, productID)
	require.NoError(e.t, err)
	return p
}

// baked producto con 1 kg de harina (sin merma) y 30 min de horno a 10/h:
// costo 2.00 + 5.00 = 7.00, precio 9.10.
func (e *env) baked(tenantID string) (product *dto.ProductResponse, flour *dto.MaterialResponse, oven *dto.ProcessResponse) {
	e.t.Helper()
	flour = e.material(tenantID, "Harina", "2.00", "50")
	oven = e.process(tenantID, "Horno", "10")
	product = e.product(tenantID, "Pan")
	_, err := e.recipes.AddRecipeLine(e.ctx, tenantID, product.ID, dto.AddRecipeLineRequest{
		MaterialID: flour.ID, Quantity: d("1"), WastePct: dp("0"),
	})
	require.NoError(e.t, err)
	_, err = e.recipes.AddRoutingStep(e.ctx, tenantID, product.ID, dto.AddRoutingStepRequest{
		ProcessID: oven.ID, Minutes: d("30"),
	})
	require.NoError(e.t, err)
	return e.reload(tenantID, product.ID), flour, oven
}
