package pricing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/pricing"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// recorder captura los recálculos reportados por disparador.
type recorder struct {
	mu       sync.Mutex
	repriced map[string]int
}

func (r *recorder) BatchExecuted(int64)    {}
func (r *recorder) BatchRejected()         {}
func (r *recorder) SaleRegistered(float64) {}
func (r *recorder) SaleRejected()          {}
func (r *recorder) ProductsRepriced(trigger string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.repriced == nil {
		r.repriced = map[string]int{}
	}
	r.repriced[trigger] += n
}

type fixture struct {
	ctx   context.Context
	store repository.Store
	tx    *memory.TxRunner
	rec   *recorder
	prop  *pricing.Propagator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	tx := memory.NewTxRunner(db)
	rec := &recorder{}
	return &fixture{
		ctx:   context.Background(),
		store: db.Store(),
		tx:    tx,
		rec:   rec,
		prop:  pricing.NewPropagator(tx, costing.NewEngine(costing.TaxBaseProductionCost), rec, zerolog.Nop()),
	}
}

type bakery struct {
	tenantID, breadID, flourID, ovenID, taxID string
}

// seed pan de 0.5 kg de harina (10% merma) + 30 min de horno a 12/h con IVA 10%.
// Se escribe directo al store, sin recalcular.
func (f *fixture) seed(t *testing.T) bakery {
	t.Helper()
	units, err := f.store.Units.List(f.ctx)
	require.NoError(t, err)
	b := bakery{
		tenantID: uuid.NewString(), breadID: uuid.NewString(), flourID: uuid.NewString(),
		ovenID: uuid.NewString(), taxID: uuid.NewString(),
	}
	require.NoError(t, f.store.Mipymes.Create(f.ctx, &entity.Mipyme{
		ID: b.tenantID, Name: "Panadería", FiscalID: b.tenantID,
		DefaultProfitPct: d("30"), DefaultWastePct: d("5"), Currency: entity.CurrencyUSD,
	}))
	require.NoError(t, f.store.Materials.Create(f.ctx, &entity.Material{ID: b.flourID, MipymeID: b.tenantID,
		Name: "Harina", UnitID: units[0].ID, CostPerUnit: d("2.00"), Stock: d("10")}))
	require.NoError(t, f.store.Processes.Create(f.ctx, &entity.Process{ID: b.ovenID, MipymeID: b.tenantID,
		Name: "Horno", CostPerHour: d("12")}))
	require.NoError(t, f.store.Products.Create(f.ctx, &entity.Product{ID: b.breadID, MipymeID: b.tenantID,
		Name: "Pan", Profit: entity.UseTenantDefault()}))
	require.NoError(t, f.store.Recipes.AddLine(f.ctx, &entity.RecipeLine{ID: uuid.NewString(), ProductID: b.breadID,
		MaterialID: b.flourID, Quantity: d("0.5"), WastePct: d("10")}))
	require.NoError(t, f.store.Routings.AddStep(f.ctx, &entity.RoutingStep{ID: uuid.NewString(), ProductID: b.breadID,
		ProcessID: b.ovenID, Minutes: d("30")}))
	require.NoError(t, f.store.Taxes.Create(f.ctx, &entity.Tax{ID: b.taxID, MipymeID: b.tenantID,
		Name: "IVA", Percentage: d("10"), Active: true}))
	require.NoError(t, f.store.Taxes.Assign(f.ctx, b.breadID, b.taxID))
	return b
}

func (f *fixture) product(t *testing.T, tenantID, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Products.GetByID(f.ctx, tenantID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestRecalculateTenant(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)
	require.True(t, f.product(t, b.tenantID, b.breadID).SalePrice.IsZero())

	n, err := f.prop.RecalculateTenant(f.ctx, b.tenantID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p := f.product(t, b.tenantID, b.breadID)
	assert.True(t, d("7.10").Equal(p.ProductionCost))
	assert.True(t, d("9.23").Equal(p.SalePrice))
	assert.True(t, d("2.13").Equal(p.Margin))
	assert.True(t, d("7.81").Equal(p.PriceWithTaxes))
	require.NotNil(t, p.PricedAt)
	assert.Equal(t, 1, f.rec.repriced[pricing.TriggerSweep])

	_, err = f.prop.RecalculateTenant(f.ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateAll_BarreTodasLasMipymes(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t)
	b := f.seed(t)

	n, err := f.prop.RecalculateAll(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, d("9.23").Equal(f.product(t, a.tenantID, a.breadID).SalePrice))
	assert.True(t, d("9.23").Equal(f.product(t, b.tenantID, b.breadID).SalePrice))
}

func TestRecalculateAll_ContextoCancelado(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	_, err := f.prop.RecalculateAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOnMaterialChanged_DentroDeLaTransaccion(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)
	_, err := f.prop.RecalculateTenant(f.ctx, b.tenantID)
	require.NoError(t, err)

	err = f.tx.Run(f.ctx, func(s repository.Store) error {
		m, err := s.Materials.GetByID(f.ctx, b.tenantID, b.flourID)
		if err != nil {
			return err
		}
		m.CostPerUnit = d("4.00")
		if err := s.Materials.Update(f.ctx, m); err != nil {
			return err
		}
		return f.prop.OnMaterialChanged(f.ctx, s, b.tenantID, b.flourID)
	})
	require.NoError(t, err)

	// 0.5 × 4 × 1.1 = 2.20 ; + 6.00 = 8.20 ; × 1.3 = 10.66
	p := f.product(t, b.tenantID, b.breadID)
	assert.True(t, d("8.20").Equal(p.ProductionCost))
	assert.True(t, d("10.66").Equal(p.SalePrice))
	assert.Equal(t, 1, f.rec.repriced[pricing.TriggerMaterial])
}

func TestOnProcessChanged_RollbackDescartaElRecalculo(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)
	_, err := f.prop.RecalculateTenant(f.ctx, b.tenantID)
	require.NoError(t, err)

	boom := errors.New("falla posterior")
	err = f.tx.Run(f.ctx, func(s repository.Store) error {
		p, err := s.Processes.GetByID(f.ctx, b.tenantID, b.ovenID)
		if err != nil {
			return err
		}
		p.CostPerHour = d("100")
		if err := s.Processes.Update(f.ctx, p); err != nil {
			return err
		}
		if err := f.prop.OnProcessChanged(f.ctx, s, b.tenantID, b.ovenID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p := f.product(t, b.tenantID, b.breadID)
	assert.True(t, d("7.10").Equal(p.ProductionCost), "la foto previa se conserva")
}

func TestOnTaxChanged_SoloImpuestosActivos(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	err := f.tx.Run(f.ctx, func(s repository.Store) error {
		tax, err := s.Taxes.GetByID(f.ctx, b.tenantID, b.taxID)
		if err != nil {
			return err
		}
		tax.Active = false
		if err := s.Taxes.Update(f.ctx, tax); err != nil {
			return err
		}
		return f.prop.OnTaxChanged(f.ctx, s, b.tenantID, b.taxID)
	})
	require.NoError(t, err)
	assert.True(t, d("7.10").Equal(f.product(t, b.tenantID, b.breadID).PriceWithTaxes))
}

func TestOnTenantDefaultsChanged_IgnoraOtrasPoliticas(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)
	manual := &entity.Product{ID: uuid.NewString(), MipymeID: b.tenantID, Name: "Torta",
		Profit: entity.ManualPrice(), SalePrice: d("25.00")}
	require.NoError(t, f.store.Products.Create(f.ctx, manual))

	err := f.tx.Run(f.ctx, func(s repository.Store) error {
		m, err := s.Mipymes.GetByID(f.ctx, b.tenantID)
		if err != nil {
			return err
		}
		m.DefaultProfitPct = d("50")
		if err := s.Mipymes.Update(f.ctx, m); err != nil {
			return err
		}
		return f.prop.OnTenantDefaultsChanged(f.ctx, s, b.tenantID)
	})
	require.NoError(t, err)

	assert.True(t, d("10.65").Equal(f.product(t, b.tenantID, b.breadID).SalePrice))
	assert.Nil(t, f.product(t, b.tenantID, manual.ID).PricedAt, "el producto manual no se toca")
	assert.Equal(t, 1, f.rec.repriced[pricing.TriggerDefaults])
}

func TestOnTaxRemoved_IgnoraProductosBorrados(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	err := f.tx.Run(f.ctx, func(s repository.Store) error {
		return f.prop.OnTaxRemoved(f.ctx, s, b.tenantID, []string{uuid.NewString(), b.breadID, b.breadID, ""})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.rec.repriced[pricing.TriggerTax])
}

func TestScheduler(t *testing.T) {
	f := newFixture(t)

	_, err := pricing.NewScheduler("cada cinco minutos", f.prop, zerolog.Nop())
	assert.Error(t, err)

	s, err := pricing.NewScheduler("*/5 * * * *", f.prop, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(f.ctx, time.Second)
	defer cancel()
	s.Stop(ctx)
}
