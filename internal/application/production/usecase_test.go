package production_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/production"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recorder struct {
	executed int64
	rejected int
}

func (r *recorder) BatchExecuted(units int64)    { r.executed += units }
func (r *recorder) BatchRejected()               { r.rejected++ }
func (r *recorder) SaleRegistered(float64)       {}
func (r *recorder) SaleRejected()                {}
func (r *recorder) ProductsRepriced(string, int) {}

type fixture struct {
	ctx      context.Context
	store    repository.Store
	uc       *production.BatchUseCase
	rec      *recorder
	tenantID string
	breadID  string
	flourID  string
	sugarID  string
}

// newFixture pan: 0.5 kg harina (10% merma, stock 10) + 0.1 kg azúcar (sin merma,
// stock 1) + 30 min de horno a 12/h. Precio manual 10.00.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	rec := &recorder{}
	f := &fixture{
		ctx:      context.Background(),
		store:    db.Store(),
		rec:      rec,
		tenantID: uuid.NewString(),
		breadID:  uuid.NewString(),
		flourID:  uuid.NewString(),
		sugarID:  uuid.NewString(),
	}
	f.uc = production.NewBatchUseCase(f.store, memory.NewTxRunner(db), costing.NewEngine(""), rec, zerolog.Nop())

	units, err := f.store.Units.List(f.ctx)
	require.NoError(t, err)
	ovenID := uuid.NewString()
	require.NoError(t, f.store.Mipymes.Create(f.ctx, &entity.Mipyme{ID: f.tenantID, Name: "Panadería",
		FiscalID: f.tenantID, Currency: entity.CurrencyCRC}))
	require.NoError(t, f.store.Materials.Create(f.ctx, &entity.Material{ID: f.flourID, MipymeID: f.tenantID,
		Name: "Harina", UnitID: units[0].ID, CostPerUnit: d("2.00"), Stock: d("10")}))
	require.NoError(t, f.store.Materials.Create(f.ctx, &entity.Material{ID: f.sugarID, MipymeID: f.tenantID,
		Name: "Azúcar", UnitID: units[0].ID, CostPerUnit: d("1.00"), Stock: d("1")}))
	require.NoError(t, f.store.Processes.Create(f.ctx, &entity.Process{ID: ovenID, MipymeID: f.tenantID,
		Name: "Horno", CostPerHour: d("12")}))
	require.NoError(t, f.store.Products.Create(f.ctx, &entity.Product{ID: f.breadID, MipymeID: f.tenantID,
		Name: "Pan", Profit: entity.ManualPrice(), SalePrice: d("10.00")}))
	require.NoError(t, f.store.Recipes.AddLine(f.ctx, &entity.RecipeLine{ID: uuid.NewString(), ProductID: f.breadID,
		MaterialID: f.flourID, Quantity: d("0.5"), WastePct: d("10")}))
	require.NoError(t, f.store.Recipes.AddLine(f.ctx, &entity.RecipeLine{ID: uuid.NewString(), ProductID: f.breadID,
		MaterialID: f.sugarID, Quantity: d("0.1"), WastePct: d("0")}))
	require.NoError(t, f.store.Routings.AddStep(f.ctx, &entity.RoutingStep{ID: uuid.NewString(), ProductID: f.breadID,
		ProcessID: ovenID, Minutes: d("30")}))
	return f
}

func (f *fixture) stock(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	m, err := f.store.Materials.GetByID(f.ctx, f.tenantID, materialID)
	require.NoError(t, err)
	return m.Stock
}

func (f *fixture) productStock(t *testing.T) int64 {
	t.Helper()
	p, err := f.store.Products.GetByID(f.ctx, f.tenantID, f.breadID)
	require.NoError(t, err)
	return p.Stock
}

func TestPlanBatch(t *testing.T) {
	f := newFixture(t)

	plan, err := f.uc.PlanBatch(f.ctx, f.tenantID, f.breadID, 10)
	require.NoError(t, err)
	assert.Equal(t, "CRC", plan.Currency)
	assert.True(t, plan.Feasible)
	require.Len(t, plan.Materials, 2)
	require.Len(t, plan.Processes, 1)

	required := map[string]decimal.Decimal{}
	for _, m := range plan.Materials {
		required[m.MaterialID] = m.Required
	}
	assert.True(t, d("5.5").Equal(required[f.flourID]))
	assert.True(t, d("1").Equal(required[f.sugarID]))
	assert.True(t, d("300").Equal(plan.Processes[0].Minutes))

	// (1.10 + 0.10) × 10 + 6.00 × 10
	assert.True(t, d("12.00").Equal(plan.MaterialCost))
	assert.True(t, d("60.00").Equal(plan.ProcessCost))
	assert.True(t, d("72.00").Equal(plan.TotalCost))
	assert.True(t, d("100.00").Equal(plan.ProjectedRevenue))
	assert.True(t, d("28.00").Equal(plan.ProjectedMargin))

	assert.True(t, d("10").Equal(f.stock(t, f.flourID)), "planificar no consume")
}

func TestPlanBatch_NoFactibleReportaFaltantes(t *testing.T) {
	f := newFixture(t)

	plan, err := f.uc.PlanBatch(f.ctx, f.tenantID, f.breadID, 20)
	require.NoError(t, err)
	assert.False(t, plan.Feasible)
	require.Len(t, plan.Shortfalls, 2)
	for _, s := range plan.Shortfalls {
		assert.Equal(t, "material", s.Kind)
	}
}

func TestPlanBatch_Rechazos(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlanBatch(f.ctx, f.tenantID, f.breadID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.PlanBatch(f.ctx, uuid.NewString(), f.breadID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecuteBatch(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.ExecuteBatch(f.ctx, f.tenantID, f.breadID, 10, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.ProductStock)
	assert.True(t, d("72.00").Equal(res.Plan.TotalCost))

	assert.True(t, d("4.5").Equal(f.stock(t, f.flourID)), f.stock(t, f.flourID).String())
	assert.True(t, f.stock(t, f.sugarID).IsZero(), "se puede agotar exacto")
	assert.Equal(t, int64(10), f.productStock(t))
	assert.Equal(t, int64(10), f.rec.executed)
}

func TestExecuteBatch_FaltanteNoEscribeNada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ExecuteBatch(f.ctx, f.tenantID, f.breadID, 11, "user-1")
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Len(t, short.Shortfalls, 1)
	assert.Equal(t, f.sugarID, short.Shortfalls[0].ID)
	assert.True(t, d("0.1").Equal(short.Shortfalls[0].Missing()))

	assert.True(t, d("10").Equal(f.stock(t, f.flourID)), "la harina alcanzaba pero no se descuenta")
	assert.True(t, d("1").Equal(f.stock(t, f.sugarID)))
	assert.Equal(t, int64(0), f.productStock(t))
	assert.Equal(t, 1, f.rec.rejected)
	assert.Zero(t, f.rec.executed)
}

func TestExecuteBatch_RemanenteRedondeadoHaciaAbajo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Materials.UpdateStock(f.ctx, f.flourID, d("10.006")))

	_, err := f.uc.ExecuteBatch(f.ctx, f.tenantID, f.breadID, 1, "")
	require.NoError(t, err)
	// 10.006 - 0.55 = 9.456
	assert.True(t, d("9.45").Equal(f.stock(t, f.flourID)), f.stock(t, f.flourID).String())
}

func TestExecuteBatch_ProductoDeOtraMipyme(t *testing.T) {
	f := newFixture(t)
	other := uuid.NewString()
	require.NoError(t, f.store.Mipymes.Create(f.ctx, &entity.Mipyme{ID: other, Name: "Otra", FiscalID: other, Currency: "USD"}))

	_, err := f.uc.ExecuteBatch(f.ctx, other, f.breadID, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(0), f.productStock(t))
}

func TestExecuteBatch_StockDelProductoDesbordado(t *testing.T) {
	f := newFixture(t)
	waterID := uuid.NewString()
	require.NoError(t, f.store.Products.Create(f.ctx, &entity.Product{ID: waterID, MipymeID: f.tenantID,
		Name: "Agua", Profit: entity.ManualPrice(), SalePrice: d("1.00"), Stock: 10}))

	_, err := f.uc.ExecuteBatch(f.ctx, f.tenantID, waterID, math.MaxInt64, "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "units", verr.Field)

	p, err := f.store.Products.GetByID(f.ctx, f.tenantID, waterID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Stock)
	assert.Zero(t, f.rec.executed)
}
