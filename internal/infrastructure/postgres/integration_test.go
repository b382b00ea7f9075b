//go:build integration

package postgres_test

// Pruebas contra PostgreSQL real levantado con testcontainers.
// Correr con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/pricing"
	"github.com/jhoicas/mipymes-api/internal/application/production"
	"github.com/jhoicas/mipymes-api/internal/application/sales"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mipymes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mipymes-api/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type app struct {
	mipymes   *usecase.MipymeUseCase
	units     *usecase.UnitUseCase
	materials *usecase.MaterialUseCase
	processes *usecase.ProcessUseCase
	taxes     *usecase.TaxUseCase
	products  *usecase.ProductUseCase
	recipes   *usecase.RecipeUseCase
	batches   *production.BatchUseCase
	sales     *sales.SaleUseCase
	prices    *pricing.Propagator
}

func setup(t *testing.T) *app {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("mipymes_test"),
		tcPostgres.WithUsername("mipymes"),
		tcPostgres.WithPassword("mipymes"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(pool))

	store := postgres.NewStore(pool)
	tx := postgres.NewTxRunner(pool)
	engine := costing.NewEngine(costing.TaxBaseProductionCost)
	prices := pricing.NewPropagator(tx, engine, nil, zerolog.Nop())
	return &app{
		mipymes:   usecase.NewMipymeUseCase(store, tx, prices),
		units:     usecase.NewUnitUseCase(store.Units),
		materials: usecase.NewMaterialUseCase(store, tx, prices, zerolog.Nop()),
		processes: usecase.NewProcessUseCase(store, tx, prices),
		taxes:     usecase.NewTaxUseCase(store, tx, prices),
		products:  usecase.NewProductUseCase(store, tx, prices),
		recipes:   usecase.NewRecipeUseCase(store, tx, prices),
		batches:   production.NewBatchUseCase(store, tx, engine, nil, zerolog.Nop()),
		sales:     sales.NewSaleUseCase(store, tx, pdf.NewReceiptGenerator(), nil, zerolog.Nop()),
		prices:    prices,
	}
}

func TestPostgres_FlujoCompleto(t *testing.T) {
	a := setup(t)
	ctx := context.Background()

	m, err := a.mipymes.Create(ctx, dto.CreateMipymeRequest{
		Name: "Panadería Central", FiscalID: "J0310000000001",
		DefaultProfitPct: d("30"), DefaultWastePct: d("10"), Currency: "NIO",
	})
	require.NoError(t, err)
	tenant := m.ID

	units, err := a.units.List(ctx)
	require.NoError(t, err)
	var kg string
	for _, u := range units {
		if u.Abbreviation == "kg" {
			kg = u.ID
		}
	}
	require.NotEmpty(t, kg, "la migración siembra las unidades")

	flour, err := a.materials.Create(ctx, tenant, dto.CreateMaterialRequest{
		Name: "Harina", UnitID: kg, CostPerUnit: d("2.00"), Stock: d("10"),
	})
	require.NoError(t, err)
	oven, err := a.processes.Create(ctx, tenant, dto.CreateProcessRequest{Name: "Horno", CostPerHour: d("12")})
	require.NoError(t, err)
	vat, err := a.taxes.Create(ctx, tenant, dto.CreateTaxRequest{Name: "IVA", Percentage: d("10")})
	require.NoError(t, err)
	bread, err := a.products.Create(ctx, tenant, dto.CreateProductRequest{Name: "Pan", ProfitMode: "tenant_default"})
	require.NoError(t, err)

	_, err = a.recipes.AddRecipeLine(ctx, tenant, bread.ID, dto.AddRecipeLineRequest{MaterialID: flour.ID, Quantity: d("0.5")})
	require.NoError(t, err)
	_, err = a.recipes.AddRecipeLine(ctx, tenant, bread.ID, dto.AddRecipeLineRequest{MaterialID: flour.ID, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = a.recipes.AddRoutingStep(ctx, tenant, bread.ID, dto.AddRoutingStepRequest{ProcessID: oven.ID, Minutes: d("30")})
	require.NoError(t, err)
	require.NoError(t, a.taxes.Assign(ctx, tenant, bread.ID, vat.ID))

	got, err := a.products.Get(ctx, tenant, bread.ID)
	require.NoError(t, err)
	assert.True(t, d("7.10").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("9.23").Equal(got.SalePrice), got.SalePrice.String())
	assert.True(t, d("7.81").Equal(got.PriceWithTaxes), got.PriceWithTaxes.String())

	res, err := a.batches.ExecuteBatch(ctx, tenant, bread.ID, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.ProductStock)
	mat, err := a.materials.Get(ctx, tenant, flour.ID)
	require.NoError(t, err)
	assert.True(t, d("4.5").Equal(mat.Stock), mat.Stock.String())

	_, err = a.batches.ExecuteBatch(ctx, tenant, bread.ID, 10, "")
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	mat, err = a.materials.Get(ctx, tenant, flour.ID)
	require.NoError(t, err)
	assert.True(t, d("4.5").Equal(mat.Stock), "el rollback conserva el stock")

	sale, err := a.sales.RegisterSale(ctx, tenant, "", []dto.SaleLineRequest{
		{ProductID: bread.ID, Quantity: 2},
		{ProductID: bread.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.True(t, d("27.69").Equal(sale.Total), sale.Total.String())
	pdfBytes, _, err := a.sales.ReceiptPDF(ctx, tenant, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	_, err = a.materials.Update(ctx, tenant, flour.ID, dto.UpdateMaterialRequest{CostPerUnit: ptr(d("4.00"))})
	require.NoError(t, err)
	got, err = a.products.Get(ctx, tenant, bread.ID)
	require.NoError(t, err)
	assert.True(t, d("8.20").Equal(got.ProductionCost), got.ProductionCost.String())

	assert.ErrorIs(t, a.products.Delete(ctx, tenant, bread.ID), domain.ErrConflict)

	n, err := a.prices.RecalculateTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Ventas concurrentes sobre el mismo producto: los bloqueos por fila impiden
// vender más de lo que hay.
func TestPostgres_VentasConcurrentesNoSobrevenden(t *testing.T) {
	a := setup(t)
	ctx := context.Background()

	m, err := a.mipymes.Create(ctx, dto.CreateMipymeRequest{Name: "Tienda", FiscalID: "0801199912345", Currency: "HNL"})
	require.NoError(t, err)
	p, err := a.products.Create(ctx, m.ID, dto.CreateProductRequest{
		Name: "Galleta", ProfitMode: "manual", SalePrice: ptr(d("1.00")), Stock: 5,
	})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.sales.RegisterSale(ctx, m.ID, "", []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, fail)
	got, err := a.products.Get(ctx, m.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)
}

// Lotes y ediciones de catálogo concurrentes sobre el mismo insumo: la edición
// bloquea la fila y no reescribe el stock, así ningún descuento se pierde.
func TestPostgres_EdicionDeInsumoNoDeshaceLotes(t *testing.T) {
	a := setup(t)
	ctx := context.Background()

	m, err := a.mipymes.Create(ctx, dto.CreateMipymeRequest{Name: "Dulcería", FiscalID: "J0310000000002", Currency: "NIO"})
	require.NoError(t, err)
	units, err := a.units.List(ctx)
	require.NoError(t, err)
	var kg string
	for _, u := range units {
		if u.Abbreviation == "kg" {
			kg = u.ID
		}
	}
	sugar, err := a.materials.Create(ctx, m.ID, dto.CreateMaterialRequest{
		Name: "Azúcar", UnitID: kg, CostPerUnit: d("1.00"), Stock: d("10"),
	})
	require.NoError(t, err)
	candy, err := a.products.Create(ctx, m.ID, dto.CreateProductRequest{
		Name: "Cajeta", ProfitMode: "manual", SalePrice: ptr(d("5.00")),
	})
	require.NoError(t, err)
	_, err = a.recipes.AddRecipeLine(ctx, m.ID, candy.ID, dto.AddRecipeLineRequest{
		MaterialID: sugar.ID, Quantity: d("1"), WastePct: ptr(d("0")),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := a.batches.ExecuteBatch(ctx, m.ID, candy.ID, 1, "")
			errs <- err
		}()
		go func(i int) {
			defer wg.Done()
			cost := d("1.00").Add(decimal.NewFromInt(int64(i)))
			_, err := a.materials.Update(ctx, m.ID, sugar.ID, dto.UpdateMaterialRequest{CostPerUnit: &cost})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	mat, err := a.materials.Get(ctx, m.ID, sugar.ID)
	require.NoError(t, err)
	assert.True(t, d("5").Equal(mat.Stock), mat.Stock.String())
	got, err := a.products.Get(ctx, m.ID, candy.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
}

func ptr[T any](v T) *T { return &v }
