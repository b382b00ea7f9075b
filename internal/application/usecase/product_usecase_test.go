package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

func TestProductCreate_PoliticasDeGanancia(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-50")

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"manual sin precio", dto.CreateProductRequest{Name: "A", ProfitMode: "manual"}, domain.ErrInvalidInput},
		{"explicit sin porcentaje", dto.CreateProductRequest{Name: "B", ProfitMode: "explicit"}, domain.ErrInvalidInput},
		{"modo desconocido", dto.CreateProductRequest{Name: "C", ProfitMode: "markup"}, domain.ErrInvalidInput},
		{"peso negativo", dto.CreateProductRequest{Name: "D", ProfitMode: "tenant_default", Weight: dp("-1")}, domain.ErrInvalidInput},
		{"stock negativo", dto.CreateProductRequest{Name: "E", ProfitMode: "tenant_default", Stock: -1}, domain.ErrInvalidInput},
		{"mipyme inexistente", dto.CreateProductRequest{Name: "F", ProfitMode: "tenant_default"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant := tenantID
			if tt.want == domain.ErrNotFound {
				tenant = "no-existe"
			}
			_, err := e.products.Create(e.ctx, tenant, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, err := e.products.Create(e.ctx, tenantID, dto.CreateProductRequest{
		Name: "Galleta", ProfitMode: "manual", SalePrice: dp("1.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, "manual", p.ProfitMode)
	assert.True(t, d("1.25").Equal(p.SalePrice))
	assert.True(t, d("1.25").Equal(p.Margin), "sin receta el costo es cero")
}

func TestProductCreate_NombreDuplicadoPorMipyme(t *testing.T) {
	e := newEnv(t)
	a := e.tenant("RUC-51")
	b := e.tenant("RUC-52")
	e.product(a, "Pan")

	_, err := e.products.Create(e.ctx, a, dto.CreateProductRequest{Name: "Pan", ProfitMode: "tenant_default"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.products.Create(e.ctx, b, dto.CreateProductRequest{Name: "Pan", ProfitMode: "tenant_default"})
	assert.NoError(t, err, "otra mipyme puede usar el mismo nombre")
}

func TestProductUpdate_CambioDePolitica(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-53")
	bread, _, _ := e.baked(tenantID)

	manual := "manual"
	got, err := e.products.Update(e.ctx, tenantID, bread.ID, dto.UpdateProductRequest{
		ProfitMode: &manual, SalePrice: dp("12.00"),
	})
	require.NoError(t, err)
	assert.True(t, d("12.00").Equal(got.SalePrice))
	assert.True(t, d("5.00").Equal(got.Margin))

	explicit := "explicit"
	got, err = e.products.Update(e.ctx, tenantID, bread.ID, dto.UpdateProductRequest{
		ProfitMode: &explicit, ProfitPct: dp("100"),
	})
	require.NoError(t, err)
	assert.True(t, d("14.00").Equal(got.SalePrice))
	require.NotNil(t, got.ProfitPct)
	assert.True(t, d("100").Equal(*got.ProfitPct))

	_, err = e.products.Update(e.ctx, tenantID, bread.ID, dto.UpdateProductRequest{ProfitMode: &manual, SalePrice: dp("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductStandards(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-54")
	p, err := e.products.Create(e.ctx, tenantID, dto.CreateProductRequest{
		Name: "Ladrillo", ProfitMode: "tenant_default", Weight: dp("1.50"),
	})
	require.NoError(t, err)

	_, err = e.products.GetStandards(e.ctx, tenantID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.SetStandards(e.ctx, tenantID, p.ID, dto.StandardsRequest{
		Weight: dto.BoundRequest{Min: dp("2"), Max: dp("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mínimo mayor que máximo")

	_, err = e.products.SetStandards(e.ctx, tenantID, p.ID, dto.StandardsRequest{
		Weight: dto.BoundRequest{Max: dp("1.00")},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr, "el peso actual queda fuera del estándar")
	assert.Equal(t, "weight", verr.Field)

	std, err := e.products.SetStandards(e.ctx, tenantID, p.ID, dto.StandardsRequest{
		Weight: dto.BoundRequest{Min: dp("1.00"), Max: dp("2.00")},
	})
	require.NoError(t, err)
	require.NotNil(t, std.Weight.Max)
	assert.True(t, d("2.00").Equal(*std.Weight.Max))

	_, err = e.products.Update(e.ctx, tenantID, p.ID, dto.UpdateProductRequest{Weight: dp("2.50")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.products.Update(e.ctx, tenantID, p.ID, dto.UpdateProductRequest{Weight: dp("1.80")})
	require.NoError(t, err)
	assert.True(t, d("1.80").Equal(*got.Weight))
}

func TestProductDelete(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-55")
	bread, _, _ := e.baked(tenantID)
	sold := e.product(tenantID, "Vendido")

	require.NoError(t, e.store.Sales.Create(e.ctx, &entity.Sale{
		ID:        uuid.NewString(),
		MipymeID:  tenantID,
		CreatedAt: time.Now(),
		Items: []entity.SaleItem{{
			ID: uuid.NewString(), ProductID: sold.ID, Quantity: 1, UnitPrice: d("1.00"),
		}},
	}))
	assert.ErrorIs(t, e.products.Delete(e.ctx, tenantID, sold.ID), domain.ErrConflict)

	require.NoError(t, e.products.Delete(e.ctx, tenantID, bread.ID))
	_, err := e.products.Get(e.ctx, tenantID, bread.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.recipes.ListRecipe(e.ctx, tenantID, bread.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_Paginado(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-56")
	for _, n := range []string{"A", "B", "C"} {
		e.product(tenantID, n)
	}
	page, err := e.products.List(e.ctx, tenantID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	page, err = e.products.List(e.ctx, tenantID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
