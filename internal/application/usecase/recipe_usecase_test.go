package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain"
)

func TestAddRecipeLine_MermaPorDefecto(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-60")
	sugar := e.material(tenantID, "Azúcar", "2.00", "10")
	p := e.product(tenantID, "Almíbar")

	line, err := e.recipes.AddRecipeLine(e.ctx, tenantID, p.ID, dto.AddRecipeLineRequest{
		MaterialID: sugar.ID, Quantity: d("1"),
	})
	require.NoError(t, err)
	assert.True(t, d("5").Equal(line.WastePct), "hereda la merma de la mipyme")

	// 1 × 2.00 × 1.05 = 2.10 ; +30% = 2.73
	got := e.reload(tenantID, p.ID)
	assert.True(t, d("2.10").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("2.73").Equal(got.SalePrice), got.SalePrice.String())
}

func TestAddRecipeLine_Rechazos(t *testing.T) {
	e := newEnv(t)
	a := e.tenant("RUC-61")
	b := e.tenant("RUC-62")
	bread, flour, oven := e.baked(a)
	foreign := e.material(b, "Harina ajena", "1.00", "1")

	_, err := e.recipes.AddRecipeLine(e.ctx, a, bread.ID, dto.AddRecipeLineRequest{MaterialID: flour.ID, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "un insumo aparece una sola vez")

	_, err = e.recipes.AddRecipeLine(e.ctx, a, bread.ID, dto.AddRecipeLineRequest{MaterialID: foreign.ID, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.recipes.AddRecipeLine(e.ctx, b, bread.ID, dto.AddRecipeLineRequest{MaterialID: foreign.ID, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto es de otra mipyme")

	_, err = e.recipes.AddRecipeLine(e.ctx, a, bread.ID, dto.AddRecipeLineRequest{MaterialID: flour.ID, Quantity: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.recipes.AddRoutingStep(e.ctx, a, bread.ID, dto.AddRoutingStepRequest{ProcessID: oven.ID, Minutes: d("5")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.recipes.AddRoutingStep(e.ctx, a, bread.ID, dto.AddRoutingStepRequest{ProcessID: oven.ID, Minutes: d("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecipeLine_ActualizarYQuitar(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-63")
	bread, _, _ := e.baked(tenantID)

	lines, err := e.recipes.ListRecipe(e.ctx, tenantID, bread.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	_, err = e.recipes.UpdateRecipeLine(e.ctx, tenantID, bread.ID, lines[0].ID, dto.UpdateRecipeLineRequest{Quantity: dp("2")})
	require.NoError(t, err)
	got := e.reload(tenantID, bread.ID)
	assert.True(t, d("9.00").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("11.70").Equal(got.SalePrice), got.SalePrice.String())

	require.NoError(t, e.recipes.RemoveRecipeLine(e.ctx, tenantID, bread.ID, lines[0].ID))
	got = e.reload(tenantID, bread.ID)
	assert.True(t, d("5.00").Equal(got.ProductionCost), got.ProductionCost.String())

	assert.ErrorIs(t, e.recipes.RemoveRecipeLine(e.ctx, tenantID, bread.ID, lines[0].ID), domain.ErrNotFound)
}

func TestRoutingStep_ActualizarYQuitar(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-64")
	bread, _, _ := e.baked(tenantID)

	steps, err := e.recipes.ListRouting(e.ctx, tenantID, bread.ID)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	_, err = e.recipes.UpdateRoutingStep(e.ctx, tenantID, bread.ID, steps[0].ID, dto.UpdateRoutingStepRequest{Minutes: d("60")})
	require.NoError(t, err)
	got := e.reload(tenantID, bread.ID)
	assert.True(t, d("12.00").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("15.60").Equal(got.SalePrice), got.SalePrice.String())

	require.NoError(t, e.recipes.RemoveRoutingStep(e.ctx, tenantID, bread.ID, steps[0].ID))
	got = e.reload(tenantID, bread.ID)
	assert.True(t, d("2.00").Equal(got.ProductionCost), got.ProductionCost.String())

	_, err = e.recipes.UpdateRoutingStep(e.ctx, tenantID, bread.ID, steps[0].ID, dto.UpdateRoutingStepRequest{Minutes: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
