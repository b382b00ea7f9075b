package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain"
)

func TestProcessUpdate_RecalculaProductos(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-30")
	bread, _, oven := e.baked(tenantID)

	_, err := e.processes.Update(e.ctx, tenantID, oven.ID, dto.UpdateProcessRequest{CostPerHour: dp("20")})
	require.NoError(t, err)

	got := e.reload(tenantID, bread.ID)
	assert.True(t, d("12.00").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("15.60").Equal(got.SalePrice), got.SalePrice.String())
}

func TestProcessDelete_QuitaPasosYRecalcula(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-31")
	bread, _, oven := e.baked(tenantID)

	require.NoError(t, e.processes.Delete(e.ctx, tenantID, oven.ID))

	steps, err := e.recipes.ListRouting(e.ctx, tenantID, bread.ID)
	require.NoError(t, err)
	assert.Empty(t, steps)

	got := e.reload(tenantID, bread.ID)
	assert.True(t, d("2.00").Equal(got.ProductionCost), got.ProductionCost.String())
	assert.True(t, d("2.60").Equal(got.SalePrice), got.SalePrice.String())
}

func TestProcessCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-32")

	_, err := e.processes.Create(e.ctx, tenantID, dto.CreateProcessRequest{Name: "", CostPerHour: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.processes.Create(e.ctx, tenantID, dto.CreateProcessRequest{Name: "Corte", CostPerHour: d("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.processes.Get(e.ctx, tenantID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
