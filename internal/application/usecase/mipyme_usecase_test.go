package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/domain"
)

func TestMipymeCreate_MonedaPorDefecto(t *testing.T) {
	e := newEnv(t)
	m, err := e.mipymes.Create(e.ctx, dto.CreateMipymeRequest{Name: "Taller", FiscalID: "001-010190-0001A"})
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency)
	assert.NotEmpty(t, m.ID)
}

func TestMipymeCreate_Rechazos(t *testing.T) {
	e := newEnv(t)
	e.tenant("RUC-1")

	tests := []struct {
		name string
		in   dto.CreateMipymeRequest
		want error
	}{
		{"fiscal duplicado", dto.CreateMipymeRequest{Name: "Otra", FiscalID: "RUC-1"}, domain.ErrDuplicate},
		{"sin nombre", dto.CreateMipymeRequest{FiscalID: "RUC-2"}, domain.ErrInvalidInput},
		{"ganancia mayor a 100", dto.CreateMipymeRequest{Name: "X", FiscalID: "RUC-3", DefaultProfitPct: d("120")}, domain.ErrInvalidInput},
		{"merma con 3 decimales", dto.CreateMipymeRequest{Name: "X", FiscalID: "RUC-4", DefaultWastePct: d("1.125")}, domain.ErrInvalidInput},
		{"moneda no soportada", dto.CreateMipymeRequest{Name: "X", FiscalID: "RUC-5", Currency: "EUR"}, domain.ErrInvalidInput},
		{"unidad desconocida", dto.CreateMipymeRequest{Name: "X", FiscalID: "RUC-6", PermittedUnits: []string{"lb"}}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.mipymes.Create(e.ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMipymeGet_Inexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.mipymes.Get(e.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProductionSettings_RecalculaHeredados(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-10")
	bread, _, _ := e.baked(tenantID)
	require.True(t, d("9.10").Equal(bread.SalePrice), bread.SalePrice.String())

	manual, err := e.products.Create(e.ctx, tenantID, dto.CreateProductRequest{
		Name: "Pastel", ProfitMode: "manual", SalePrice: dp("25.00"),
	})
	require.NoError(t, err)

	out, err := e.mipymes.UpdateProductionSettings(e.ctx, tenantID, dto.UpdateProductionSettingsRequest{
		DefaultProfitPct: dp("50"),
	})
	require.NoError(t, err)
	assert.True(t, d("50").Equal(out.DefaultProfitPct))

	assert.True(t, d("10.50").Equal(e.reload(tenantID, bread.ID).SalePrice), "7.00 + 50%")
	assert.True(t, d("25.00").Equal(e.reload(tenantID, manual.ID).SalePrice), "el precio manual no cambia")
}

func TestUpdateProductionSettings_ErrorNoPersiste(t *testing.T) {
	e := newEnv(t)
	tenantID := e.tenant("RUC-11")

	bad := "EUR"
	_, err := e.mipymes.UpdateProductionSettings(e.ctx, tenantID, dto.UpdateProductionSettingsRequest{
		DefaultWastePct: dp("8"),
		Currency:        &bad,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := e.mipymes.Get(e.ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, d("5").Equal(m.DefaultWastePct), "la transacción se revierte completa")
}
