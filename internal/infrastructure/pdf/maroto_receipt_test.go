package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsales "github.com/jhoicas/mipymes-api/internal/application/sales"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		cur  string
		want string
	}{
		{"0", "USD", "USD 0.00"},
		{"999.5", "NIO", "NIO 999.50"},
		{"1234.5", "USD", "USD 1,234.50"},
		{"1000000", "CRC", "CRC 1,000,000.00"},
		{"-2500.126", "HNL", "HNL -2,500.13"},
		{"12", "", "12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in), tt.cur))
		})
	}
}

func TestGenerateSaleReceipt_DevuelvePDF(t *testing.T) {
	sale := &entity.Sale{
		ID:        "3f1c2a9e-0000-4000-8000-000000000001",
		Total:     decimal.RequireFromString("45.00"),
		CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	mipyme := &entity.Mipyme{Name: "Panadería La Espiga", FiscalID: "J0310000012345", Currency: entity.CurrencyNIO}
	lines := []appsales.ReceiptLine{
		{ProductName: "Pan dulce", Quantity: 10, UnitPrice: decimal.RequireFromString("3.00"), Subtotal: decimal.RequireFromString("30.00")},
		{ProductName: "Rosquilla", Quantity: 5, UnitPrice: decimal.RequireFromString("3.00"), Subtotal: decimal.RequireFromString("15.00")},
	}

	out, err := NewReceiptGenerator().GenerateSaleReceipt(context.Background(), sale, mipyme, lines)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
