package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator genera el comprobante imprimible de una venta guardada.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, mipyme *entity.Mipyme, lines []ReceiptLine) ([]byte, error)
}
