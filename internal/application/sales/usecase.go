// Package sales registra ventas de productos terminados contra su stock.
package sales

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// SaleUseCase ledger de ventas: registro transaccional, consulta e impresión.
type SaleUseCase struct {
	store     repository.Store
	tx        ports.TxRunner
	generator ReceiptPDFGenerator
	metrics   ports.Recorder
	log       zerolog.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(store repository.Store, tx ports.TxRunner, generator ReceiptPDFGenerator, metrics ports.Recorder, log zerolog.Logger) *SaleUseCase {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	return &SaleUseCase{store: store, tx: tx, generator: generator, metrics: metrics, log: log, now: time.Now}
}

// RegisterSale registra una venta en una sola transacción. Bloquea todos los
// productos en orden de id y verifica cada uno contra su stock actual (sumando
// líneas repetidas) antes de escribir. Ante cualquier faltante devuelve
// *domain.InsufficientStockError y no persiste nada. El precio unitario es la
// foto del precio de venta del producto en ese momento.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, tenantID, userID string, lines []dto.SaleLineRequest) (*dto.SaleResponse, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("lines", "", "la venta requiere al menos una línea")
	}
	wanted := make(map[string]int64, len(lines))
	for i, l := range lines {
		if l.ProductID == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].product_id", i), "", "requerido")
		}
		if l.Quantity <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].quantity", i), l.Quantity, "debe ser un entero mayor que cero")
		}
		if wanted[l.ProductID] > math.MaxInt64-l.Quantity {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].quantity", i), l.Quantity, "la cantidad total del producto excede el máximo")
		}
		wanted[l.ProductID] += l.Quantity
	}
	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		sale     *entity.Sale
		currency string
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		mipyme, err := s.Mipymes.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if mipyme == nil {
			return domain.ErrNotFound
		}
		currency = mipyme.Currency

		locked, err := s.Products.GetForUpdate(ctx, tenantID, ids)
		if err != nil {
			return err
		}
		products := make(map[string]*entity.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}
		var shortfalls []domain.Shortfall
		for _, id := range ids {
			p, ok := products[id]
			if !ok {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			if p.Stock < wanted[id] {
				shortfalls = append(shortfalls, domain.Shortfall{
					Kind:      domain.StockProduct,
					ID:        p.ID,
					Name:      p.Name,
					Available: decimal.NewFromInt(p.Stock),
					Required:  decimal.NewFromInt(wanted[id]),
				})
			}
		}
		if len(shortfalls) > 0 {
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		sale = &entity.Sale{
			ID:        uuid.New().String(),
			MipymeID:  tenantID,
			CreatedBy: userID,
			CreatedAt: uc.now(),
			Items:     make([]entity.SaleItem, 0, len(lines)),
		}
		for _, l := range lines {
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: products[l.ProductID].SalePrice,
			})
		}
		sale.RecalculateTotal()
		if err := s.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, id := range ids {
			if err := s.Products.UpdateStock(ctx, id, products[id].Stock-wanted[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var short *domain.InsufficientStockError
		if errors.As(err, &short) {
			uc.metrics.SaleRejected()
			uc.log.Warn().Str("tenant_id", tenantID).Err(err).Msg("venta rechazada por stock insuficiente")
		}
		return nil, err
	}
	total, _ := sale.Total.Float64()
	uc.metrics.SaleRegistered(total)
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("sale_id", sale.ID).
		Str("user_id", userID).
		Int("items", len(sale.Items)).
		Str("total", sale.Total.String()).
		Msg("venta registrada")
	return toSaleResponse(sale, currency), nil
}

// GetSale devuelve la venta con sus ítems.
func (uc *SaleUseCase) GetSale(ctx context.Context, tenantID, id string) (*dto.SaleResponse, error) {
	sale, mipyme, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, mipyme.Currency), nil
}

// ListSales historial de ventas, más recientes primero, con rango de fechas opcional.
func (uc *SaleUseCase) ListSales(ctx context.Context, tenantID string, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, domain.NewValidationError("to", in.To.Format(time.RFC3339), "anterior a from")
	}
	mipyme, err := uc.store.Mipymes.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if mipyme == nil {
		return nil, domain.ErrNotFound
	}
	in.DefaultPage()
	list, err := uc.store.Sales.List(ctx, tenantID, repository.SaleFilter{
		From:   in.From,
		To:     in.To,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, mipyme.Currency))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ReceiptPDF genera el comprobante imprimible usando solo los valores guardados de la venta.
func (uc *SaleUseCase) ReceiptPDF(ctx context.Context, tenantID, id string) ([]byte, string, error) {
	sale, mipyme, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, "", err
	}
	lines := make([]ReceiptLine, 0, len(sale.Items))
	names := make(map[string]string, len(sale.Items))
	for _, it := range sale.Items {
		name, ok := names[it.ProductID]
		if !ok {
			p, err := uc.store.Products.GetByID(ctx, tenantID, it.ProductID)
			if err != nil {
				return nil, "", err
			}
			name = it.ProductID
			if p != nil {
				name = p.Name
			}
			names[it.ProductID] = name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, mipyme, lines)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: %w", err)
	}
	return pdf, fmt.Sprintf("venta-%s.pdf", sale.ID), nil
}

func (uc *SaleUseCase) load(ctx context.Context, tenantID, id string) (*entity.Sale, *entity.Mipyme, error) {
	sale, err := uc.store.Sales.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	mipyme, err := uc.store.Mipymes.GetByID(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	if mipyme == nil {
		return nil, nil, domain.ErrNotFound
	}
	return sale, mipyme, nil
}

func toSaleResponse(s *entity.Sale, currency string) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:        s.ID,
		CreatedBy: s.CreatedBy,
		Total:     s.Total,
		Currency:  currency,
		CreatedAt: s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out
}
