// Package production planifica y ejecuta lotes de producción sobre el stock de insumos.
package production

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mipymes-api/internal/application/costing"
	"github.com/jhoicas/mipymes-api/internal/application/dto"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	domaincosting "github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/production"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// BatchUseCase proyección (lectura) y ejecución transaccional de lotes.
type BatchUseCase struct {
	store   repository.Store
	tx      ports.TxRunner
	engine  *domaincosting.Engine
	metrics ports.Recorder
	log     zerolog.Logger
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(store repository.Store, tx ports.TxRunner, engine *domaincosting.Engine, metrics ports.Recorder, log zerolog.Logger) *BatchUseCase {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	return &BatchUseCase{store: store, tx: tx, engine: engine, metrics: metrics, log: log}
}

// PlanBatch proyecta consumo, costos y factibilidad de producir units unidades.
func (uc *BatchUseCase) PlanBatch(ctx context.Context, tenantID, productID string, units int64) (*dto.BatchPlanResponse, error) {
	if units <= 0 {
		return nil, domain.NewValidationError("units", units, "debe ser un entero mayor que cero")
	}
	sheet, err := costing.LoadSheet(ctx, uc.store, tenantID, productID)
	if err != nil {
		return nil, err
	}
	plan, err := production.Plan(uc.engine, *sheet, units)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan, sheet.Mipyme.Currency), nil
}

// ExecuteBatch produce units unidades en una sola transacción: bloquea el producto
// y sus insumos, vuelve a planificar con los valores bloqueados y, si falta algún
// insumo, devuelve *domain.InsufficientStockError sin escribir nada. Si alcanza,
// descuenta cada insumo y suma units al stock del producto.
func (uc *BatchUseCase) ExecuteBatch(ctx context.Context, tenantID, productID string, units int64, userID string) (*dto.BatchResultResponse, error) {
	if units <= 0 {
		return nil, domain.NewValidationError("units", units, "debe ser un entero mayor que cero")
	}
	var (
		plan     *production.BatchPlan
		currency string
		stock    int64
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		sheet, err := costing.LoadSheetForUpdate(ctx, s, tenantID, productID)
		if err != nil {
			return err
		}
		plan, err = production.Plan(uc.engine, *sheet, units)
		if err != nil {
			return err
		}
		if err := plan.Err(); err != nil {
			return err
		}
		if sheet.Product.Stock > math.MaxInt64-units {
			return domain.NewValidationError("units", units, "el stock del producto excedería el máximo")
		}
		for _, req := range plan.Materials {
			// el stock se guarda con 2 decimales; el remanente se redondea hacia abajo
			remaining := req.Available.Sub(req.Required).RoundFloor(2)
			if err := s.Materials.UpdateStock(ctx, req.MaterialID, remaining); err != nil {
				return err
			}
		}
		stock = sheet.Product.Stock + units
		if err := s.Products.UpdateStock(ctx, productID, stock); err != nil {
			return err
		}
		currency = sheet.Mipyme.Currency
		return nil
	})
	if err != nil {
		var short *domain.InsufficientStockError
		if errors.As(err, &short) {
			uc.metrics.BatchRejected()
			uc.log.Warn().
				Str("tenant_id", tenantID).
				Str("product_id", productID).
				Int64("units", units).
				Int("shortfalls", len(short.Shortfalls)).
				Msg("lote rechazado por stock insuficiente")
		}
		return nil, err
	}
	uc.metrics.BatchExecuted(units)
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("product_id", productID).
		Str("user_id", userID).
		Int64("units", units).
		Int64("product_stock", stock).
		Str("total_cost", domaincosting.Money(plan.TotalCost).String()).
		Msg("lote ejecutado")
	return &dto.BatchResultResponse{Plan: *toPlanResponse(plan, currency), ProductStock: stock}, nil
}

func toPlanResponse(p *production.BatchPlan, currency string) *dto.BatchPlanResponse {
	out := &dto.BatchPlanResponse{
		ProductID:        p.ProductID,
		ProductName:      p.ProductName,
		Units:            p.Units,
		Currency:         currency,
		Materials:        make([]dto.MaterialRequirementResponse, 0, len(p.Materials)),
		Processes:        make([]dto.ProcessRequirementResponse, 0, len(p.Processes)),
		MaterialCost:     domaincosting.Money(p.MaterialCost),
		ProcessCost:      domaincosting.Money(p.ProcessCost),
		TotalCost:        domaincosting.Money(p.TotalCost),
		ProjectedRevenue: domaincosting.Money(p.ProjectedRevenue),
		ProjectedMargin:  domaincosting.Money(p.ProjectedMargin),
		Feasible:         p.Feasible,
		Shortfalls:       dto.ToShortfalls(p.Shortfalls),
	}
	for _, m := range p.Materials {
		out.Materials = append(out.Materials, dto.MaterialRequirementResponse{
			MaterialID:  m.MaterialID,
			Name:        m.Name,
			PerUnit:     m.PerUnit,
			WastePct:    m.WastePct,
			Required:    m.Required,
			Available:   m.Available,
			CostPerUnit: m.CostPerUnit,
			Cost:        domaincosting.Money(m.Cost),
			Sufficient:  m.Sufficient,
		})
	}
	for _, pr := range p.Processes {
		out.Processes = append(out.Processes, dto.ProcessRequirementResponse{
			ProcessID:   pr.ProcessID,
			Name:        pr.Name,
			Minutes:     pr.Minutes,
			CostPerHour: pr.CostPerHour,
			Cost:        domaincosting.Money(pr.Cost),
		})
	}
	return out
}
