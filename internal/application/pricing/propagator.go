// Package pricing mantiene la foto de precios de los productos al día cuando
// cambian sus entradas (receta, ruta, insumos, procesos, impuestos, defaults).
package pricing

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	appcosting "github.com/jhoicas/mipymes-api/internal/application/costing"
	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// Disparadores reportados en logs y métricas.
const (
	TriggerRecipe   = "recipe"
	TriggerRouting  = "routing"
	TriggerTax      = "tax"
	TriggerMaterial = "material"
	TriggerProcess  = "process"
	TriggerDefaults = "tenant_defaults"
	TriggerProduct  = "product"
	TriggerSweep    = "sweep"
)

// Propagator recalcula y persiste la foto de precios de los productos afectados.
// Los comandos On* reciben el Store de la transacción del llamador, así la
// mutación y el recálculo se confirman juntos.
type Propagator struct {
	tx      ports.TxRunner
	engine  *costing.Engine
	metrics ports.Recorder
	log     zerolog.Logger
	now     func() time.Time
}

// NewPropagator construye el recalculador.
func NewPropagator(tx ports.TxRunner, engine *costing.Engine, metrics ports.Recorder, log zerolog.Logger) *Propagator {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	return &Propagator{tx: tx, engine: engine, metrics: metrics, log: log, now: time.Now}
}

// OnRecipeChanged recalcula el producto dueño de la receta.
func (p *Propagator) OnRecipeChanged(ctx context.Context, s repository.Store, tenantID, productID string) error {
	_, err := p.reprice(ctx, s, TriggerRecipe, tenantID, []string{productID})
	return err
}

// OnRoutingChanged recalcula el producto dueño de la ruta.
func (p *Propagator) OnRoutingChanged(ctx context.Context, s repository.Store, tenantID, productID string) error {
	_, err := p.reprice(ctx, s, TriggerRouting, tenantID, []string{productID})
	return err
}

// OnProductChanged recalcula un producto tras editar su política de ganancia o precio manual.
func (p *Propagator) OnProductChanged(ctx context.Context, s repository.Store, tenantID, productID string) error {
	_, err := p.reprice(ctx, s, TriggerProduct, tenantID, []string{productID})
	return err
}

// OnTaxChanged recalcula todos los productos que referencian el impuesto.
func (p *Propagator) OnTaxChanged(ctx context.Context, s repository.Store, tenantID, taxID string) error {
	ids, err := s.Taxes.ProductIDs(ctx, tenantID, taxID)
	if err != nil {
		return err
	}
	_, err = p.reprice(ctx, s, TriggerTax, tenantID, ids)
	return err
}

// OnTaxRemoved recalcula los productos capturados antes de borrar el impuesto.
func (p *Propagator) OnTaxRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error {
	_, err := p.reprice(ctx, s, TriggerTax, tenantID, productIDs)
	return err
}

// OnMaterialChanged recalcula los productos cuya receta usa el insumo.
func (p *Propagator) OnMaterialChanged(ctx context.Context, s repository.Store, tenantID, materialID string) error {
	ids, err := s.Recipes.ProductIDsByMaterial(ctx, materialID)
	if err != nil {
		return err
	}
	_, err = p.reprice(ctx, s, TriggerMaterial, tenantID, ids)
	return err
}

// OnMaterialRemoved recalcula los productos capturados antes de borrar el insumo.
func (p *Propagator) OnMaterialRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error {
	_, err := p.reprice(ctx, s, TriggerMaterial, tenantID, productIDs)
	return err
}

// OnProcessChanged recalcula los productos cuya ruta usa el proceso.
func (p *Propagator) OnProcessChanged(ctx context.Context, s repository.Store, tenantID, processID string) error {
	ids, err := s.Routings.ProductIDsByProcess(ctx, processID)
	if err != nil {
		return err
	}
	_, err = p.reprice(ctx, s, TriggerProcess, tenantID, ids)
	return err
}

// OnProcessRemoved recalcula los productos capturados antes de borrar el proceso.
func (p *Propagator) OnProcessRemoved(ctx context.Context, s repository.Store, tenantID string, productIDs []string) error {
	_, err := p.reprice(ctx, s, TriggerProcess, tenantID, productIDs)
	return err
}

// OnTenantDefaultsChanged recalcula los productos con política TenantDefault.
func (p *Propagator) OnTenantDefaultsChanged(ctx context.Context, s repository.Store, tenantID string) error {
	ids, err := s.Products.ListIDsByProfitMode(ctx, tenantID, entity.ProfitTenantDefault)
	if err != nil {
		return err
	}
	_, err = p.reprice(ctx, s, TriggerDefaults, tenantID, ids)
	return err
}

// RecalculateTenant recalcula todos los productos de la mipyme en su propia transacción.
func (p *Propagator) RecalculateTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := p.tx.Run(ctx, func(s repository.Store) error {
		m, err := s.Mipymes.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		ids, err := s.Products.ListIDs(ctx, tenantID)
		if err != nil {
			return err
		}
		n, err = p.reprice(ctx, s, TriggerSweep, tenantID, ids)
		return err
	})
	return n, err
}

// RecalculateAll barre todas las mipymes. Un tenant que falla no detiene a los demás.
func (p *Propagator) RecalculateAll(ctx context.Context) (int, error) {
	ids, err := p.tenantIDs(ctx)
	if err != nil {
		return 0, err
	}
	var (
		total int
		errs  []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := p.RecalculateTenant(ctx, id)
		if err != nil {
			p.log.Error().Err(err).Str("tenant_id", id).Msg("barrido de precios falló")
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

func (p *Propagator) tenantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := p.tx.Run(ctx, func(s repository.Store) error {
		var err error
		ids, err = s.Mipymes.ListIDs(ctx)
		return err
	})
	return ids, err
}

// reprice carga cada ficha una sola vez y guarda la foto redondeada.
// Un producto que ya no existe para el tenant se ignora.
func (p *Propagator) reprice(ctx context.Context, s repository.Store, trigger, tenantID string, productIDs []string) (int, error) {
	ids := dedupe(productIDs)
	if len(ids) == 0 {
		return 0, nil
	}
	at := p.now()
	n := 0
	for _, id := range ids {
		sheet, err := appcosting.LoadSheet(ctx, s, tenantID, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return n, err
		}
		b, err := p.engine.Compute(*sheet)
		if err != nil {
			return n, err
		}
		if err := s.Products.UpdatePricing(ctx, id, b.Pricing(at)); err != nil {
			return n, err
		}
		n++
	}
	p.metrics.ProductsRepriced(trigger, n)
	p.log.Debug().
		Str("tenant_id", tenantID).
		Str("trigger", trigger).
		Int("products", n).
		Msg("precios recalculados")
	return n, nil
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
