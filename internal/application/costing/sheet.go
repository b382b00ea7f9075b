// Package costing arma la ficha de costos desde los repositorios y expone el
// desglose de un producto.
package costing

import (
	"context"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// LoadSheet lee producto, mipyme, receta, ruta e impuestos del producto.
// Una línea cuyo insumo o proceso no existe queda con referencia nil y el
// motor la reporta como domain.IntegrityError.
func LoadSheet(ctx context.Context, s repository.Store, tenantID, productID string) (*costing.Sheet, error) {
	product, err := s.Products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return loadSheet(ctx, s, tenantID, product, false)
}

// LoadSheetForUpdate igual que LoadSheet pero bloquea la fila del producto y
// las de sus insumos (en orden de id). Solo tiene sentido dentro de TxRunner.Run.
func LoadSheetForUpdate(ctx context.Context, s repository.Store, tenantID, productID string) (*costing.Sheet, error) {
	locked, err := s.Products.GetForUpdate(ctx, tenantID, []string{productID})
	if err != nil {
		return nil, err
	}
	var product *entity.Product
	if len(locked) == 1 {
		product = locked[0]
	}
	return loadSheet(ctx, s, tenantID, product, true)
}

func loadSheet(ctx context.Context, s repository.Store, tenantID string, product *entity.Product, lock bool) (*costing.Sheet, error) {
	if product == nil {
		return nil, domain.ErrNotFound
	}
	mipyme, err := s.Mipymes.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if mipyme == nil {
		return nil, domain.ErrNotFound
	}
	sheet := &costing.Sheet{Mipyme: mipyme, Product: product}

	lines, err := s.Recipes.ListLines(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.MaterialID)
		}
		var mats []*entity.Material
		if lock {
			mats, err = s.Materials.GetForUpdate(ctx, tenantID, ids)
		} else {
			mats, err = s.Materials.GetByIDs(ctx, tenantID, ids)
		}
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*entity.Material, len(mats))
		for _, m := range mats {
			byID[m.ID] = m
		}
		for _, l := range lines {
			sheet.Recipe = append(sheet.Recipe, costing.RecipeItem{Line: *l, Material: byID[l.MaterialID]})
		}
	}

	steps, err := s.Routings.ListSteps(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if len(steps) > 0 {
		ids := make([]string, 0, len(steps))
		for _, st := range steps {
			ids = append(ids, st.ProcessID)
		}
		procs, err := s.Processes.GetByIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*entity.Process, len(procs))
		for _, p := range procs {
			byID[p.ID] = p
		}
		for _, st := range steps {
			sheet.Routing = append(sheet.Routing, costing.RoutingItem{Step: *st, Process: byID[st.ProcessID]})
		}
	}

	taxes, err := s.Taxes.ListByProduct(ctx, tenantID, product.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range taxes {
		sheet.Taxes = append(sheet.Taxes, *t)
	}
	return sheet, nil
}
