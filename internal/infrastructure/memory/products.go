package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// TaxRepo ───────────────────────────────────────────────────────────────────

type TaxRepo struct{ db *session }

func (r *TaxRepo) Create(_ context.Context, t *entity.Tax) error {
	defer r.db.lock()()
	r.db.s.taxes[t.ID] = *t
	return nil
}

func (r *TaxRepo) GetByID(_ context.Context, mipymeID, id string) (*entity.Tax, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.s.taxes[id]
	if !ok || t.MipymeID != mipymeID {
		return nil, nil
	}
	return &t, nil
}

func (r *TaxRepo) Update(_ context.Context, t *entity.Tax) error {
	defer r.db.lock()()
	if cur, ok := r.db.s.taxes[t.ID]; ok && cur.MipymeID == t.MipymeID {
		r.db.s.taxes[t.ID] = *t
	}
	return nil
}

func (r *TaxRepo) Delete(_ context.Context, mipymeID, id string) error {
	defer r.db.lock()()
	t, ok := r.db.s.taxes[id]
	if !ok || t.MipymeID != mipymeID {
		return domain.ErrNotFound
	}
	delete(r.db.s.taxes, id)
	for _, set := range r.db.s.productTaxes {
		delete(set, id)
	}
	return nil
}

func (r *TaxRepo) ListByMipyme(_ context.Context, mipymeID string) ([]*entity.Tax, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Tax
	for _, t := range r.db.s.taxes {
		if t.MipymeID == mipymeID {
			list = append(list, &t)
		}
	}
	sortTaxes(list)
	return list, nil
}

func (r *TaxRepo) ListByProduct(_ context.Context, mipymeID, productID string) ([]*entity.Tax, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Tax
	for id := range r.db.s.productTaxes[productID] {
		if t, ok := r.db.s.taxes[id]; ok && t.MipymeID == mipymeID {
			list = append(list, &t)
		}
	}
	sortTaxes(list)
	return list, nil
}

func (r *TaxRepo) Assign(_ context.Context, productID, taxID string) error {
	defer r.db.lock()()
	if _, ok := r.db.s.products[productID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.s.taxes[taxID]; !ok {
		return domain.ErrNotFound
	}
	set, ok := r.db.s.productTaxes[productID]
	if !ok {
		set = map[string]struct{}{}
		r.db.s.productTaxes[productID] = set
	}
	set[taxID] = struct{}{}
	return nil
}

func (r *TaxRepo) Unassign(_ context.Context, productID, taxID string) error {
	defer r.db.lock()()
	delete(r.db.s.productTaxes[productID], taxID)
	return nil
}

func (r *TaxRepo) ProductIDs(_ context.Context, mipymeID, taxID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	if t, ok := r.db.s.taxes[taxID]; !ok || t.MipymeID != mipymeID {
		return nil, nil
	}
	var ids []string
	for pid, set := range r.db.s.productTaxes {
		if _, ok := set[taxID]; ok {
			ids = append(ids, pid)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func sortTaxes(list []*entity.Tax) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

// ProductRepo ───────────────────────────────────────────────────────────────

type ProductRepo struct{ db *session }

func (r *ProductRepo) nameTaken(mipymeID, name, exceptID string) bool {
	for _, p := range r.db.s.products {
		if p.MipymeID == mipymeID && p.Name == name && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.db.lock()()
	if r.nameTaken(p.MipymeID, p.Name, "") {
		return domain.ErrDuplicate
	}
	r.db.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, mipymeID, id string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.s.products[id]
	if !ok || p.MipymeID != mipymeID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByName(_ context.Context, mipymeID, name string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.s.products {
		if p.MipymeID == mipymeID && p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(_ context.Context, mipymeID string, ids []string) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*entity.Product
	for _, id := range uniqueSorted(ids) {
		if p, ok := r.db.s.products[id]; ok && p.MipymeID == mipymeID {
			out = append(out, &p)
		}
	}
	return out, nil
}

// Update conserva stock y foto de precios guardados.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.db.lock()()
	cur, ok := r.db.s.products[p.ID]
	if !ok || cur.MipymeID != p.MipymeID {
		return nil
	}
	if r.nameTaken(p.MipymeID, p.Name, p.ID) {
		return domain.ErrDuplicate
	}
	next := *p
	next.Stock = cur.Stock
	next.ProductionCost = cur.ProductionCost
	next.Margin = cur.Margin
	next.PriceWithTaxes = cur.PriceWithTaxes
	next.PricedAt = cur.PricedAt
	r.db.s.products[p.ID] = next
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	defer r.db.lock()()
	if p, ok := r.db.s.products[id]; ok {
		p.Stock = stock
		r.db.s.products[id] = p
	}
	return nil
}

func (r *ProductRepo) UpdatePricing(_ context.Context, id string, pr entity.Pricing) error {
	defer r.db.lock()()
	if p, ok := r.db.s.products[id]; ok {
		p.Apply(pr)
		r.db.s.products[id] = p
	}
	return nil
}

func (r *ProductRepo) ListByMipyme(_ context.Context, mipymeID string, limit, offset int) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.db.s.products {
		if p.MipymeID == mipymeID {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *ProductRepo) ListIDs(_ context.Context, mipymeID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedKeys(r.db.s.products, func(p entity.Product) bool { return p.MipymeID == mipymeID }), nil
}

func (r *ProductRepo) ListIDsByProfitMode(_ context.Context, mipymeID string, mode entity.ProfitMode) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedKeys(r.db.s.products, func(p entity.Product) bool {
		return p.MipymeID == mipymeID && p.Profit.Mode == mode
	}), nil
}

// Delete borra en cascada receta, ruta, estándares e impuestos asociados.
func (r *ProductRepo) Delete(_ context.Context, mipymeID, id string) error {
	defer r.db.lock()()
	p, ok := r.db.s.products[id]
	if !ok || p.MipymeID != mipymeID {
		return domain.ErrNotFound
	}
	for _, sale := range r.db.s.sales {
		for _, it := range sale.Items {
			if it.ProductID == id {
				return domain.ErrConflict
			}
		}
	}
	delete(r.db.s.products, id)
	delete(r.db.s.standards, id)
	delete(r.db.s.productTaxes, id)
	for lid, l := range r.db.s.recipes {
		if l.ProductID == id {
			delete(r.db.s.recipes, lid)
		}
	}
	for sid, s := range r.db.s.routings {
		if s.ProductID == id {
			delete(r.db.s.routings, sid)
		}
	}
	return nil
}

func (r *ProductRepo) GetStandards(_ context.Context, productID string) (*entity.Standards, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.s.standards[productID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *ProductRepo) SaveStandards(_ context.Context, s *entity.Standards) error {
	defer r.db.lock()()
	r.db.s.standards[s.ProductID] = *s
	return nil
}
