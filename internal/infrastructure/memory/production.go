package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// RecipeRepo ────────────────────────────────────────────────────────────────

type RecipeRepo struct{ db *session }

func (r *RecipeRepo) AddLine(_ context.Context, l *entity.RecipeLine) error {
	defer r.db.lock()()
	if _, ok := r.db.s.products[l.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.s.materials[l.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.s.recipes {
		if existing.ProductID == l.ProductID && existing.MaterialID == l.MaterialID {
			return domain.ErrDuplicate
		}
	}
	r.db.s.recipes[l.ID] = *l
	return nil
}

func (r *RecipeRepo) GetLine(_ context.Context, productID, id string) (*entity.RecipeLine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	l, ok := r.db.s.recipes[id]
	if !ok || l.ProductID != productID {
		return nil, nil
	}
	return &l, nil
}

func (r *RecipeRepo) UpdateLine(_ context.Context, l *entity.RecipeLine) error {
	defer r.db.lock()()
	if cur, ok := r.db.s.recipes[l.ID]; ok && cur.ProductID == l.ProductID {
		cur.Quantity = l.Quantity
		cur.WastePct = l.WastePct
		r.db.s.recipes[l.ID] = cur
	}
	return nil
}

func (r *RecipeRepo) DeleteLine(_ context.Context, productID, id string) error {
	defer r.db.lock()()
	l, ok := r.db.s.recipes[id]
	if !ok || l.ProductID != productID {
		return domain.ErrNotFound
	}
	delete(r.db.s.recipes, id)
	return nil
}

func (r *RecipeRepo) ListLines(_ context.Context, productID string) ([]*entity.RecipeLine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.RecipeLine
	for _, l := range r.db.s.recipes {
		if l.ProductID == productID {
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialID < list[j].MaterialID })
	return list, nil
}

func (r *RecipeRepo) ProductIDsByMaterial(_ context.Context, materialID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var ids []string
	for _, l := range r.db.s.recipes {
		if l.MaterialID == materialID {
			ids = append(ids, l.ProductID)
		}
	}
	return uniqueSorted(ids), nil
}

// RoutingRepo ───────────────────────────────────────────────────────────────

type RoutingRepo struct{ db *session }

func (r *RoutingRepo) AddStep(_ context.Context, s *entity.RoutingStep) error {
	defer r.db.lock()()
	if _, ok := r.db.s.products[s.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.s.processes[s.ProcessID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.s.routings {
		if existing.ProductID == s.ProductID && existing.ProcessID == s.ProcessID {
			return domain.ErrDuplicate
		}
	}
	r.db.s.routings[s.ID] = *s
	return nil
}

func (r *RoutingRepo) GetStep(_ context.Context, productID, id string) (*entity.RoutingStep, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.s.routings[id]
	if !ok || s.ProductID != productID {
		return nil, nil
	}
	return &s, nil
}

func (r *RoutingRepo) UpdateStep(_ context.Context, s *entity.RoutingStep) error {
	defer r.db.lock()()
	if cur, ok := r.db.s.routings[s.ID]; ok && cur.ProductID == s.ProductID {
		cur.Minutes = s.Minutes
		r.db.s.routings[s.ID] = cur
	}
	return nil
}

func (r *RoutingRepo) DeleteStep(_ context.Context, productID, id string) error {
	defer r.db.lock()()
	s, ok := r.db.s.routings[id]
	if !ok || s.ProductID != productID {
		return domain.ErrNotFound
	}
	delete(r.db.s.routings, id)
	return nil
}

func (r *RoutingRepo) ListSteps(_ context.Context, productID string) ([]*entity.RoutingStep, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.RoutingStep
	for _, s := range r.db.s.routings {
		if s.ProductID == productID {
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProcessID < list[j].ProcessID })
	return list, nil
}

func (r *RoutingRepo) ProductIDsByProcess(_ context.Context, processID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var ids []string
	for _, s := range r.db.s.routings {
		if s.ProcessID == processID {
			ids = append(ids, s.ProductID)
		}
	}
	return uniqueSorted(ids), nil
}

// SaleRepo ──────────────────────────────────────────────────────────────────

type SaleRepo struct{ db *session }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	defer r.db.lock()()
	s.RecalculateTotal()
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	for i := range cp.Items {
		if _, ok := r.db.s.products[cp.Items[i].ProductID]; !ok {
			return domain.ErrNotFound
		}
		cp.Items[i].SaleID = s.ID
	}
	r.db.s.sales[s.ID] = cp
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, mipymeID, id string) (*entity.Sale, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.s.sales[id]
	if !ok || s.MipymeID != mipymeID {
		return nil, nil
	}
	s.Items = append([]entity.SaleItem(nil), s.Items...)
	return &s, nil
}

func (r *SaleRepo) List(_ context.Context, mipymeID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Sale
	for _, s := range r.db.s.sales {
		if s.MipymeID != mipymeID || !inRange(s.CreatedAt, f.From, f.To) {
			continue
		}
		s.Items = nil
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}
