package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
)

// MipymeRepo ────────────────────────────────────────────────────────────────

type MipymeRepo struct{ db *session }

func (r *MipymeRepo) Create(_ context.Context, m *entity.Mipyme) error {
	defer r.db.lock()()
	for _, existing := range r.db.s.mipymes {
		if existing.FiscalID == m.FiscalID {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	cp.PermittedUnits = append([]string(nil), m.PermittedUnits...)
	r.db.s.mipymes[m.ID] = cp
	return nil
}

func (r *MipymeRepo) GetByID(_ context.Context, id string) (*entity.Mipyme, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.s.mipymes[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MipymeRepo) GetByFiscalID(_ context.Context, fiscalID string) (*entity.Mipyme, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, m := range r.db.s.mipymes {
		if m.FiscalID == fiscalID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MipymeRepo) Update(_ context.Context, m *entity.Mipyme) error {
	defer r.db.lock()()
	if _, ok := r.db.s.mipymes[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	cp.PermittedUnits = append([]string(nil), m.PermittedUnits...)
	r.db.s.mipymes[m.ID] = cp
	return nil
}

func (r *MipymeRepo) ListIDs(context.Context) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedKeys(r.db.s.mipymes, nil), nil
}

// UnitRepo ──────────────────────────────────────────────────────────────────

type UnitRepo struct{ db *session }

func (r *UnitRepo) Create(_ context.Context, u *entity.UnitOfMeasure) error {
	defer r.db.lock()()
	for _, existing := range r.db.s.units {
		if existing.Name == u.Name {
			return domain.ErrDuplicate
		}
	}
	r.db.s.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.UnitOfMeasure, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UnitRepo) List(context.Context) ([]*entity.UnitOfMeasure, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.UnitOfMeasure, 0, len(r.db.s.units))
	for _, u := range r.db.s.units {
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// MaterialRepo ──────────────────────────────────────────────────────────────

type MaterialRepo struct{ db *session }

func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	defer r.db.lock()()
	if _, ok := r.db.s.units[m.UnitID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) GetByID(_ context.Context, mipymeID, id string) (*entity.Material, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.s.materials[id]
	if !ok || m.MipymeID != mipymeID {
		return nil, nil
	}
	return &m, nil
}

func (r *MaterialRepo) GetByIDs(_ context.Context, mipymeID string, ids []string) ([]*entity.Material, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*entity.Material
	for _, id := range uniqueSorted(ids) {
		if m, ok := r.db.s.materials[id]; ok && m.MipymeID == mipymeID {
			out = append(out, &m)
		}
	}
	return out, nil
}

// GetForUpdate en memoria equivale a GetByIDs: el TxRunner ya serializa.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, mipymeID string, ids []string) ([]*entity.Material, error) {
	return r.GetByIDs(ctx, mipymeID, ids)
}

func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	defer r.db.lock()()
	cur, ok := r.db.s.materials[m.ID]
	if !ok || cur.MipymeID != m.MipymeID {
		return nil
	}
	if _, ok := r.db.s.units[m.UnitID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	cp.Stock = cur.Stock
	r.db.s.materials[m.ID] = cp
	return nil
}

func (r *MaterialRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	if stock.IsNegative() {
		return domain.ErrInsufficientStock
	}
	defer r.db.lock()()
	m, ok := r.db.s.materials[id]
	if !ok {
		return nil
	}
	m.Stock = stock
	r.db.s.materials[id] = m
	return nil
}

func (r *MaterialRepo) ListByMipyme(_ context.Context, mipymeID string, limit, offset int) ([]*entity.Material, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Material
	for _, m := range r.db.s.materials {
		if m.MipymeID == mipymeID {
			list = append(list, &m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *MaterialRepo) Delete(_ context.Context, mipymeID, id string) error {
	defer r.db.lock()()
	m, ok := r.db.s.materials[id]
	if !ok || m.MipymeID != mipymeID {
		return domain.ErrNotFound
	}
	delete(r.db.s.materials, id)
	for lid, l := range r.db.s.recipes {
		if l.MaterialID == id {
			delete(r.db.s.recipes, lid)
		}
	}
	return nil
}

// ProcessRepo ───────────────────────────────────────────────────────────────

type ProcessRepo struct{ db *session }

func (r *ProcessRepo) Create(_ context.Context, p *entity.Process) error {
	defer r.db.lock()()
	r.db.s.processes[p.ID] = *p
	return nil
}

func (r *ProcessRepo) GetByID(_ context.Context, mipymeID, id string) (*entity.Process, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.s.processes[id]
	if !ok || p.MipymeID != mipymeID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProcessRepo) GetByIDs(_ context.Context, mipymeID string, ids []string) ([]*entity.Process, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []*entity.Process
	for _, id := range uniqueSorted(ids) {
		if p, ok := r.db.s.processes[id]; ok && p.MipymeID == mipymeID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *ProcessRepo) Update(_ context.Context, p *entity.Process) error {
	defer r.db.lock()()
	if cur, ok := r.db.s.processes[p.ID]; ok && cur.MipymeID == p.MipymeID {
		r.db.s.processes[p.ID] = *p
	}
	return nil
}

func (r *ProcessRepo) ListByMipyme(_ context.Context, mipymeID string, limit, offset int) ([]*entity.Process, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Process
	for _, p := range r.db.s.processes {
		if p.MipymeID == mipymeID {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *ProcessRepo) Delete(_ context.Context, mipymeID, id string) error {
	defer r.db.lock()()
	p, ok := r.db.s.processes[id]
	if !ok || p.MipymeID != mipymeID {
		return domain.ErrNotFound
	}
	delete(r.db.s.processes, id)
	for sid, s := range r.db.s.routings {
		if s.ProcessID == id {
			delete(r.db.s.routings, sid)
		}
	}
	return nil
}
