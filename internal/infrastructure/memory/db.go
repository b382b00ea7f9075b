// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory y en las pruebas de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/mipymes-api/internal/application/ports"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// DB estado completo en memoria. tx serializa transacciones y escrituras sueltas;
// mu protege los mapas.
type DB struct {
	tx sync.Mutex
	mu sync.RWMutex
	s  *state
}

type state struct {
	mipymes      map[string]entity.Mipyme
	units        map[string]entity.UnitOfMeasure
	materials    map[string]entity.Material
	processes    map[string]entity.Process
	taxes        map[string]entity.Tax
	productTaxes map[string]map[string]struct{}
	products     map[string]entity.Product
	standards    map[string]entity.Standards
	recipes      map[string]entity.RecipeLine
	routings     map[string]entity.RoutingStep
	sales        map[string]entity.Sale
}

func newState() *state {
	return &state{
		mipymes:      map[string]entity.Mipyme{},
		units:        map[string]entity.UnitOfMeasure{},
		materials:    map[string]entity.Material{},
		processes:    map[string]entity.Process{},
		taxes:        map[string]entity.Tax{},
		productTaxes: map[string]map[string]struct{}{},
		products:     map[string]entity.Product{},
		standards:    map[string]entity.Standards{},
		recipes:      map[string]entity.RecipeLine{},
		routings:     map[string]entity.RoutingStep{},
		sales:        map[string]entity.Sale{},
	}
}

func (s *state) clone() *state {
	c := newState()
	copyMap(c.mipymes, s.mipymes)
	copyMap(c.units, s.units)
	copyMap(c.materials, s.materials)
	copyMap(c.processes, s.processes)
	copyMap(c.taxes, s.taxes)
	copyMap(c.products, s.products)
	copyMap(c.standards, s.standards)
	copyMap(c.recipes, s.recipes)
	copyMap(c.routings, s.routings)
	for id, sale := range s.sales {
		sale.Items = append([]entity.SaleItem(nil), sale.Items...)
		c.sales[id] = sale
	}
	for pid, set := range s.productTaxes {
		cp := make(map[string]struct{}, len(set))
		for k := range set {
			cp[k] = struct{}{}
		}
		c.productTaxes[pid] = cp
	}
	return c
}

func copyMap[T any](dst, src map[string]T) {
	for k, v := range src {
		dst[k] = v
	}
}

// New crea una base vacía con el catálogo de unidades precargado.
func New() *DB {
	db := &DB{s: newState()}
	names := map[string]string{
		"kg": "Kilogramo", "g": "Gramo", "l": "Litro", "ml": "Mililitro", "un": "Unidad",
		"m": "Metro", "cm": "Centímetro", "m2": "Metro cuadrado", "m3": "Metro cúbico",
	}
	for _, abbr := range entity.UnitAbbreviations {
		id := uuid.NewString()
		db.s.units[id] = entity.UnitOfMeasure{ID: id, Name: names[abbr], Abbreviation: abbr}
	}
	return db
}

// session es la vista de la base que reciben los repositorios. Fuera de una
// transacción (autocommit) cada escritura toma también el candado de
// transacciones, así un rollback nunca pisa escrituras ajenas.
type session struct {
	*DB
	autocommit bool
}

func (s *session) lock() func() {
	if s.autocommit {
		s.tx.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if s.autocommit {
			s.tx.Unlock()
		}
	}
}

// Store devuelve los repositorios sobre esta base (fuera de transacción).
func (db *DB) Store() repository.Store {
	return db.store(true)
}

func (db *DB) store(autocommit bool) repository.Store {
	s := &session{DB: db, autocommit: autocommit}
	return repository.Store{
		Mipymes:   &MipymeRepo{db: s},
		Units:     &UnitRepo{db: s},
		Materials: &MaterialRepo{db: s},
		Processes: &ProcessRepo{db: s},
		Taxes:     &TaxRepo{db: s},
		Products:  &ProductRepo{db: s},
		Recipes:   &RecipeRepo{db: s},
		Routings:  &RoutingRepo{db: s},
		Sales:     &SaleRepo{db: s},
	}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y restaura la foto previa si fn falla.
// Mientras fn corre ninguna escritura fuera de la transacción avanza.
type TxRunner struct {
	db *DB
}

func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Store) error) error {
	r.db.tx.Lock()
	defer r.db.tx.Unlock()

	r.db.mu.RLock()
	snapshot := r.db.s.clone()
	r.db.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(r.db.store(false)); err != nil {
		r.db.mu.Lock()
		r.db.s = snapshot
		r.db.mu.Unlock()
		return err
	}
	return nil
}

func sortedKeys[T any](m map[string]T, keep func(T) bool) []string {
	ids := make([]string, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

func uniqueSorted(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return sortedKeys(set, nil)
}
