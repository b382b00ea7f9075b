package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; los repos no distinguen entre ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner común a pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// NewStore arma todos los repositorios sobre el mismo Querier.
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Mipymes:   NewMipymeRepository(q),
		Units:     NewUnitRepository(q),
		Materials: NewMaterialRepository(q),
		Processes: NewProcessRepository(q),
		Taxes:     NewTaxRepository(q),
		Products:  NewProductRepository(q),
		Recipes:   NewRecipeRepository(q),
		Routings:  NewRoutingRepository(q),
		Sales:     NewSaleRepository(q),
	}
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
