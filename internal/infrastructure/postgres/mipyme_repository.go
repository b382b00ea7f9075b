package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

var _ repository.MipymeRepository = (*MipymeRepo)(nil)

// MipymeRepo persistencia del tenant sobre PostgreSQL.
type MipymeRepo struct {
	q Querier
}

// NewMipymeRepository construye el adaptador. Pasar pool o tx.
func NewMipymeRepository(q Querier) *MipymeRepo {
	return &MipymeRepo{q: q}
}

const mipymeColumns = `id, name, fiscal_id, default_profit_pct, default_waste_pct, currency, permitted_units, created_at, updated_at`

func scanMipyme(s scanner) (*entity.Mipyme, error) {
	var m entity.Mipyme
	err := s.Scan(&m.ID, &m.Name, &m.FiscalID, &m.DefaultProfitPct, &m.DefaultWastePct,
		&m.Currency, &m.PermittedUnits, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MipymeRepo) Create(ctx context.Context, m *entity.Mipyme) error {
	units := m.PermittedUnits
	if units == nil {
		units = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO mipymes (`+mipymeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.FiscalID, m.DefaultProfitPct, m.DefaultWastePct, m.Currency, units, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert mipyme: %w", err)
	}
	return nil
}

func (r *MipymeRepo) GetByID(ctx context.Context, id string) (*entity.Mipyme, error) {
	m, err := scanMipyme(r.q.QueryRow(ctx, `SELECT `+mipymeColumns+` FROM mipymes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mipyme: %w", err)
	}
	return m, nil
}

func (r *MipymeRepo) GetByFiscalID(ctx context.Context, fiscalID string) (*entity.Mipyme, error) {
	m, err := scanMipyme(r.q.QueryRow(ctx, `SELECT `+mipymeColumns+` FROM mipymes WHERE fiscal_id = $1`, fiscalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mipyme by fiscal id: %w", err)
	}
	return m, nil
}

// Update guarda nombre y parámetros de producción.
func (r *MipymeRepo) Update(ctx context.Context, m *entity.Mipyme) error {
	units := m.PermittedUnits
	if units == nil {
		units = []string{}
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE mipymes SET name = $2, default_profit_pct = $3, default_waste_pct = $4,
			currency = $5, permitted_units = $6, updated_at = $7
		WHERE id = $1`,
		m.ID, m.Name, m.DefaultProfitPct, m.DefaultWastePct, m.Currency, units, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update mipyme: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MipymeRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM mipymes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list mipymes: %w", err)
	}
	return collectIDs(rows)
}
