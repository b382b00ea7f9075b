package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo persistencia de insumos (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, mipyme_id, name, description, unit_id, cost_per_unit, stock, created_at, updated_at`

func scanMaterial(s scanner) (*entity.Material, error) {
	var m entity.Material
	if err := s.Scan(&m.ID, &m.MipymeID, &m.Name, &m.Description, &m.UnitID,
		&m.CostPerUnit, &m.Stock, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepo) queryMany(ctx context.Context, sql string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO materials (`+materialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.MipymeID, m.Name, m.Description, m.UnitID, m.CostPerUnit, m.Stock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("unidad de medida: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, mipymeID, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE mipyme_id = $1 AND id = $2`, mipymeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) GetByIDs(ctx context.Context, mipymeID string, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMany(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE mipyme_id = $1 AND id = ANY($2::uuid[]) ORDER BY id`,
		mipymeID, ids)
}

// GetForUpdate bloquea las filas en orden de id para que lotes y ventas concurrentes no se crucen.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, mipymeID string, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMany(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE mipyme_id = $1 AND id = ANY($2::uuid[]) ORDER BY id FOR UPDATE`,
		mipymeID, ids)
}

// Update edita datos y costo. El stock solo cambia por UpdateStock.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	_, err := r.q.Exec(ctx, `
		UPDATE materials SET name = $3, description = $4, unit_id = $5, cost_per_unit = $6, updated_at = $7
		WHERE mipyme_id = $1 AND id = $2`,
		m.MipymeID, m.ID, m.Name, m.Description, m.UnitID, m.CostPerUnit, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("unidad de medida: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE materials SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

func (r *MaterialRepo) ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Material, error) {
	return r.queryMany(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE mipyme_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		mipymeID, limit, offset)
}

// Delete borra el insumo; sus líneas de receta caen por cascada.
func (r *MaterialRepo) Delete(ctx context.Context, mipymeID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE mipyme_id = $1 AND id = $2`, mipymeID, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
