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

var _ repository.ProcessRepository = (*ProcessRepo)(nil)

// ProcessRepo persistencia de procesos de producción.
type ProcessRepo struct {
	q Querier
}

func NewProcessRepository(q Querier) *ProcessRepo {
	return &ProcessRepo{q: q}
}

const processColumns = `id, mipyme_id, name, description, cost_per_hour, created_at, updated_at`

func scanProcess(s scanner) (*entity.Process, error) {
	var p entity.Process
	if err := s.Scan(&p.ID, &p.MipymeID, &p.Name, &p.Description, &p.CostPerHour, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProcessRepo) queryMany(ctx context.Context, sql string, args ...any) ([]*entity.Process, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query processes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Process
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, fmt.Errorf("scan process: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProcessRepo) Create(ctx context.Context, p *entity.Process) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO processes (`+processColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.MipymeID, p.Name, p.Description, p.CostPerHour, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert process: %w", err)
	}
	return nil
}

func (r *ProcessRepo) GetByID(ctx context.Context, mipymeID, id string) (*entity.Process, error) {
	p, err := scanProcess(r.q.QueryRow(ctx,
		`SELECT `+processColumns+` FROM processes WHERE mipyme_id = $1 AND id = $2`, mipymeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get process: %w", err)
	}
	return p, nil
}

func (r *ProcessRepo) GetByIDs(ctx context.Context, mipymeID string, ids []string) ([]*entity.Process, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMany(ctx,
		`SELECT `+processColumns+` FROM processes WHERE mipyme_id = $1 AND id = ANY($2::uuid[]) ORDER BY id`,
		mipymeID, ids)
}

func (r *ProcessRepo) Update(ctx context.Context, p *entity.Process) error {
	_, err := r.q.Exec(ctx, `
		UPDATE processes SET name = $3, description = $4, cost_per_hour = $5, updated_at = $6
		WHERE mipyme_id = $1 AND id = $2`,
		p.MipymeID, p.ID, p.Name, p.Description, p.CostPerHour, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update process: %w", err)
	}
	return nil
}

func (r *ProcessRepo) ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Process, error) {
	return r.queryMany(ctx,
		`SELECT `+processColumns+` FROM processes WHERE mipyme_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		mipymeID, limit, offset)
}

func (r *ProcessRepo) Delete(ctx context.Context, mipymeID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM processes WHERE mipyme_id = $1 AND id = $2`, mipymeID, id)
	if err != nil {
		return fmt.Errorf("delete process: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
