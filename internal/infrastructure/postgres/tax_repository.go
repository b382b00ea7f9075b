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

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo impuestos y tabla puente product_taxes.
type TaxRepo struct {
	q Querier
}

func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

const taxColumns = `t.id, t.mipyme_id, t.name, t.percentage, t.active, t.created_at, t.updated_at`

func scanTax(s scanner) (*entity.Tax, error) {
	var t entity.Tax
	if err := s.Scan(&t.ID, &t.MipymeID, &t.Name, &t.Percentage, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaxRepo) queryMany(ctx context.Context, sql string, args ...any) ([]*entity.Tax, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query taxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TaxRepo) Create(ctx context.Context, t *entity.Tax) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO taxes (id, mipyme_id, name, percentage, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.MipymeID, t.Name, t.Percentage, t.Active, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tax: %w", err)
	}
	return nil
}

func (r *TaxRepo) GetByID(ctx context.Context, mipymeID, id string) (*entity.Tax, error) {
	t, err := scanTax(r.q.QueryRow(ctx,
		`SELECT `+taxColumns+` FROM taxes t WHERE t.mipyme_id = $1 AND t.id = $2`, mipymeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return t, nil
}

func (r *TaxRepo) Update(ctx context.Context, t *entity.Tax) error {
	_, err := r.q.Exec(ctx, `
		UPDATE taxes SET name = $3, percentage = $4, active = $5, updated_at = $6
		WHERE mipyme_id = $1 AND id = $2`,
		t.MipymeID, t.ID, t.Name, t.Percentage, t.Active, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax: %w", err)
	}
	return nil
}

func (r *TaxRepo) Delete(ctx context.Context, mipymeID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM taxes WHERE mipyme_id = $1 AND id = $2`, mipymeID, id)
	if err != nil {
		return fmt.Errorf("delete tax: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaxRepo) ListByMipyme(ctx context.Context, mipymeID string) ([]*entity.Tax, error) {
	return r.queryMany(ctx, `SELECT `+taxColumns+` FROM taxes t WHERE t.mipyme_id = $1 ORDER BY t.name`, mipymeID)
}

// ListByProduct incluye impuestos inactivos; el motor decide cuáles suman.
func (r *TaxRepo) ListByProduct(ctx context.Context, mipymeID, productID string) ([]*entity.Tax, error) {
	return r.queryMany(ctx, `
		SELECT `+taxColumns+` FROM taxes t
		JOIN product_taxes pt ON pt.tax_id = t.id
		WHERE t.mipyme_id = $1 AND pt.product_id = $2
		ORDER BY t.name`, mipymeID, productID)
}

// Assign es idempotente.
func (r *TaxRepo) Assign(ctx context.Context, productID, taxID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_taxes (product_id, tax_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, productID, taxID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("assign tax: %w", err)
	}
	return nil
}

func (r *TaxRepo) Unassign(ctx context.Context, productID, taxID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_taxes WHERE product_id = $1 AND tax_id = $2`, productID, taxID)
	if err != nil {
		return fmt.Errorf("unassign tax: %w", err)
	}
	return nil
}

func (r *TaxRepo) ProductIDs(ctx context.Context, mipymeID, taxID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pt.product_id FROM product_taxes pt
		JOIN taxes t ON t.id = pt.tax_id
		WHERE t.mipyme_id = $1 AND pt.tax_id = $2
		ORDER BY pt.product_id`, mipymeID, taxID)
	if err != nil {
		return nil, fmt.Errorf("list tax products: %w", err)
	}
	return collectIDs(rows)
}
