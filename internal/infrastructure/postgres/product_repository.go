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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, mipyme_id, name, description, profit_mode, profit_pct, sale_price, stock,
	weight, length, width, height, presentation,
	production_cost, margin, price_with_taxes, priced_at, created_at, updated_at`

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	var mode string
	err := s.Scan(&p.ID, &p.MipymeID, &p.Name, &p.Description, &mode, &p.Profit.Percentage, &p.SalePrice, &p.Stock,
		&p.Physical.Weight, &p.Physical.Length, &p.Physical.Width, &p.Physical.Height, &p.Physical.Presentation,
		&p.ProductionCost, &p.Margin, &p.PriceWithTaxes, &p.PricedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Profit.Mode = entity.ProfitMode(mode)
	return &p, nil
}

func (r *ProductRepo) queryMany(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto. Nombre duplicado en la mipyme => domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		p.ID, p.MipymeID, p.Name, p.Description, string(p.Profit.Mode), p.Profit.Percentage, p.SalePrice, p.Stock,
		p.Physical.Weight, p.Physical.Length, p.Physical.Width, p.Physical.Height, p.Physical.Presentation,
		p.ProductionCost, p.Margin, p.PriceWithTaxes, p.PricedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la mipyme; de otra mipyme devuelve nil.
func (r *ProductRepo) GetByID(ctx context.Context, mipymeID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE mipyme_id = $1 AND id = $2`, mipymeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) GetByName(ctx context.Context, mipymeID, name string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE mipyme_id = $1 AND name = $2`, mipymeID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea los productos (SELECT FOR UPDATE) en orden de id.
func (r *ProductRepo) GetForUpdate(ctx context.Context, mipymeID string, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products WHERE mipyme_id = $1 AND id = ANY($2::uuid[]) ORDER BY id FOR UPDATE`,
		mipymeID, ids)
}

// Update actualiza datos editables. No toca Stock ni la foto de precios.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $3, description = $4, profit_mode = $5, profit_pct = $6, sale_price = $7,
			weight = $8, length = $9, width = $10, height = $11, presentation = $12, updated_at = $13
		WHERE mipyme_id = $1 AND id = $2`,
		p.MipymeID, p.ID, p.Name, p.Description, string(p.Profit.Mode), p.Profit.Percentage, p.SalePrice,
		p.Physical.Weight, p.Physical.Length, p.Physical.Width, p.Physical.Height, p.Physical.Presentation, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpdatePricing guarda la foto calculada por el motor de costos.
func (r *ProductRepo) UpdatePricing(ctx context.Context, id string, pr entity.Pricing) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET production_cost = $2, sale_price = $3, margin = $4, price_with_taxes = $5, priced_at = $6
		WHERE id = $1`,
		id, pr.ProductionCost, pr.SalePrice, pr.Margin, pr.PriceWithTaxes, pr.PricedAt,
	)
	if err != nil {
		return fmt.Errorf("update product pricing: %w", err)
	}
	return nil
}

// ListByMipyme lista productos de la mipyme con paginación.
func (r *ProductRepo) ListByMipyme(ctx context.Context, mipymeID string, limit, offset int) ([]*entity.Product, error) {
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products WHERE mipyme_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		mipymeID, limit, offset)
}

func (r *ProductRepo) ListIDs(ctx context.Context, mipymeID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE mipyme_id = $1 ORDER BY id`, mipymeID)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	return collectIDs(rows)
}

func (r *ProductRepo) ListIDsByProfitMode(ctx context.Context, mipymeID string, mode entity.ProfitMode) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id FROM products WHERE mipyme_id = $1 AND profit_mode = $2 ORDER BY id`, mipymeID, string(mode))
	if err != nil {
		return nil, fmt.Errorf("list product ids by profit mode: %w", err)
	}
	return collectIDs(rows)
}

// Delete falla con domain.ErrConflict si el producto ya figura en ventas.
func (r *ProductRepo) Delete(ctx context.Context, mipymeID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE mipyme_id = $1 AND id = $2`, mipymeID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) GetStandards(ctx context.Context, productID string) (*entity.Standards, error) {
	s := entity.Standards{ProductID: productID}
	err := r.q.QueryRow(ctx, `
		SELECT weight_min, weight_max, length_min, length_max, width_min, width_max, height_min, height_max
		FROM product_standards WHERE product_id = $1`, productID).Scan(
		&s.Weight.Min, &s.Weight.Max, &s.Length.Min, &s.Length.Max,
		&s.Width.Min, &s.Width.Max, &s.Height.Min, &s.Height.Max,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get standards: %w", err)
	}
	return &s, nil
}

func (r *ProductRepo) SaveStandards(ctx context.Context, s *entity.Standards) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_standards (product_id, weight_min, weight_max, length_min, length_max, width_min, width_max, height_min, height_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			weight_min = EXCLUDED.weight_min, weight_max = EXCLUDED.weight_max,
			length_min = EXCLUDED.length_min, length_max = EXCLUDED.length_max,
			width_min = EXCLUDED.width_min, width_max = EXCLUDED.width_max,
			height_min = EXCLUDED.height_min, height_max = EXCLUDED.height_max`,
		s.ProductID, s.Weight.Min, s.Weight.Max, s.Length.Min, s.Length.Max,
		s.Width.Min, s.Width.Max, s.Height.Min, s.Height.Max,
	)
	if err != nil {
		return fmt.Errorf("save standards: %w", err)
	}
	return nil
}
