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

var (
	_ repository.RecipeRepository  = (*RecipeRepo)(nil)
	_ repository.RoutingRepository = (*RoutingRepo)(nil)
)

// RecipeRepo líneas de formulación.
type RecipeRepo struct {
	q Querier
}

func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// AddLine inserta la línea; la restricción UNIQUE (product_id, material_id) se traduce a ErrDuplicate.
func (r *RecipeRepo) AddLine(ctx context.Context, l *entity.RecipeLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipe_lines (id, product_id, material_id, quantity, waste_pct)
		VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.ProductID, l.MaterialID, l.Quantity, l.WastePct,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

func (r *RecipeRepo) GetLine(ctx context.Context, productID, id string) (*entity.RecipeLine, error) {
	var l entity.RecipeLine
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, material_id, quantity, waste_pct FROM recipe_lines
		WHERE product_id = $1 AND id = $2`, productID, id).
		Scan(&l.ID, &l.ProductID, &l.MaterialID, &l.Quantity, &l.WastePct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe line: %w", err)
	}
	return &l, nil
}

func (r *RecipeRepo) UpdateLine(ctx context.Context, l *entity.RecipeLine) error {
	_, err := r.q.Exec(ctx, `UPDATE recipe_lines SET quantity = $3, waste_pct = $4 WHERE product_id = $1 AND id = $2`,
		l.ProductID, l.ID, l.Quantity, l.WastePct)
	if err != nil {
		return fmt.Errorf("update recipe line: %w", err)
	}
	return nil
}

func (r *RecipeRepo) DeleteLine(ctx context.Context, productID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return fmt.Errorf("delete recipe line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) ListLines(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, material_id, quantity, waste_pct FROM recipe_lines
		WHERE product_id = $1 ORDER BY material_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.MaterialID, &l.Quantity, &l.WastePct); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *RecipeRepo) ProductIDsByMaterial(ctx context.Context, materialID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT product_id FROM recipe_lines WHERE material_id = $1 ORDER BY product_id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list products by material: %w", err)
	}
	return collectIDs(rows)
}

// RoutingRepo pasos de producción.
type RoutingRepo struct {
	q Querier
}

func NewRoutingRepository(q Querier) *RoutingRepo {
	return &RoutingRepo{q: q}
}

func (r *RoutingRepo) AddStep(ctx context.Context, s *entity.RoutingStep) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO routing_steps (id, product_id, process_id, minutes) VALUES ($1, $2, $3, $4)`,
		s.ID, s.ProductID, s.ProcessID, s.Minutes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert routing step: %w", err)
	}
	return nil
}

func (r *RoutingRepo) GetStep(ctx context.Context, productID, id string) (*entity.RoutingStep, error) {
	var s entity.RoutingStep
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, process_id, minutes FROM routing_steps WHERE product_id = $1 AND id = $2`,
		productID, id).Scan(&s.ID, &s.ProductID, &s.ProcessID, &s.Minutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get routing step: %w", err)
	}
	return &s, nil
}

func (r *RoutingRepo) UpdateStep(ctx context.Context, s *entity.RoutingStep) error {
	_, err := r.q.Exec(ctx, `UPDATE routing_steps SET minutes = $3 WHERE product_id = $1 AND id = $2`,
		s.ProductID, s.ID, s.Minutes)
	if err != nil {
		return fmt.Errorf("update routing step: %w", err)
	}
	return nil
}

func (r *RoutingRepo) DeleteStep(ctx context.Context, productID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM routing_steps WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return fmt.Errorf("delete routing step: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoutingRepo) ListSteps(ctx context.Context, productID string) ([]*entity.RoutingStep, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, process_id, minutes FROM routing_steps
		WHERE product_id = $1 ORDER BY process_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list routing steps: %w", err)
	}
	defer rows.Close()
	var list []*entity.RoutingStep
	for rows.Next() {
		var s entity.RoutingStep
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProcessID, &s.Minutes); err != nil {
			return nil, fmt.Errorf("scan routing step: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *RoutingRepo) ProductIDsByProcess(ctx context.Context, processID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT product_id FROM routing_steps WHERE process_id = $1 ORDER BY product_id`, processID)
	if err != nil {
		return nil, fmt.Errorf("list products by process: %w", err)
	}
	return collectIDs(rows)
}
