package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías por vendedor (user_product_categories).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el repositorio de categorías. Pasar pool o tx.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, name, created_at
		FROM user_product_categories WHERE user_id = $1
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) ListNamesByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM user_product_categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list category names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan category names: %w", err)
	}
	return names, nil
}

// CreateMany inserta names para userID ignorando los ya existentes; devuelve cuántos creó.
func (r *CategoryRepo) CreateMany(ctx context.Context, userID string, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		INSERT INTO user_product_categories (user_id, name)
		SELECT $1, n FROM unnest($2::text[]) AS n
		ON CONFLICT (user_id, name) DO NOTHING`, userID, names)
	if err != nil {
		return 0, fmt.Errorf("insert categories: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_product_categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
