package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, description, price, discounted_price, sizes, colors, categories,
		video_url, attributes, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con el ID ya asignado por el llamador.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Price, p.DiscountedPrice,
		nonNilStrings(p.Sizes), nonNilStrings(p.Colors), nonNilStrings(p.Categories),
		p.VideoURL, jsonOrEmpty(p.Attributes), p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, discounted_price = $5, sizes = $6, colors = $7,
		    categories = $8, video_url = $9, attributes = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.DiscountedPrice,
		nonNilStrings(p.Sizes), nonNilStrings(p.Colors), nonNilStrings(p.Categories),
		p.VideoURL, jsonOrEmpty(p.Attributes), p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; imágenes y escalas caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista productos del vendedor, más recientes primero.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1 AND ($2 = FALSE OR is_active)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, userID, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// CountByUser cuenta los productos del vendedor.
func (r *ProductRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListByIDsAndOwner devuelve los productos de ids que pertenecen a userID, en el orden de ids.
func (r *ProductRepo) ListByIDsAndOwner(ctx context.Context, ids []string, userID string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1::uuid[]) AND user_id = $2
		ORDER BY array_position($1::uuid[], id)`
	rows, err := r.q.Query(ctx, query, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	return collectProducts(rows)
}

// ListCategoriesInUse devuelve las categorías distintas usadas por los productos del usuario.
func (r *ProductRepo) ListCategoriesInUse(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT c
		FROM products, unnest(categories) AS c
		WHERE user_id = $1 AND btrim(c) <> ''
		ORDER BY c`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories in use: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan categories in use: %w", err)
	}
	return names, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.Sizes, &p.Colors, &p.Categories, &p.VideoURL, &p.Attributes, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return list, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func jsonOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(`{}`)
	}
	return raw
}
