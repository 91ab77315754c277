package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

const imageColumns = `id, product_id, url, display_order, is_featured, created_at, updated_at`

const insertImage = `
	INSERT INTO product_images (` + imageColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// ProductImageRepo galería de productos sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el repositorio de imágenes. Pasar pool o tx.
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	_, err := r.q.Exec(ctx, insertImage,
		img.ID, img.ProductID, img.URL, img.DisplayOrder, img.IsFeatured, img.CreatedAt, img.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// CreateMany inserta en un solo round-trip (pgx.Batch) y devuelve las filas insertadas.
func (r *ProductImageRepo) CreateMany(ctx context.Context, images []*entity.ProductImage) (int, error) {
	b := &pgx.Batch{}
	for _, img := range images {
		b.Queue(insertImage,
			img.ID, img.ProductID, img.URL, img.DisplayOrder, img.IsFeatured, img.CreatedAt, img.UpdatedAt)
	}
	n, err := execBatch(ctx, r.q, b)
	if err != nil {
		return 0, fmt.Errorf("insert product images: %w", err)
	}
	return n, nil
}

func (r *ProductImageRepo) GetByID(ctx context.Context, id string) (*entity.ProductImage, error) {
	query := `SELECT ` + imageColumns + ` FROM product_images WHERE id = $1`
	img, err := scanImage(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product image: %w", err)
	}
	return img, nil
}

func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	query := `
		SELECT ` + imageColumns + `
		FROM product_images WHERE product_id = $1
		ORDER BY display_order, created_at`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	return collectImages(rows)
}

func (r *ProductImageRepo) ListByProducts(ctx context.Context, productIDs []string) ([]*entity.ProductImage, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + imageColumns + `
		FROM product_images WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, display_order, created_at`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list product images by products: %w", err)
	}
	return collectImages(rows)
}

func (r *ProductImageRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_images WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count product images: %w", err)
	}
	return n, nil
}

// SetFeatured deja imageID como la única destacada del producto en una sola sentencia.
func (r *ProductImageRepo) SetFeatured(ctx context.Context, productID, imageID string) error {
	query := `
		UPDATE product_images
		SET is_featured = (id = $2), updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, imageID)
	if err != nil {
		return fmt.Errorf("set featured image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductImageRepo) UpdateOrder(ctx context.Context, imageID string, displayOrder int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE product_images SET display_order = $2, updated_at = now() WHERE id = $1`, imageID, displayOrder)
	if err != nil {
		return fmt.Errorf("update image order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductImageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (*entity.ProductImage, error) {
	var img entity.ProductImage
	if err := row.Scan(&img.ID, &img.ProductID, &img.URL, &img.DisplayOrder, &img.IsFeatured,
		&img.CreatedAt, &img.UpdatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func collectImages(rows pgx.Rows) ([]*entity.ProductImage, error) {
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product images: %w", err)
	}
	return list, nil
}
