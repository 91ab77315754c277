package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ProductImageRepository puerto de persistencia para la galería de productos.
type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	// CreateMany inserta en lote y devuelve la cantidad de filas insertadas.
	CreateMany(ctx context.Context, images []*entity.ProductImage) (int, error)
	GetByID(ctx context.Context, id string) (*entity.ProductImage, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]*entity.ProductImage, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	// SetFeatured deja imageID como la única destacada del producto.
	SetFeatured(ctx context.Context, productID, imageID string) error
	UpdateOrder(ctx context.Context, imageID string, displayOrder int) error
	Delete(ctx context.Context, id string) error
}
