package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del catálogo.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
		tierRepo repository.PriceTierRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}

// CategorySyncer crea en user_product_categories las categorías usadas por los productos del usuario.
type CategorySyncer interface {
	Sync(ctx context.Context, userID string) (int, error)
}

// Item producto con su galería y escalas, listo para exportar o mostrar.
type Item struct {
	Product *entity.Product
	Images  []*entity.ProductImage
	Tiers   []entity.PriceTier
}

// Document catálogo completo de una vitrina para PDF o feed.
type Document struct {
	Store       *entity.User
	Items       []Item
	BaseURL     string // URL pública de la vitrina, para links del feed
	GeneratedAt time.Time
}

// PDFGenerator genera el PDF del catálogo.
type PDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, doc Document) ([]byte, error)
}

// FeedEncoder serializa el catálogo como feed XML de productos.
type FeedEncoder interface {
	EncodeFeed(doc Document) ([]byte, error)
}
