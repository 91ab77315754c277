package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// maxExportProducts tope de productos por exportación.
const maxExportProducts = 500

// ExportUseCase genera el catálogo de una vitrina como PDF (vendedor) o feed XML (público).
type ExportUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	loader   *Loader
	pdf      PDFGenerator
	feed     FeedEncoder
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	loader *Loader,
	pdf PDFGenerator,
	feed FeedEncoder,
) *ExportUseCase {
	return &ExportUseCase{
		users:    users,
		products: products,
		loader:   loader,
		pdf:      pdf,
		feed:     feed,
		now:      time.Now,
	}
}

// CatalogPDF PDF con los productos activos del vendedor y sus escalas de precio.
func (uc *ExportUseCase) CatalogPDF(ctx context.Context, userID string) ([]byte, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	doc, err := uc.document(ctx, user, "")
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateCatalogPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("generate catalog pdf: %w", err)
	}
	return out, nil
}

// Feed feed XML público de la vitrina publicada con slug.
func (uc *ExportUseCase) Feed(ctx context.Context, slug, baseURL string) ([]byte, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug requerido", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, fmt.Errorf("%w: vitrina no encontrada", domain.ErrNotFound)
	}
	doc, err := uc.document(ctx, user, strings.TrimRight(baseURL, "/")+"/"+slug)
	if err != nil {
		return nil, err
	}
	out, err := uc.feed.EncodeFeed(doc)
	if err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	return out, nil
}

func (uc *ExportUseCase) document(ctx context.Context, user *entity.User, baseURL string) (Document, error) {
	products, err := uc.products.ListByUser(ctx, user.ID, true, maxExportProducts, 0)
	if err != nil {
		return Document{}, err
	}
	items, err := uc.loader.Load(ctx, products)
	if err != nil {
		return Document{}, err
	}
	return Document{Store: user, Items: items, BaseURL: baseURL, GeneratedAt: uc.now()}, nil
}
