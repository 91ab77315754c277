package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/media"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// ImageUseCase administra la galería de imágenes de los productos.
// El archivo ya está en el storage externo; aquí solo se registra su URL.
type ImageUseCase struct {
	products repository.ProductRepository
	images   repository.ProductImageRepository
	limits   *catalog.ImageLimitUseCase
	registry *media.BlobRegistry
	log      zerolog.Logger
}

// NewImageUseCase construye el caso de uso. registry puede ser nil (sin control de duplicados).
func NewImageUseCase(
	products repository.ProductRepository,
	images repository.ProductImageRepository,
	limits *catalog.ImageLimitUseCase,
	registry *media.BlobRegistry,
	log zerolog.Logger,
) *ImageUseCase {
	return &ImageUseCase{
		products: products,
		images:   images,
		limits:   limits,
		registry: registry,
		log:      log.With().Str("component", "images").Logger(),
	}
}

// Add agrega una imagen al producto respetando el límite de la cuenta.
// La primera imagen del producto queda destacada aunque no se pida.
func (uc *ImageUseCase) Add(ctx context.Context, userID, productID string, in dto.AddImageRequest) (*dto.ImageResponse, error) {
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: url requerida", domain.ErrInvalidInput)
	}

	check, err := uc.limits.Validate(ctx, catalog.ImageLimitInput{UserID: userID, ProductID: productID, ImageCount: 1})
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageLimitExceeded, check.Reason)
	}

	hash := strings.ToLower(strings.TrimSpace(in.ContentHash))
	if uc.registry != nil && hash != "" {
		if v := uc.registry.ValidateUniqueness(url, hash); !v.IsValid {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicate, v.Reason)
		}
	}

	current := 0
	if check.CurrentCount != nil {
		current = *check.CurrentCount
	}
	order := current
	if in.DisplayOrder != nil {
		order = *in.DisplayOrder
	}
	now := time.Now().UTC()
	img := &entity.ProductImage{
		ID:           uuid.New().String(),
		ProductID:    productID,
		URL:          url,
		DisplayOrder: order,
		IsFeatured:   current == 0 || in.IsFeatured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.images.Create(ctx, img); err != nil {
		return nil, err
	}
	if img.IsFeatured && current > 0 {
		if err := uc.images.SetFeatured(ctx, productID, img.ID); err != nil {
			return nil, err
		}
	}
	if uc.registry != nil && hash != "" {
		if err := uc.registry.Register(url, hash, in.Fingerprint); err != nil {
			uc.log.Warn().Err(err).Str("url", url).Msg("no se pudo registrar la url en el registro de blobs")
		}
	}
	out := ToImageResponse(img)
	return &out, nil
}

// List galería del producto ordenada por display_order.
func (uc *ImageUseCase) List(ctx context.Context, userID, productID string) ([]dto.ImageResponse, error) {
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	list, err := uc.images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImageResponse, 0, len(list))
	for _, img := range list {
		out = append(out, ToImageResponse(img))
	}
	return out, nil
}

// SetFeatured deja imageID como única imagen destacada del producto.
func (uc *ImageUseCase) SetFeatured(ctx context.Context, userID, productID, imageID string) error {
	if _, err := uc.ownedImage(ctx, userID, productID, imageID); err != nil {
		return err
	}
	return uc.images.SetFeatured(ctx, productID, imageID)
}

// Reorder aplica nuevas posiciones. Todas las imágenes deben ser del producto.
func (uc *ImageUseCase) Reorder(ctx context.Context, userID, productID string, in dto.ReorderImagesRequest) ([]dto.ImageResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items requerido", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	current, err := uc.images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	belongs := make(map[string]struct{}, len(current))
	for _, img := range current {
		belongs[img.ID] = struct{}{}
	}
	for _, it := range in.Items {
		if _, ok := belongs[it.ID]; !ok {
			return nil, fmt.Errorf("%w: la imagen %s no pertenece al producto", domain.ErrInvalidInput, it.ID)
		}
		if it.DisplayOrder < 0 {
			return nil, fmt.Errorf("%w: display_order no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	for _, it := range in.Items {
		if err := uc.images.UpdateOrder(ctx, it.ID, it.DisplayOrder); err != nil {
			return nil, err
		}
	}
	return uc.List(ctx, userID, productID)
}

// Delete elimina la imagen y libera su url en el registro. Si era la destacada,
// la primera imagen restante pasa a serlo.
func (uc *ImageUseCase) Delete(ctx context.Context, userID, productID, imageID string) error {
	img, err := uc.ownedImage(ctx, userID, productID, imageID)
	if err != nil {
		return err
	}
	if err := uc.images.Delete(ctx, imageID); err != nil {
		return err
	}
	if uc.registry != nil {
		uc.registry.Revoke(img.URL)
	}
	if !img.IsFeatured {
		return nil
	}
	rest, err := uc.images.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return uc.images.SetFeatured(ctx, productID, rest[0].ID)
	}
	return nil
}

func (uc *ImageUseCase) owned(ctx context.Context, userID, productID string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	return product, nil
}

func (uc *ImageUseCase) ownedImage(ctx context.Context, userID, productID, imageID string) (*entity.ProductImage, error) {
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	img, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if img == nil || img.ProductID != productID {
		return nil, fmt.Errorf("%w: imagen no encontrada", domain.ErrNotFound)
	}
	return img, nil
}
