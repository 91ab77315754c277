package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// ImageLimitInput consulta de capacidad de la galería.
type ImageLimitInput struct {
	UserID     string
	ProductID  string // opcional: sin producto se valida solo imageCount contra el límite
	ImageCount int
}

// ImageLimitResult resultado de la validación. CurrentCount es nil cuando no se indicó producto.
type ImageLimitResult struct {
	Valid          bool
	Reason         string
	Limit          int
	CurrentCount   *int
	RequestedCount int
}

// ImageLimitUseCase valida y administra el máximo de imágenes por producto de cada cuenta.
type ImageLimitUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	images   repository.ProductImageRepository
}

// NewImageLimitUseCase construye el caso de uso.
func NewImageLimitUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	images repository.ProductImageRepository,
) *ImageLimitUseCase {
	return &ImageLimitUseCase{users: users, products: products, images: images}
}

// Validate indica si la cuenta puede agregar ImageCount imágenes (al producto, si se indica).
// Un resultado inválido no es error: el error queda para entrada mala, usuario o producto inexistente.
func (uc *ImageLimitUseCase) Validate(ctx context.Context, in ImageLimitInput) (*ImageLimitResult, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId es requerido", domain.ErrInvalidInput)
	}
	if in.ImageCount < 1 {
		return nil, fmt.Errorf("%w: imageCount debe ser al menos 1", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	limit := user.ImageLimit()
	res := &ImageLimitResult{Limit: limit, RequestedCount: in.ImageCount}

	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		res.Valid = in.ImageCount <= limit
		if !res.Valid {
			res.Reason = fmt.Sprintf("Máximo de %d imágenes por producto; se intentaron agregar %d", limit, in.ImageCount)
		}
		return res, nil
	}

	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != user.ID {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	current, err := uc.images.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	res.CurrentCount = &current
	res.Valid = current+in.ImageCount <= limit
	if !res.Valid {
		res.Reason = fmt.Sprintf("El producto ya tiene %d de %d imágenes; no se pueden agregar %d más",
			current, limit, in.ImageCount)
	}
	return res, nil
}

// SetLimit cambia el límite de la cuenta (solo back-office). Rango permitido 1..50.
func (uc *ImageLimitUseCase) SetLimit(ctx context.Context, userID string, limit int) error {
	if limit < entity.MinImagesPerProduct || limit > entity.MaxImagesPerProduct {
		return fmt.Errorf("%w: el límite debe estar entre %d y %d",
			domain.ErrInvalidInput, entity.MinImagesPerProduct, entity.MaxImagesPerProduct)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: id de usuario requerido", domain.ErrInvalidInput)
	}
	return uc.users.UpdateImageLimit(ctx, userID, limit)
}
