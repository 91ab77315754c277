package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/pricing"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos del vendedor. Todas las operaciones
// verifican que el producto pertenezca a userID; uno ajeno se reporta como inexistente.
type ProductUseCase struct {
	products   repository.ProductRepository
	tiers      repository.PriceTierRepository
	categories repository.CategoryRepository
	loader     *catalog.Loader
	tx         catalog.TxRunner
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso. tx puede ser nil (las escalas se reemplazan sin transacción).
func NewProductUseCase(
	products repository.ProductRepository,
	tiers repository.PriceTierRepository,
	categories repository.CategoryRepository,
	loader *catalog.Loader,
	tx catalog.TxRunner,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		tiers:      tiers,
		categories: categories,
		loader:     loader,
		tx:         tx,
		log:        log.With().Str("component", "products").Logger(),
	}
}

// Create crea un producto activo (salvo is_active=false) para userID.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if err := validatePrices(in.Price, in.DiscountedPrice); err != nil {
		return nil, err
	}
	attrs, err := normalizeAttributes(in.Attributes)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            name,
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Sizes:           cleanTags(in.Sizes),
		Colors:          cleanTags(in.Colors),
		Categories:      cleanTags(in.Categories),
		VideoURL:        strings.TrimSpace(in.VideoURL),
		Attributes:      attrs,
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.ensureCategories(ctx, userID, product.Categories)
	return ToProductResponse(product, nil, nil), nil
}

// Get devuelve el producto con imágenes y escalas.
func (uc *ProductUseCase) Get(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.loader.Load(ctx, []*entity.Product{product})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product, items[0].Images, items[0].Tiers), nil
}

// Update aplica los campos no nil de in.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	switch {
	case in.ClearDiscount:
		product.DiscountedPrice = nil
	case in.DiscountedPrice != nil:
		product.DiscountedPrice = in.DiscountedPrice
	}
	if err := validatePrices(product.Price, product.DiscountedPrice); err != nil {
		return nil, err
	}
	if in.Sizes != nil {
		product.Sizes = cleanTags(in.Sizes)
	}
	if in.Colors != nil {
		product.Colors = cleanTags(in.Colors)
	}
	if in.Categories != nil {
		product.Categories = cleanTags(in.Categories)
	}
	if in.VideoURL != nil {
		product.VideoURL = strings.TrimSpace(*in.VideoURL)
	}
	if len(in.Attributes) > 0 {
		attrs, err := normalizeAttributes(in.Attributes)
		if err != nil {
			return nil, err
		}
		product.Attributes = attrs
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Categories != nil {
		uc.ensureCategories(ctx, userID, product.Categories)
	}
	return uc.Get(ctx, userID, id)
}

// List lista los productos del vendedor (activos e inactivos) con galería y escalas.
func (uc *ProductUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.ListByUser(ctx, userID, false, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.loader.Load(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: ToProductResponses(items),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina el producto; imágenes y escalas caen por cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.products.Delete(ctx, id)
}

// SetPriceTiers reemplaza todas las escalas del producto. Una lista vacía las elimina.
func (uc *ProductUseCase) SetPriceTiers(ctx context.Context, userID, productID string, in dto.SetPriceTiersRequest) ([]dto.PriceTierResponse, error) {
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	tiers := make([]entity.PriceTier, 0, len(in.Tiers))
	for _, t := range in.Tiers {
		tiers = append(tiers, entity.PriceTier{
			ID:                  uuid.New().String(),
			ProductID:           productID,
			MinQuantity:         t.MinQuantity,
			UnitPrice:           t.UnitPrice,
			DiscountedUnitPrice: t.DiscountedUnitPrice,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}
	if err := pricing.ValidateTiers(tiers); err != nil {
		return nil, err
	}

	if uc.tx == nil {
		if err := uc.tiers.ReplaceForProduct(ctx, productID, tiers); err != nil {
			return nil, err
		}
	} else {
		err := uc.tx.RunCatalog(ctx, func(
			_ repository.ProductRepository,
			_ repository.ProductImageRepository,
			tierRepo repository.PriceTierRepository,
			_ repository.CategoryRepository,
		) error {
			return tierRepo.ReplaceForProduct(ctx, productID, tiers)
		})
		if err != nil {
			return nil, err
		}
	}
	return uc.ListPriceTiers(ctx, userID, productID)
}

// ListPriceTiers escalas del producto ordenadas por cantidad mínima.
func (uc *ProductUseCase) ListPriceTiers(ctx context.Context, userID, productID string) ([]dto.PriceTierResponse, error) {
	if _, err := uc.owned(ctx, userID, productID); err != nil {
		return nil, err
	}
	tiers, err := uc.tiers.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceTierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, ToPriceTierResponse(t))
	}
	return out, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	return product, nil
}

// ensureCategories da de alta en la cuenta las categorías nuevas del producto.
// Una falla aquí no invalida el producto; se corrige luego con Sync.
func (uc *ProductUseCase) ensureCategories(ctx context.Context, userID string, names []string) {
	if uc.categories == nil || len(names) == 0 {
		return
	}
	if _, err := uc.categories.CreateMany(ctx, userID, names); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudieron registrar las categorías del producto")
	}
}

func validatePrices(price decimal.Decimal, discounted *decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if discounted != nil && (discounted.IsNegative() || !discounted.LessThan(price)) {
		return fmt.Errorf("%w: discounted_price debe ser menor que price", domain.ErrInvalidInput)
	}
	return nil
}

func normalizeAttributes(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: attributes debe ser un objeto JSON", domain.ErrInvalidInput)
	}
	return raw, nil
}

// cleanTags recorta espacios y descarta vacíos y repetidos, conservando el orden.
func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
