package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/pricing"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// maxQuoteQuantity tope de unidades por cotización.
const maxQuoteQuantity = 1_000_000

// PriceQuoteUseCase cotiza un producto activo para una cantidad usando sus escalas.
type PriceQuoteUseCase struct {
	products repository.ProductRepository
	tiers    repository.PriceTierRepository
}

// NewPriceQuoteUseCase construye el caso de uso.
func NewPriceQuoteUseCase(products repository.ProductRepository, tiers repository.PriceTierRepository) *PriceQuoteUseCase {
	return &PriceQuoteUseCase{products: products, tiers: tiers}
}

// Quote calcula precio unitario, total, ahorro y la siguiente escala para quantity.
func (uc *PriceQuoteUseCase) Quote(ctx context.Context, productID string, quantity int) (*dto.PriceQuoteResponse, error) {
	if quantity < 1 || quantity > maxQuoteQuantity {
		return nil, fmt.Errorf("%w: quantity debe estar entre 1 y %d", domain.ErrInvalidInput, maxQuoteQuantity)
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	tiers, err := uc.tiers.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	res := pricing.Calculate(pricing.Input{
		Quantity:            quantity,
		Tiers:               tiers,
		BasePrice:           product.Price,
		BaseDiscountedPrice: product.DiscountedPrice,
	})
	out := &dto.PriceQuoteResponse{
		ProductID:       product.ID,
		Quantity:        res.Quantity,
		UnitPrice:       res.UnitPrice,
		TotalPrice:      res.TotalPrice,
		BaseUnitPrice:   res.BaseUnitPrice,
		Savings:         res.Savings,
		RawSavings:      res.RawSavings,
		UnitsToNextTier: res.UnitsToNextTier,
		NextTierSavings: res.NextTierSavings,
	}
	if res.AppliedTier != nil {
		t := ToPriceTierResponse(*res.AppliedTier)
		out.AppliedTier = &t
	}
	if res.NextTier != nil {
		t := ToPriceTierResponse(*res.NextTier)
		out.NextTier = &t
	}
	return out, nil
}
