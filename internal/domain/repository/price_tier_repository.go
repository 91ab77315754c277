package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// PriceTierRepository puerto de persistencia para escalas de precio por cantidad.
type PriceTierRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.PriceTier, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]entity.PriceTier, error)
	// ReplaceForProduct borra las escalas actuales del producto e inserta tiers.
	ReplaceForProduct(ctx context.Context, productID string, tiers []entity.PriceTier) error
	CreateMany(ctx context.Context, tiers []entity.PriceTier) (int, error)
}
