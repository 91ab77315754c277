package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// ListByIDsAndOwner devuelve los productos de ids que pertenecen a userID, en el orden de ids.
	ListByIDsAndOwner(ctx context.Context, ids []string, userID string) ([]*entity.Product, error)
	// ListCategoriesInUse devuelve las categorías distintas usadas por los productos del usuario.
	ListCategoriesInUse(ctx context.Context, userID string) ([]string, error)
}
