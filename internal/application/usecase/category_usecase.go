package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ catalog.CategorySyncer = (*CategoryUseCase)(nil)

// CategoryUseCase categorías de productos de cada vendedor.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

func (uc *CategoryUseCase) List(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// Create da de alta una categoría. ErrDuplicate si ya existe en la cuenta.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	n, err := uc.categories.CreateMany(ctx, userID, []string{name})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: la categoría %q ya existe", domain.ErrDuplicate, name)
	}
	list, err := uc.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if c.Name == name {
			return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
		}
	}
	return nil, fmt.Errorf("%w: categoría recién creada no encontrada", domain.ErrConflict)
}

func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.categories.Delete(ctx, userID, id)
}

// Sync crea las categorías que usan los productos del vendedor y aún no están registradas.
func (uc *CategoryUseCase) Sync(ctx context.Context, userID string) (int, error) {
	used, err := uc.products.ListCategoriesInUse(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(used) == 0 {
		return 0, nil
	}
	return uc.categories.CreateMany(ctx, userID, used)
}
