package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate_Duplicada(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})
	uc := usecase.NewCategoryUseCase(s.Categories(), s.Products())
	ctx := context.Background()

	c, err := uc.Create(ctx, u.ID, dto.CreateCategoryRequest{Name: " Praia "})
	require.NoError(t, err)
	assert.Equal(t, "Praia", c.Name)
	assert.NotEmpty(t, c.ID)

	_, err = uc.Create(ctx, u.ID, dto.CreateCategoryRequest{Name: "Praia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, u.ID, dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategorySync_CreaSoloLasFaltantes(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})
	s.SeedCategory(u.ID, "praia")
	s.SeedProduct(u.ID, "Biquíni", "90", "praia", "verão")
	s.SeedProduct(u.ID, "Saída", "70", "verão", "moda")
	uc := usecase.NewCategoryUseCase(s.Categories(), s.Products())

	n, err := uc.Sync(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"moda", "praia", "verão"}, s.CategoryNames(u.ID))
}

func TestCategoryDelete_DeOtraCuenta(t *testing.T) {
	s := memstore.New()
	owner := s.SeedUser(entity.User{})
	other := s.SeedUser(entity.User{})
	c := s.SeedCategory(owner.ID, "praia")
	uc := usecase.NewCategoryUseCase(s.Categories(), s.Products())

	assert.ErrorIs(t, uc.Delete(context.Background(), other.ID, c.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(context.Background(), owner.ID, c.ID))

	list, err := uc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
