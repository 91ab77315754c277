package catalog_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageLimitUseCase(s *memstore.Store) *catalog.ImageLimitUseCase {
	return catalog.NewImageLimitUseCase(s.Users(), s.Products(), s.Images())
}

func TestValidateImageLimit_SinProductoDentroDelLimite(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})

	res, err := newImageLimitUseCase(s).Validate(context.Background(), catalog.ImageLimitInput{UserID: u.ID, ImageCount: 10})
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)
	assert.Equal(t, entity.DefaultMaxImagesPerProduct, res.Limit)
	assert.Nil(t, res.CurrentCount)
	assert.Equal(t, 10, res.RequestedCount)
}

func TestValidateImageLimit_SinProductoExcedido(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{MaxImagesPerProduct: 5})

	res, err := newImageLimitUseCase(s).Validate(context.Background(), catalog.ImageLimitInput{UserID: u.ID, ImageCount: 6})
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, 5, res.Limit)
	assert.Contains(t, res.Reason, "5")
}

func TestValidateImageLimit_ConProductoCuentaLasExistentes(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{MaxImagesPerProduct: 5})
	p := s.SeedProduct(u.ID, "Vestido", "120")
	for i := 0; i < 3; i++ {
		s.SeedImage(p.ID, "https://cdn.vitrine.test/v.jpg", i, i == 0)
	}
	uc := newImageLimitUseCase(s)

	ok, err := uc.Validate(context.Background(), catalog.ImageLimitInput{UserID: u.ID, ProductID: p.ID, ImageCount: 2})
	require.NoError(t, err)
	assert.True(t, ok.Valid)
	require.NotNil(t, ok.CurrentCount)
	assert.Equal(t, 3, *ok.CurrentCount)

	over, err := uc.Validate(context.Background(), catalog.ImageLimitInput{UserID: u.ID, ProductID: p.ID, ImageCount: 3})
	require.NoError(t, err)
	assert.False(t, over.Valid)
	assert.Contains(t, over.Reason, "3 de 5")
}

func TestValidateImageLimit_LimiteFueraDeRangoUsaElDefault(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{MaxImagesPerProduct: 99})

	res, err := newImageLimitUseCase(s).Validate(context.Background(), catalog.ImageLimitInput{UserID: u.ID, ImageCount: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMaxImagesPerProduct, res.Limit)
}

func TestValidateImageLimit_Errores(t *testing.T) {
	s := memstore.New()
	owner := s.SeedUser(entity.User{})
	other := s.SeedUser(entity.User{})
	p := s.SeedProduct(other.ID, "Saia", "80")
	uc := newImageLimitUseCase(s)
	ctx := context.Background()

	_, err := uc.Validate(ctx, catalog.ImageLimitInput{ImageCount: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Validate(ctx, catalog.ImageLimitInput{UserID: owner.ID, ImageCount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Validate(ctx, catalog.ImageLimitInput{UserID: "no-existe", ImageCount: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Validate(ctx, catalog.ImageLimitInput{UserID: owner.ID, ProductID: p.ID, ImageCount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto es de otra cuenta")

	_, err = uc.Validate(ctx, catalog.ImageLimitInput{UserID: owner.ID, ProductID: "no-existe", ImageCount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetImageLimit(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})
	uc := newImageLimitUseCase(s)
	ctx := context.Background()

	require.NoError(t, uc.SetLimit(ctx, u.ID, 25))
	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.MaxImagesPerProduct)

	assert.ErrorIs(t, uc.SetLimit(ctx, u.ID, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.SetLimit(ctx, u.ID, 51), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.SetLimit(ctx, " ", 10), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.SetLimit(ctx, "no-existe", 10), domain.ErrUserNotFound)
}
