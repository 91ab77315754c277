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

type captureRenderer struct {
	doc catalog.Document
}

func (c *captureRenderer) GenerateCatalogPDF(_ context.Context, doc catalog.Document) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF"), nil
}

func (c *captureRenderer) EncodeFeed(doc catalog.Document) ([]byte, error) {
	c.doc = doc
	return []byte("<rss/>"), nil
}

func TestLoader_AgrupaPorProductoEnOrden(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})
	a := s.SeedProduct(u.ID, "A", "10")
	b := s.SeedProduct(u.ID, "B", "20")
	s.SeedImage(a.ID, "https://cdn.vitrine.test/a.jpg", 0, true)
	s.SeedTier(b.ID, 5, "18")
	s.SeedTier(b.ID, 10, "15")

	items, err := catalog.NewLoader(s.Images(), s.Tiers()).Load(context.Background(), []*entity.Product{b, a})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].Product.ID)
	assert.Empty(t, items[0].Images)
	assert.Len(t, items[0].Tiers, 2)
	assert.Equal(t, a.ID, items[1].Product.ID)
	assert.Len(t, items[1].Images, 1)
}

func TestLoader_PropagaErrorDeLectura(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})
	p := s.SeedProduct(u.ID, "A", "10")
	s.Fail("tiers.ListByProducts", nil)

	_, err := catalog.NewLoader(s.Images(), s.Tiers()).Load(context.Background(), []*entity.Product{p})
	assert.ErrorIs(t, err, memstore.ErrInjected)
}

func TestExportPDF_SoloProductosActivos(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{StoreName: "Ateliê Flor"})
	s.SeedProduct(u.ID, "Ativo", "10")
	inactive := s.SeedProduct(u.ID, "Inativo", "10")
	inactive.IsActive = false
	require.NoError(t, s.Products().Update(context.Background(), inactive))
	r := &captureRenderer{}
	uc := catalog.NewExportUseCase(s.Users(), s.Products(), catalog.NewLoader(s.Images(), s.Tiers()), r, r)

	out, err := uc.CatalogPDF(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF"), out)
	require.Len(t, r.doc.Items, 1)
	assert.Equal(t, "Ativo", r.doc.Items[0].Product.Name)
	assert.Equal(t, "Ateliê Flor", r.doc.Store.StoreName)
	assert.False(t, r.doc.GeneratedAt.IsZero())
}

func TestExportPDF_UsuarioInexistente(t *testing.T) {
	s := memstore.New()
	r := &captureRenderer{}
	uc := catalog.NewExportUseCase(s.Users(), s.Products(), catalog.NewLoader(s.Images(), s.Tiers()), r, r)

	_, err := uc.CatalogPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestExportFeed_ArmaURLPublica(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{StoreSlug: "atelie-flor"})
	s.SeedProduct(u.ID, "Blusa", "50")
	r := &captureRenderer{}
	uc := catalog.NewExportUseCase(s.Users(), s.Products(), catalog.NewLoader(s.Images(), s.Tiers()), r, r)

	out, err := uc.Feed(context.Background(), "atelie-flor", "https://vitrine.test/loja/")
	require.NoError(t, err)

	assert.Equal(t, []byte("<rss/>"), out)
	assert.Equal(t, "https://vitrine.test/loja/atelie-flor", r.doc.BaseURL)
	assert.Len(t, r.doc.Items, 1)
}

func TestExportFeed_VitrineInactivaOInexistente(t *testing.T) {
	s := memstore.New()
	s.SeedUser(entity.User{StoreSlug: "bloqueada", Status: entity.UserStatusSuspended})
	r := &captureRenderer{}
	uc := catalog.NewExportUseCase(s.Users(), s.Products(), catalog.NewLoader(s.Images(), s.Tiers()), r, r)

	_, err := uc.Feed(context.Background(), "bloqueada", "https://vitrine.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Feed(context.Background(), "nao-existe", "https://vitrine.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Feed(context.Background(), "  ", "https://vitrine.test")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
