package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	"github.com/jhoicas/Vitrine-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────────────────────────────────

type copyFixture struct {
	store    *memstore.Store
	tx       *memstore.TxRunner
	source   *entity.User
	target   *entity.User
	products []*entity.Product
}

// newCopyFixture: origen con 2 productos, cada uno con 3 imágenes y 2 escalas.
func newCopyFixture(t *testing.T) *copyFixture {
	t.Helper()
	s := memstore.New()
	src := s.SeedUser(entity.User{Name: "Loja Origem"})
	dst := s.SeedUser(entity.User{Name: "Loja Destino"})
	s.SeedCategory(dst.ID, "verão")

	p1 := s.SeedProduct(src.ID, "Camiseta básica", "100", "camisetas", "verão")
	p2 := s.SeedProduct(src.ID, "Body infantil", "60", "camisetas", "infantil")
	for _, p := range []*entity.Product{p1, p2} {
		s.SeedImage(p.ID, "https://cdn.vitrine.test/"+p.ID+"/1.jpg", 0, true)
		s.SeedImage(p.ID, "https://cdn.vitrine.test/"+p.ID+"/2.jpg", 1, false)
		s.SeedImage(p.ID, "https://cdn.vitrine.test/"+p.ID+"/3.jpg", 2, false)
		s.SeedTier(p.ID, 10, "90")
		s.SeedTier(p.ID, 50, "80")
	}
	return &copyFixture{
		store:    s,
		tx:       &memstore.TxRunner{S: s},
		source:   src,
		target:   dst,
		products: []*entity.Product{p1, p2},
	}
}

func (f *copyFixture) useCase(images repository.ProductImageRepository, syncer catalog.CategorySyncer) *catalog.CopyUseCase {
	if images == nil {
		images = f.store.Images()
	}
	return catalog.NewCopyUseCase(
		f.store.Products(), images, f.store.Tiers(), f.store.Categories(),
		f.tx, syncer, nil, zerolog.Nop(),
	)
}

func (f *copyFixture) input() catalog.CopyInput {
	return catalog.CopyInput{
		SourceUserID: f.source.ID,
		TargetUserID: f.target.ID,
		ProductIDs:   []string{f.products[0].ID, f.products[1].ID},
	}
}

// strayImages agrega a la lectura una imagen cuyo producto no fue copiado.
type strayImages struct {
	repository.ProductImageRepository
	stray *entity.ProductImage
}

func (r strayImages) ListByProducts(ctx context.Context, ids []string) ([]*entity.ProductImage, error) {
	list, err := r.ProductImageRepository.ListByProducts(ctx, ids)
	return append(list, r.stray), err
}

type countingSyncer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *countingSyncer) Sync(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, userID)
	return 0, s.err
}

// ────────────────────────────────────────────────────────────────────────────
// Best-effort
// ────────────────────────────────────────────────────────────────────────────

func TestCopy_DosProductosConImagenesYEscalas(t *testing.T) {
	f := newCopyFixture(t)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ProductsCreated)
	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Equal(t, 4, stats.TiersCreated)
	assert.Equal(t, 2, stats.CategoriesCreated, "solo camisetas e infantil; verão ya existía")
	assert.Zero(t, stats.PartialFailures)

	assert.Equal(t, []string{"camisetas", "infantil", "verão"}, f.store.CategoryNames(f.target.ID))

	copies := f.store.ProductsOf(f.target.ID)
	require.Len(t, copies, 2)
	for i, c := range copies {
		orig := f.products[i]
		assert.NotEqual(t, orig.ID, c.ID)
		assert.Equal(t, f.target.ID, c.UserID)
		assert.Equal(t, orig.Name, c.Name)
		assert.True(t, orig.Price.Equal(c.Price))
		assert.Equal(t, orig.Categories, c.Categories)
		assert.JSONEq(t, string(orig.Attributes), string(c.Attributes))

		imgs := f.store.ImagesOf(c.ID)
		require.Len(t, imgs, 3)
		assert.True(t, imgs[0].IsFeatured)
		assert.Equal(t, []int{0, 1, 2}, []int{imgs[0].DisplayOrder, imgs[1].DisplayOrder, imgs[2].DisplayOrder})

		tiers := f.store.TiersOf(c.ID)
		require.Len(t, tiers, 2)
		assert.Equal(t, 10, tiers[0].MinQuantity)
		assert.Equal(t, 50, tiers[1].MinQuantity)
	}
}

func TestCopy_NoModificaElOrigen(t *testing.T) {
	f := newCopyFixture(t)

	_, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	orig := f.store.ProductsOf(f.source.ID)
	require.Len(t, orig, 2)
	assert.Equal(t, f.products[0].ID, orig[0].ID)
	assert.Equal(t, f.source.ID, orig[0].UserID)
	assert.Len(t, f.store.ImagesOf(f.products[0].ID), 3)
	assert.Len(t, f.store.TiersOf(f.products[1].ID), 2)
}

func TestCopy_RepetirCreaOtroJuegoDeDuplicados(t *testing.T) {
	f := newCopyFixture(t)
	uc := f.useCase(nil, nil)

	_, err := uc.Copy(context.Background(), f.input())
	require.NoError(t, err)
	stats, err := uc.Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ProductsCreated)
	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Equal(t, 4, stats.TiersCreated)
	assert.Zero(t, stats.CategoriesCreated, "las categorías ya existen en el destino")
	assert.Len(t, f.store.ProductsOf(f.target.ID), 4)
}

func TestCopy_MismaCuentaSeRechazaAntesDeCualquierIO(t *testing.T) {
	f := newCopyFixture(t)
	in := f.input()
	in.TargetUserID = in.SourceUserID

	stats, err := f.useCase(nil, nil).Copy(context.Background(), in)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.TotalCalls(), "no debe leer ni escribir")
	assert.Zero(t, f.tx.Runs)
}

func TestCopy_EntradaInvalida(t *testing.T) {
	f := newCopyFixture(t)
	uc := f.useCase(nil, nil)

	cases := map[string]catalog.CopyInput{
		"sin origen":            {TargetUserID: f.target.ID, ProductIDs: []string{f.products[0].ID}},
		"sin destino":           {SourceUserID: f.source.ID, ProductIDs: []string{f.products[0].ID}},
		"sin productos":         {SourceUserID: f.source.ID, TargetUserID: f.target.ID},
		"ids en blanco":         {SourceUserID: f.source.ID, TargetUserID: f.target.ID, ProductIDs: []string{" ", ""}},
		"mismo id con espacios": {SourceUserID: " " + f.source.ID, TargetUserID: f.source.ID, ProductIDs: []string{f.products[0].ID}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Copy(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, f.store.TotalCalls())
}

func TestCopy_ProductosDeOtraCuentaDevuelveNotFound(t *testing.T) {
	f := newCopyFixture(t)
	in := f.input()
	in.SourceUserID = f.target.ID
	in.TargetUserID = f.source.ID

	_, err := f.useCase(nil, nil).Copy(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.store.ProductsOf(f.source.ID), 2)
}

func TestCopy_IdsDuplicadosSeCopianUnaVez(t *testing.T) {
	f := newCopyFixture(t)
	in := f.input()
	in.ProductIDs = []string{f.products[0].ID, f.products[0].ID, " "}

	stats, err := f.useCase(nil, nil).Copy(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ProductsCreated)
	assert.Equal(t, 3, stats.ImagesCreated)
	assert.Equal(t, 2, stats.TiersCreated)
}

func TestCopy_ImagenSinProductoMapeadoSeOmite(t *testing.T) {
	f := newCopyFixture(t)
	images := strayImages{
		ProductImageRepository: f.store.Images(),
		stray:                  &entity.ProductImage{ID: "img-huerfana", ProductID: "producto-fantasma", URL: "https://cdn.vitrine.test/x.jpg"},
	}

	stats, err := f.useCase(images, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Zero(t, stats.PartialFailures)
}

func TestCopy_FallaDeImagenesEsParcial(t *testing.T) {
	f := newCopyFixture(t)
	f.store.Fail("images.CreateMany", nil)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ProductsCreated)
	assert.Zero(t, stats.ImagesCreated)
	assert.Equal(t, 4, stats.TiersCreated)
	assert.Equal(t, 1, stats.PartialFailures)
}

func TestCopy_FallaEnMedioDelLoteNoCuentaImagenes(t *testing.T) {
	f := newCopyFixture(t)
	f.store.FailItem("images.CreateMany", 3)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Zero(t, stats.ImagesCreated, "el lote se descarta completo")
	assert.Equal(t, 4, stats.TiersCreated)
	assert.Equal(t, 1, stats.PartialFailures)
	for _, c := range f.store.ProductsOf(f.target.ID) {
		assert.Empty(t, f.store.ImagesOf(c.ID))
	}
}

func TestCopy_FallaEnMedioDelLoteNoCuentaEscalas(t *testing.T) {
	f := newCopyFixture(t)
	f.store.FailItem("tiers.CreateMany", 2)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Zero(t, stats.TiersCreated)
	for _, c := range f.store.ProductsOf(f.target.ID) {
		assert.Empty(t, f.store.TiersOf(c.ID))
	}
}

func TestCopy_IdsDeCuentaConEspaciosSeRecortan(t *testing.T) {
	f := newCopyFixture(t)
	in := f.input()
	in.SourceUserID = " " + f.source.ID + " "
	in.TargetUserID = "\t" + f.target.ID + " "

	stats, err := f.useCase(nil, nil).Copy(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ProductsCreated)
	copies := f.store.ProductsOf(f.target.ID)
	require.Len(t, copies, 2)
	for _, c := range copies {
		assert.Equal(t, f.target.ID, c.UserID)
	}
}

func TestCopy_FallasDeLecturaYCategoriasSeAcumulan(t *testing.T) {
	f := newCopyFixture(t)
	f.store.Fail("categories.ListNamesByUser", nil)
	f.store.Fail("tiers.ListByProducts", nil)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ProductsCreated)
	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Zero(t, stats.TiersCreated)
	assert.Zero(t, stats.CategoriesCreated)
	assert.Equal(t, 2, stats.PartialFailures)
}

func TestCopy_FallaAlInsertarProductoEsFatal(t *testing.T) {
	f := newCopyFixture(t)
	f.store.Fail("products.Create", nil)

	stats, err := f.useCase(nil, nil).Copy(context.Background(), f.input())

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, memstore.ErrInjected)
	assert.Zero(t, f.store.Calls("images.CreateMany"))
}

func TestCopy_FallaAlLeerOrigenEsFatal(t *testing.T) {
	f := newCopyFixture(t)
	f.store.Fail("products.ListByIDsAndOwner", nil)

	_, err := f.useCase(nil, nil).Copy(context.Background(), f.input())

	assert.ErrorIs(t, err, memstore.ErrInjected)
	assert.Empty(t, f.store.ProductsOf(f.target.ID))
}

// ────────────────────────────────────────────────────────────────────────────
// Atómico
// ────────────────────────────────────────────────────────────────────────────

func TestCopy_AtomicoExitoso(t *testing.T) {
	f := newCopyFixture(t)
	in := f.input()
	in.Atomic = true

	stats, err := f.useCase(nil, nil).Copy(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.Runs)
	assert.Equal(t, 2, stats.ProductsCreated)
	assert.Equal(t, 6, stats.ImagesCreated)
	assert.Equal(t, 4, stats.TiersCreated)
	assert.Equal(t, 2, stats.CategoriesCreated)
}

func TestCopy_AtomicoRevierteTodoAnteFallaDeEscalas(t *testing.T) {
	f := newCopyFixture(t)
	f.store.Fail("tiers.CreateMany", nil)
	in := f.input()
	in.Atomic = true

	stats, err := f.useCase(nil, nil).Copy(context.Background(), in)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, memstore.ErrInjected)
	assert.Empty(t, f.store.ProductsOf(f.target.ID), "los productos copiados se revierten")
	assert.Equal(t, []string{"verão"}, f.store.CategoryNames(f.target.ID))
}

func TestCopy_AtomicoSinTxRunner(t *testing.T) {
	f := newCopyFixture(t)
	uc := catalog.NewCopyUseCase(f.store.Products(), f.store.Images(), f.store.Tiers(), f.store.Categories(),
		nil, nil, nil, zerolog.Nop())
	in := f.input()
	in.Atomic = true

	_, err := uc.Copy(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.TotalCalls())
}

// ────────────────────────────────────────────────────────────────────────────
// Sincronización y métricas
// ────────────────────────────────────────────────────────────────────────────

func TestCopy_SincronizaCategoriasDelDestino(t *testing.T) {
	f := newCopyFixture(t)
	syncer := &countingSyncer{err: memstore.ErrInjected}
	in := f.input()
	in.SyncCategories = true

	stats, err := f.useCase(nil, syncer).Copy(context.Background(), in)

	require.NoError(t, err, "una falla de sincronización solo se registra")
	assert.Equal(t, []string{f.target.ID}, syncer.calls)
	assert.Equal(t, 2, stats.ProductsCreated)
}

func TestCopy_RegistraMetricas(t *testing.T) {
	f := newCopyFixture(t)
	reg := prometheus.NewRegistry()
	uc := catalog.NewCopyUseCase(f.store.Products(), f.store.Images(), f.store.Tiers(), f.store.Categories(),
		f.tx, nil, metrics.NewCatalogMetrics(reg), zerolog.Nop())

	_, err := uc.Copy(context.Background(), f.input())
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["catalog_copy_total"])
	assert.True(t, names["catalog_copy_entities_created_total"])
}
