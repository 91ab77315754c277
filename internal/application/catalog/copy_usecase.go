package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/jhoicas/Vitrine-api/pkg/metrics"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// CopyInput parámetros de una copia de productos entre cuentas.
type CopyInput struct {
	SourceUserID string
	TargetUserID string
	ProductIDs   []string
	// Atomic ejecuta categorías, productos, imágenes y escalas en una sola transacción:
	// cualquier falla revierte todo. En false la copia es best-effort.
	Atomic bool
	// SyncCategories sincroniza las categorías del destino con sus productos al terminar.
	SyncCategories bool
}

// CopyStats entidades creadas en la cuenta destino.
type CopyStats struct {
	CategoriesCreated int
	ProductsCreated   int
	ImagesCreated     int
	TiersCreated      int
	// PartialFailures pasos best-effort que fallaron (0 en modo atómico).
	PartialFailures int
}

// CopyUseCase duplica productos, imágenes, escalas y categorías de una cuenta a otra.
// No es idempotente: repetir la misma copia crea otro juego de duplicados.
type CopyUseCase struct {
	products   repository.ProductRepository
	images     repository.ProductImageRepository
	tiers      repository.PriceTierRepository
	categories repository.CategoryRepository
	tx         TxRunner
	syncer     CategorySyncer
	metrics    *metrics.CatalogMetrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewCopyUseCase construye el caso de uso. syncer y m pueden ser nil.
func NewCopyUseCase(
	products repository.ProductRepository,
	images repository.ProductImageRepository,
	tiers repository.PriceTierRepository,
	categories repository.CategoryRepository,
	tx TxRunner,
	syncer CategorySyncer,
	m *metrics.CatalogMetrics,
	log zerolog.Logger,
) *CopyUseCase {
	return &CopyUseCase{
		products:   products,
		images:     images,
		tiers:      tiers,
		categories: categories,
		tx:         tx,
		syncer:     syncer,
		metrics:    m,
		log:        log.With().Str("component", "catalog.copy").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// copyRepos repos usados por una ejecución: los del pool o los atados a la tx.
type copyRepos struct {
	products   repository.ProductRepository
	images     repository.ProductImageRepository
	tiers      repository.PriceTierRepository
	categories repository.CategoryRepository
}

// Copy valida la entrada (sin I/O), lee los productos del origen y los duplica en el destino.
// Errores: domain.ErrInvalidInput, domain.ErrNotFound si ningún id pertenece al origen,
// o el error de lectura / inserción de productos. Las fallas de categorías, imágenes
// y escalas no abortan la copia best-effort; se registran y se cuentan en PartialFailures.
func (uc *CopyUseCase) Copy(ctx context.Context, in CopyInput) (*CopyStats, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	ids := in.ProductIDs
	if in.Atomic && uc.tx == nil {
		return nil, fmt.Errorf("%w: copia atómica no disponible", domain.ErrInvalidInput)
	}
	start := time.Now()
	log := uc.log.With().
		Str("source_user_id", in.SourceUserID).
		Str("target_user_id", in.TargetUserID).
		Int("requested", len(ids)).
		Bool("atomic", in.Atomic).
		Logger()

	sources, err := uc.products.ListByIDsAndOwner(ctx, ids, in.SourceUserID)
	if err != nil {
		uc.metrics.ObserveCopy(metrics.CopyResultFailure, time.Since(start))
		return nil, fmt.Errorf("fetch source products: %w", err)
	}
	if len(sources) == 0 {
		uc.metrics.ObserveCopy(metrics.CopyResultFailure, time.Since(start))
		return nil, fmt.Errorf("%w: ninguno de los productos pertenece a la cuenta origen", domain.ErrNotFound)
	}
	if len(sources) < len(ids) {
		log.Warn().Int("found", len(sources)).Msg("algunos productos no pertenecen a la cuenta origen; se omiten")
	}

	var (
		stats   CopyStats
		partial error
	)
	if in.Atomic {
		err = uc.tx.RunCatalog(ctx, func(
			productRepo repository.ProductRepository,
			imageRepo repository.ProductImageRepository,
			tierRepo repository.PriceTierRepository,
			categoryRepo repository.CategoryRepository,
		) error {
			var runErr error
			stats, partial, runErr = uc.run(ctx, log, copyRepos{productRepo, imageRepo, tierRepo, categoryRepo}, in.TargetUserID, sources, true)
			return runErr
		})
	} else {
		stats, partial, err = uc.run(ctx, log, copyRepos{uc.products, uc.images, uc.tiers, uc.categories}, in.TargetUserID, sources, false)
	}
	if err != nil {
		uc.metrics.ObserveCopy(metrics.CopyResultFailure, time.Since(start))
		log.Error().Err(err).Msg("copia de productos abortada")
		return nil, err
	}

	stats.PartialFailures = len(multierr.Errors(partial))
	result := metrics.CopyResultSuccess
	if partial != nil {
		result = metrics.CopyResultPartial
		log.Warn().Err(partial).Int("failed_steps", stats.PartialFailures).Msg("copia completada con fallas parciales")
	}
	uc.metrics.ObserveCopy(result, time.Since(start))
	uc.metrics.AddCreated("categories", stats.CategoriesCreated)
	uc.metrics.AddCreated("products", stats.ProductsCreated)
	uc.metrics.AddCreated("images", stats.ImagesCreated)
	uc.metrics.AddCreated("price_tiers", stats.TiersCreated)

	if in.SyncCategories && uc.syncer != nil {
		if n, err := uc.syncer.Sync(ctx, in.TargetUserID); err != nil {
			log.Warn().Err(err).Msg("sincronización de categorías falló")
		} else {
			stats.CategoriesCreated += n
		}
	}

	log.Info().
		Int("categories", stats.CategoriesCreated).
		Int("products", stats.ProductsCreated).
		Int("images", stats.ImagesCreated).
		Int("price_tiers", stats.TiersCreated).
		Dur("took", time.Since(start)).
		Msg("copia de productos completada")
	return &stats, nil
}

// run ejecuta los pasos de escritura. strict=true (modo atómico) convierte cualquier
// falla en error fatal; en otro caso las fallas de pasos best-effort se acumulan en partial.
func (uc *CopyUseCase) run(
	ctx context.Context,
	log zerolog.Logger,
	r copyRepos,
	targetUserID string,
	sources []*entity.Product,
	strict bool,
) (stats CopyStats, partial error, err error) {
	now := uc.now()

	// fail decide si un paso best-effort aborta (strict) o se acumula.
	fail := func(step string, stepErr error) error {
		if strict {
			return fmt.Errorf("copy %s: %w", step, stepErr)
		}
		uc.metrics.IncPartialFailure(step)
		log.Error().Err(stepErr).Str("step", step).Msg("paso de la copia falló; se continúa")
		partial = multierr.Append(partial, fmt.Errorf("%w: %s: %v", domain.ErrPartialFailure, step, stepErr))
		return nil
	}

	// Categorías: solo las que el destino aún no tiene.
	if missing, cErr := uc.missingCategories(ctx, r.categories, targetUserID, sources); cErr != nil {
		if err = fail("categories", cErr); err != nil {
			return stats, partial, err
		}
	} else if len(missing) > 0 {
		n, cErr := r.categories.CreateMany(ctx, targetUserID, missing)
		if cErr != nil {
			if err = fail("categories", cErr); err != nil {
				return stats, partial, err
			}
		}
		stats.CategoriesCreated = n
	}

	// Productos: insert-and-capture por ítem; el mapa solo se llena tras un insert exitoso.
	idMap := make(map[string]string, len(sources))
	for _, src := range sources {
		dup := duplicateProduct(src, targetUserID, now)
		if pErr := r.products.Create(ctx, dup); pErr != nil {
			return stats, partial, fmt.Errorf("insert product copy of %s: %w", src.ID, pErr)
		}
		idMap[src.ID] = dup.ID
		stats.ProductsCreated++
	}

	images, tiers, imgErr, tierErr := uc.fetchChildren(ctx, r, productIDs(sources), !strict)

	if imgErr != nil {
		if err = fail("images", imgErr); err != nil {
			return stats, partial, err
		}
	} else if copies := remapImages(log, images, idMap, now); len(copies) > 0 {
		n, iErr := r.images.CreateMany(ctx, copies)
		if iErr != nil {
			if err = fail("images", iErr); err != nil {
				return stats, partial, err
			}
		} else {
			stats.ImagesCreated = n
		}
	}

	if tierErr != nil {
		if err = fail("price_tiers", tierErr); err != nil {
			return stats, partial, err
		}
	} else if copies := remapTiers(log, tiers, idMap, now); len(copies) > 0 {
		n, tErr := r.tiers.CreateMany(ctx, copies)
		if tErr != nil {
			if err = fail("price_tiers", tErr); err != nil {
				return stats, partial, err
			}
		} else {
			stats.TiersCreated = n
		}
	}

	return stats, partial, nil
}

// fetchChildren lee imágenes y escalas de los productos originales. Las lecturas son
// independientes; en paralelo solo fuera de una transacción (una tx usa una única conexión).
func (uc *CopyUseCase) fetchChildren(
	ctx context.Context,
	r copyRepos,
	ids []string,
	parallel bool,
) (images []*entity.ProductImage, tiers []entity.PriceTier, imgErr, tierErr error) {
	if !parallel {
		images, imgErr = r.images.ListByProducts(ctx, ids)
		tiers, tierErr = r.tiers.ListByProducts(ctx, ids)
		return images, tiers, imgErr, tierErr
	}
	var g errgroup.Group
	g.Go(func() error {
		images, imgErr = r.images.ListByProducts(ctx, ids)
		return nil
	})
	g.Go(func() error {
		tiers, tierErr = r.tiers.ListByProducts(ctx, ids)
		return nil
	})
	_ = g.Wait()
	return images, tiers, imgErr, tierErr
}

func (uc *CopyUseCase) missingCategories(
	ctx context.Context,
	categories repository.CategoryRepository,
	targetUserID string,
	sources []*entity.Product,
) ([]string, error) {
	wanted := categoryUnion(sources)
	if len(wanted) == 0 {
		return nil, nil
	}
	existing, err := categories.ListNamesByUser(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("list target categories: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}
	missing := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// normalize valida sin I/O y devuelve la entrada con los ids recortados y los
// productos sin vacíos ni duplicados, en orden.
func (in CopyInput) normalize() (CopyInput, error) {
	src := strings.TrimSpace(in.SourceUserID)
	dst := strings.TrimSpace(in.TargetUserID)
	if src == "" || dst == "" {
		return in, fmt.Errorf("%w: sourceUserId y targetUserId son requeridos", domain.ErrInvalidInput)
	}
	if src == dst {
		return in, fmt.Errorf("%w: la cuenta origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.ProductIDs))
	ids := make([]string, 0, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return in, fmt.Errorf("%w: productIds no puede estar vacío", domain.ErrInvalidInput)
	}
	in.SourceUserID = src
	in.TargetUserID = dst
	in.ProductIDs = ids
	return in, nil
}

func duplicateProduct(src *entity.Product, ownerID string, now time.Time) *entity.Product {
	dup := *src
	dup.ID = uuid.NewString()
	dup.UserID = ownerID
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Sizes = cloneStrings(src.Sizes)
	dup.Colors = cloneStrings(src.Colors)
	dup.Categories = cloneStrings(src.Categories)
	if src.DiscountedPrice != nil {
		d := *src.DiscountedPrice
		dup.DiscountedPrice = &d
	}
	if src.Attributes != nil {
		dup.Attributes = append([]byte(nil), src.Attributes...)
	}
	return &dup
}

func remapImages(log zerolog.Logger, images []*entity.ProductImage, idMap map[string]string, now time.Time) []*entity.ProductImage {
	out := make([]*entity.ProductImage, 0, len(images))
	for _, img := range images {
		newProductID, ok := idMap[img.ProductID]
		if !ok {
			log.Error().Str("image_id", img.ID).Str("product_id", img.ProductID).Msg("imagen sin producto copiado; se omite")
			continue
		}
		out = append(out, &entity.ProductImage{
			ID:           uuid.NewString(),
			ProductID:    newProductID,
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
			IsFeatured:   img.IsFeatured,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return out
}

func remapTiers(log zerolog.Logger, tiers []entity.PriceTier, idMap map[string]string, now time.Time) []entity.PriceTier {
	out := make([]entity.PriceTier, 0, len(tiers))
	for _, t := range tiers {
		newProductID, ok := idMap[t.ProductID]
		if !ok {
			log.Error().Str("tier_id", t.ID).Str("product_id", t.ProductID).Msg("escala sin producto copiado; se omite")
			continue
		}
		c := t
		c.ID = uuid.NewString()
		c.ProductID = newProductID
		c.CreatedAt = now
		c.UpdatedAt = now
		if t.DiscountedUnitPrice != nil {
			d := *t.DiscountedUnitPrice
			c.DiscountedUnitPrice = &d
		}
		out = append(out, c)
	}
	return out
}

// categoryUnion etiquetas de categoría de los productos, sin vacíos ni repetidas, en orden de aparición.
func categoryUnion(products []*entity.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, c := range p.Categories {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
