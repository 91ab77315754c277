package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// Loader arma Items leyendo imágenes y escalas de varios productos en paralelo.
type Loader struct {
	images repository.ProductImageRepository
	tiers  repository.PriceTierRepository
}

// NewLoader construye el loader.
func NewLoader(images repository.ProductImageRepository, tiers repository.PriceTierRepository) *Loader {
	return &Loader{images: images, tiers: tiers}
}

// Load devuelve un Item por producto, en el orden de products.
func (l *Loader) Load(ctx context.Context, products []*entity.Product) ([]Item, error) {
	if len(products) == 0 {
		return []Item{}, nil
	}
	ids := productIDs(products)

	var (
		images []*entity.ProductImage
		tiers  []entity.PriceTier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = l.images.ListByProducts(gctx, ids)
		if err != nil {
			return fmt.Errorf("load images: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tiers, err = l.tiers.ListByProducts(gctx, ids)
		if err != nil {
			return fmt.Errorf("load price tiers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	imagesBy := make(map[string][]*entity.ProductImage, len(products))
	for _, img := range images {
		imagesBy[img.ProductID] = append(imagesBy[img.ProductID], img)
	}
	tiersBy := make(map[string][]entity.PriceTier, len(products))
	for _, t := range tiers {
		tiersBy[t.ProductID] = append(tiersBy[t.ProductID], t)
	}

	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, Item{Product: p, Images: imagesBy[p.ID], Tiers: tiersBy[p.ID]})
	}
	return items, nil
}

func productIDs(products []*entity.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
