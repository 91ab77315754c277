// Package storefront expone la vitrina pública de cada vendedor y la edición de su perfil.
package storefront

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// maxStorefrontProducts tope de productos mostrados en la vitrina.
const maxStorefrontProducts = 200

// Cache guarda vitrinas armadas por slug. Un error de cache nunca impide responder.
type Cache interface {
	Get(ctx context.Context, slug string) (*dto.StorefrontResponse, bool, error)
	Set(ctx context.Context, slug string, sf *dto.StorefrontResponse) error
	Invalidate(ctx context.Context, slug string) error
}

// UseCase vitrina pública y perfil del vendedor.
type UseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	loader   *catalog.Loader
	cache    Cache
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	loader *catalog.Loader,
	cache Cache,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		users:    users,
		products: products,
		loader:   loader,
		cache:    cache,
		log:      log.With().Str("component", "storefront").Logger(),
	}
}

// GetBySlug vitrina publicada con sus productos activos, imágenes y escalas.
// Cuentas no activas se reportan como inexistentes.
func (uc *UseCase) GetBySlug(ctx context.Context, slug string) (*dto.StorefrontResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, fmt.Errorf("%w: slug requerido", domain.ErrInvalidInput)
	}
	if uc.cache != nil {
		sf, ok, err := uc.cache.Get(ctx, slug)
		if err != nil {
			uc.log.Warn().Err(err).Str("slug", slug).Msg("lectura de cache falló")
		} else if ok {
			return sf, nil
		}
	}

	user, err := uc.users.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, fmt.Errorf("%w: vitrina no encontrada", domain.ErrNotFound)
	}
	products, err := uc.products.ListByUser(ctx, user.ID, true, maxStorefrontProducts, 0)
	if err != nil {
		return nil, err
	}
	items, err := uc.loader.Load(ctx, products)
	if err != nil {
		return nil, err
	}
	sf := &dto.StorefrontResponse{
		Slug:       user.StoreSlug,
		StoreName:  user.StoreName,
		Bio:        user.Bio,
		WhatsApp:   user.WhatsApp,
		AvatarURL:  user.AvatarURL,
		BannerURL:  user.BannerURL,
		Categories: categoriesOf(products),
		Products:   usecase.ToProductResponses(items),
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, slug, sf); err != nil {
			uc.log.Warn().Err(err).Str("slug", slug).Msg("escritura de cache falló")
		}
	}
	return sf, nil
}

// UpdateProfile aplica los campos no nil. El slug se normaliza con Slugify;
// ErrDuplicate si otra vitrina ya lo usa.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	oldSlug := user.StoreSlug

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.StoreName != nil {
		user.StoreName = strings.TrimSpace(*in.StoreName)
	}
	if in.StoreSlug != nil {
		slug := Slugify(*in.StoreSlug)
		if slug == "" {
			return nil, fmt.Errorf("%w: el slug debe contener letras o números", domain.ErrInvalidInput)
		}
		user.StoreSlug = slug
	}
	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.WhatsApp != nil {
		user.WhatsApp = onlyDigits(*in.WhatsApp)
	}
	if in.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.BannerURL != nil {
		user.BannerURL = strings.TrimSpace(*in.BannerURL)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, oldSlug, user.StoreSlug)
	return usecase.ToUserResponse(user), nil
}

func (uc *UseCase) invalidate(ctx context.Context, slugs ...string) {
	if uc.cache == nil {
		return
	}
	for _, s := range slugs {
		if s == "" {
			continue
		}
		if err := uc.cache.Invalidate(ctx, s); err != nil {
			uc.log.Warn().Err(err).Str("slug", s).Msg("invalidación de cache falló")
		}
	}
}

// categoriesOf categorías distintas de los productos, ordenadas.
func categoriesOf(products []*entity.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok || c == "" {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
