// Package cache guarda vitrinas públicas ya armadas en Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/storefront"
)

const keyPrefix = "vitrine:storefront:"

// DefaultTTL vigencia usada cuando la configuración no define una.
const DefaultTTL = 60 * time.Second

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

var _ storefront.Cache = (*StorefrontCache)(nil)

// StorefrontCache implementa storefront.Cache sobre Redis, serializando en JSON.
type StorefrontCache struct {
	store cmdable
	ttl   time.Duration
}

// NewStorefrontCache envuelve un cliente ya conectado.
func NewStorefrontCache(client *redis.Client, ttl time.Duration) *StorefrontCache {
	return newStorefrontCache(client, ttl)
}

func newStorefrontCache(store cmdable, ttl time.Duration) *StorefrontCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StorefrontCache{store: store, ttl: ttl}
}

// Connect abre el cliente a partir de una URL redis:// y verifica conectividad.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(slug string) string { return keyPrefix + slug }

// Get devuelve (nil, false, nil) cuando la vitrina no está en caché.
func (c *StorefrontCache) Get(ctx context.Context, slug string) (*dto.StorefrontResponse, bool, error) {
	raw, err := c.store.Get(ctx, key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", slug, err)
	}
	var sf dto.StorefrontResponse
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", slug, err)
	}
	return &sf, true, nil
}

func (c *StorefrontCache) Set(ctx context.Context, slug string, sf *dto.StorefrontResponse) error {
	if sf == nil {
		return nil
	}
	raw, err := json.Marshal(sf)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", slug, err)
	}
	if err := c.store.Set(ctx, key(slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", slug, err)
	}
	return nil
}

func (c *StorefrontCache) Invalidate(ctx context.Context, slug string) error {
	if slug == "" {
		return nil
	}
	if err := c.store.Del(ctx, key(slug)).Err(); err != nil {
		return fmt.Errorf("cache del %s: %w", slug, err)
	}
	return nil
}
