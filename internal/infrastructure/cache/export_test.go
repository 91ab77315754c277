package cache

import "time"

// NewWithStore permite inyectar un store falso en los tests.
func NewWithStore(store cmdable, ttl time.Duration) *StorefrontCache {
	return newStorefrontCache(store, ttl)
}

// TTL expone la vigencia efectiva.
func (c *StorefrontCache) TTL() time.Duration { return c.ttl }
