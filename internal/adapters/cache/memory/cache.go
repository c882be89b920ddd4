package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache es el cache in-process (un solo nodo) sobre go-cache.
type Cache struct {
	c *gocache.Cache
}

// New crea el cache; defaultTTL aplica cuando Set recibe ttl <= 0.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, defaultTTL*2)}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := c.c.Get(key)
	if !found {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (c *Cache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.c.Set(key, append([]byte(nil), val...), ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Delete(key)
	return nil
}

func (c *Cache) Len() int { return c.c.ItemCount() }

// Flush vacía el cache.
func (c *Cache) Flush() { c.c.Flush() }
