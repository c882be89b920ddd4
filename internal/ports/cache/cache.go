// Package cache define el puerto del cache de sugerencias de recetas.
package cache

import (
	"context"
	"time"
)

// Cache guarda blobs por key con TTL. Get devuelve found=false si no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, found bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
