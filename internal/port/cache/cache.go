// Package cache defines the port interface for in-process caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys with a TTL. Implementations
// may evict entries at any time; callers must treat misses as normal.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
