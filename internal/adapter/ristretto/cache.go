// Package ristretto implements the cache port with an in-process
// dgraph-io/ristretto cache. It holds serialized gateway results so that
// repeated validation and analysis work skips the provider round trip.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a ristretto-backed in-process cache.
type Cache struct {
	inner *ristretto.Cache[string, []byte]
}

// New creates a cache bounded by maxCostBytes of stored value bytes.
func New(maxCostBytes int64) (*Cache, error) {
	inner, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		// Counter space sized for roughly ten times the expected entry count,
		// assuming payloads around 100 bytes.
		NumCounters: maxCostBytes / 100 * 10,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Get retrieves the value stored under key, if present.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := c.inner.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key for at most ttl. Ristretto admission may
// reject the entry; that is not an error.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.inner.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Delete removes key from the cache.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.inner.Del(key)
	return nil
}

// Close releases cache resources.
func (c *Cache) Close() {
	c.inner.Close()
}
