// Package cache holds rendered responses for a fixed time, keyed by request path.
package cache

import (
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	items *ttlcache.Cache[string, []byte]
	group singleflight.Group
}

// New returns an empty cache. Hits never extend an entry's lifetime, so a
// page is reloaded once its TTL has passed however often it is served.
func New() *Cache {
	return &Cache{
		items: ttlcache.New[string, []byte](
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

// GetOrLoad returns the cached value for key or calls load once for all
// concurrent callers that miss. Errors from load are returned to every
// waiting caller, never stored.
func (c *Cache) GetOrLoad(key string, ttl time.Duration, load func() ([]byte, error)) ([]byte, error) {
	if item := c.items.Get(key); item != nil {
		return item.Value(), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if item := c.items.Get(key); item != nil {
			return item.Value(), nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.items.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Coalesced cache miss", "key", key)
	}
	return v.([]byte), nil
}

// Start removes expired entries as they expire. It blocks until Stop.
func (c *Cache) Start() {
	c.items.Start()
}

func (c *Cache) Stop() {
	c.items.Stop()
}

// Len counts stored entries, including expired ones not yet removed.
func (c *Cache) Len() int {
	return c.items.Len()
}
