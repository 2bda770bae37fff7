package pagecache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache backed by go-cache.
type Memory struct {
	cache *cache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory returns a cache whose entries expire after ttl. Expired items
// are purged every cleanup interval.
func NewMemory(ttl, cleanup time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = 2 * ttl
	}
	return &Memory{cache: cache.New(ttl, cleanup)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, found := m.cache.Get(key)
	if !found {
		return nil, ErrMiss
	}
	page, ok := v.([]byte)
	if !ok {
		return nil, ErrMiss
	}
	return page, nil
}

func (m *Memory) Set(ctx context.Context, key string, page []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(page))
	copy(stored, page)
	m.cache.SetDefault(key, stored)
	return nil
}

// Len returns the number of cached pages, expired ones included until the
// next cleanup.
func (m *Memory) Len() int {
	return m.cache.ItemCount()
}

// Flush removes every entry.
func (m *Memory) Flush() {
	m.cache.Flush()
}
