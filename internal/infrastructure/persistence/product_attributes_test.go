package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCache records Get and Set calls
type countingCache struct {
	shared.Cache
	mu   sync.Mutex
	gets int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.Cache.Get(ctx, key, dest)
}

func (c *countingCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, value, ttl)
}

func newCountingCache(t *testing.T) *countingCache {
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	return &countingCache{Cache: mem}
}

func TestAttributeBinder_SlotKeys(t *testing.T) {
	b := NewAttributeBinder(&stubOwners{}, &stubDiscounts{}, &stubStatuses{}, nil)

	attrs := b.Bind(7, 3)
	assert.Equal(t, "owner:7", attrs.Owner.Key())
	assert.Equal(t, "discount:7", attrs.Discount.Key())
	assert.Equal(t, "status:7", attrs.Status.Key())
	assert.Equal(t, shared.AttributeNotStarted, attrs.Owner.State())
}

func TestAttributeBinder_OwnerUsesOwnerID(t *testing.T) {
	b := NewAttributeBinder(&stubOwners{}, nil, nil, nil)

	owner := b.Bind(7, 3).Owner.Get(context.Background())
	require.True(t, owner.IsOk())
	assert.Equal(t, int64(3), owner.Value().ID)
}

func TestAttributeBinder_StatusCacheHit(t *testing.T) {
	c := newCountingCache(t)
	statuses := &stubStatuses{status: catalog.ProductStatusInactive}
	b := NewAttributeBinder(nil, nil, statuses, cache.NewAttributeCache(c, time.Minute, nil))
	ctx := context.Background()

	require.NoError(t, c.Cache.Set(ctx, "status:5", catalog.ProductStatusActive, time.Minute))

	status := b.Bind(5, 1).Status.Get(ctx)
	require.True(t, status.IsOk())
	assert.Equal(t, catalog.ProductStatusActive, status.Value())
	assert.Zero(t, statuses.calls.Load())
	assert.Equal(t, 0, c.sets)
}

func TestAttributeBinder_StatusCacheMiss(t *testing.T) {
	c := newCountingCache(t)
	statuses := &stubStatuses{status: catalog.ProductStatusActive}
	b := NewAttributeBinder(nil, nil, statuses, cache.NewAttributeCache(c, time.Minute, nil))
	ctx := context.Background()

	status := b.Bind(5, 1).Status.Get(ctx)
	require.True(t, status.IsOk())
	assert.Equal(t, catalog.ProductStatusActive, status.Value())
	assert.Equal(t, int32(1), statuses.calls.Load())
	assert.Equal(t, 1, c.sets)

	var cached catalog.ProductStatus
	found, err := c.Cache.Get(ctx, "status:5", &cached)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, catalog.ProductStatusActive, cached)
}

func TestAttributeBinder_NilBinder(t *testing.T) {
	var b *AttributeBinder
	assert.Equal(t, catalog.Attributes{}, b.Bind(1, 1))
}
