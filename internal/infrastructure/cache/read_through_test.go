package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyCache counts calls on top of a MemoryCache
type spyCache struct {
	shared.Cache
	mu   sync.Mutex
	gets int
	sets int
}

func (s *spyCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	s.gets++
	s.mu.Unlock()
	return s.Cache.Get(ctx, key, dest)
}

func (s *spyCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.Cache.Set(ctx, key, value, ttl)
}

func newSpy(t *testing.T) *spyCache {
	mem, _ := newTestMemoryCache(t)
	return &spyCache{Cache: mem}
}

func countingFetch[T any](value T, err error) (func(context.Context) (T, error), *int) {
	calls := 0
	return func(context.Context) (T, error) {
		calls++
		return value, err
	}, &calls
}

func TestAttributeKey(t *testing.T) {
	assert.Equal(t, "status:42", AttributeKey("status", 42))
}

func TestReadThrough_Hit(t *testing.T) {
	spy := newSpy(t)
	ac := NewAttributeCache(spy, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, spy.Cache.Set(ctx, "status:1", 1, time.Minute))
	fetch, calls := countingFetch(0, nil)

	got, err := ReadThrough(ctx, ac, "status", 1, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, 0, spy.sets)
}

func TestReadThrough_MissFetchesOnceAndStores(t *testing.T) {
	spy := newSpy(t)
	ac := NewAttributeCache(spy, time.Minute, nil)
	ctx := context.Background()

	fetch, calls := countingFetch(1, nil)

	got, err := ReadThrough(ctx, ac, "status", 9, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 1, spy.sets)

	// second read is served from the cache
	got, err = ReadThrough(ctx, ac, "status", 9, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, *calls)
}

func TestReadThrough_FetchErrorIsNotCached(t *testing.T) {
	spy := newSpy(t)
	ac := NewAttributeCache(spy, time.Minute, nil)

	boom := errors.New("discount service down")
	fetch, calls := countingFetch(0, boom)

	_, err := ReadThrough(context.Background(), ac, "status", 2, fetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 0, spy.sets)
}

func TestReadThrough_BrokenCacheDegradesToFetch(t *testing.T) {
	ac := NewAttributeCache(brokenCache{}, time.Minute, nil)
	fetch, calls := countingFetch(1, nil)

	got, err := ReadThrough(context.Background(), ac, "status", 3, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, *calls)
}

func TestNewAttributeCache_DefaultTTL(t *testing.T) {
	ac := NewAttributeCache(brokenCache{}, 0, nil)
	assert.Equal(t, shared.DefaultCacheTTL, ac.TTL())
}

func TestAttributeCache_Invalidate(t *testing.T) {
	spy := newSpy(t)
	ac := NewAttributeCache(spy, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, spy.Cache.Set(ctx, "owner:4", "x", time.Minute))
	require.NoError(t, ac.Invalidate(ctx, "owner", 4))

	var got string
	found, err := spy.Cache.Get(ctx, "owner:4", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
