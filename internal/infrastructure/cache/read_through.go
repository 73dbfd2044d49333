package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AttributeCache fronts remote attribute lookups with a cache
type AttributeCache struct {
	cache   shared.Cache
	ttl     time.Duration
	metrics *telemetry.CacheMetrics
}

// NewAttributeCache wraps c. A non-positive ttl uses shared.DefaultCacheTTL;
// metrics may be nil.
func NewAttributeCache(c shared.Cache, ttl time.Duration, metrics *telemetry.CacheMetrics) *AttributeCache {
	if ttl <= 0 {
		ttl = shared.DefaultCacheTTL
	}
	return &AttributeCache{cache: c, ttl: ttl, metrics: metrics}
}

// TTL returns the entry lifetime
func (a *AttributeCache) TTL() time.Duration {
	return a.ttl
}

// Invalidate drops the cached attribute of an entity
func (a *AttributeCache) Invalidate(ctx context.Context, attribute string, id int64) error {
	return a.cache.Delete(ctx, AttributeKey(attribute, id))
}

// AttributeKey builds the cache key "<attribute>:<id>"
func AttributeKey(attribute string, id int64) string {
	return fmt.Sprintf("%s:%d", attribute, id)
}

// ReadThrough returns the cached attribute or fetches and stores it. A broken
// cache degrades to a miss; a failed fetch is returned and nothing is stored.
func ReadThrough[T any](ctx context.Context, a *AttributeCache, attribute string, id int64, fetch func(context.Context) (T, error)) (T, error) {
	key := AttributeKey(attribute, id)
	log := logger.L(ctx).With(zap.String("cache_key", key))

	var cached T
	found, err := a.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		a.metrics.Failure(ctx, attribute)
		log.Warn("Cache read failed, fetching from source", zap.Error(err))
	case found:
		a.metrics.Hit(ctx, attribute)
		return cached, nil
	default:
		a.metrics.Miss(ctx, attribute)
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := a.cache.Set(ctx, key, value, a.ttl); err != nil {
		a.metrics.Failure(ctx, attribute)
		log.Warn("Cache write failed", zap.Error(err))
	}
	return value, nil
}
