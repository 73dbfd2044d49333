package cache

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultL1TTL = 30 * time.Second

// TieredCache reads a local cache before a shared one.
// L1 is local to the instance, L2 is shared across instances. L1 entries live
// at most l1TTL so a change written by another instance shows up quickly.
type TieredCache struct {
	l1     shared.Cache
	l2     shared.Cache
	l1TTL  time.Duration
	logger *zap.Logger
}

var _ shared.Cache = (*TieredCache)(nil)

// TieredOption configures a TieredCache
type TieredOption func(*TieredCache)

// WithL1TTL caps the lifetime of local entries. A non-positive ttl keeps the default.
func WithL1TTL(ttl time.Duration) TieredOption {
	return func(c *TieredCache) {
		if ttl > 0 {
			c.l1TTL = ttl
		}
	}
}

// WithTieredLogger sets the logger
func WithTieredLogger(logger *zap.Logger) TieredOption {
	return func(c *TieredCache) {
		c.logger = logger
	}
}

// NewTieredCache combines a local and a shared cache
func NewTieredCache(l1, l2 shared.Cache, opts ...TieredOption) *TieredCache {
	c := &TieredCache{l1: l1, l2: l2, l1TTL: defaultL1TTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get tries L1 then L2, populating L1 on an L2 hit
func (c *TieredCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	found, err := c.l1.Get(ctx, key, dest)
	if err != nil {
		c.logger.Warn("L1 cache error", zap.String("key", key), zap.Error(err))
	}
	if found {
		return true, nil
	}

	found, err = c.l2.Get(ctx, key, dest)
	if err != nil || !found {
		return false, err
	}
	if err := c.l1.Set(ctx, key, dest, c.l1TTL); err != nil {
		c.logger.Warn("Failed to populate L1 cache", zap.String("key", key), zap.Error(err))
	}
	return true, nil
}

// Set writes L2 first, then L1. A non-positive ttl means shared.DefaultCacheTTL.
func (c *TieredCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ttl = effectiveTTL(ttl)
	if err := c.l2.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	l1TTL := c.l1TTL
	if ttl < l1TTL {
		l1TTL = ttl
	}
	if err := c.l1.Set(ctx, key, value, l1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Delete removes key from both tiers
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	l2Err := c.l2.Delete(ctx, key)
	if err := c.l1.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to delete from L1 cache", zap.String("key", key), zap.Error(err))
	}
	return l2Err
}

// Close closes both tiers when they support it
func (c *TieredCache) Close() error {
	var errs []error
	for _, tier := range []shared.Cache{c.l1, c.l2} {
		if closer, ok := tier.(interface{ Close() error }); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}
