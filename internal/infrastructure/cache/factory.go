package cache

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory builds the configured cache backend
type Factory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the memory cache when
// Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the backend named by the cache configuration. The returned
// cache also implements Close.
func (f *Factory) Create(ctx context.Context) (shared.Cache, error) {
	switch f.cacheConfig.Backend {
	case "", "memory":
		f.logger.Info("using in-memory cache")
		return NewMemoryCache(), nil
	case "redis", "tiered":
	default:
		return nil, fmt.Errorf("unknown cache backend %q", f.cacheConfig.Backend)
	}

	redisCache, err := NewRedisCache(ctx, f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Cached attributes will not be shared across instances.",
			zap.Error(err),
		)
		return NewMemoryCache(), nil
	}

	if f.cacheConfig.Backend == "tiered" {
		f.logger.Info("using tiered cache", zap.String("redis", f.redisConfig.Addr()))
		return NewTieredCache(NewMemoryCache(), redisCache, WithTieredLogger(f.logger)), nil
	}
	f.logger.Info("using Redis cache", zap.String("redis", f.redisConfig.Addr()))
	return redisCache, nil
}
