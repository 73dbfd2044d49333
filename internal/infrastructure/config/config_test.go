package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, time.Hour, cfg.JWT.Expiration)
		assert.NotEmpty(t, cfg.JWT.Secret)
		assert.Equal(t, cfg.Remote.DiscountServiceURL, cfg.Remote.StatusServiceURL)
		assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
		assert.False(t, cfg.Telemetry.ProfilingEnabled)
		assert.Equal(t, "http://localhost:4040", cfg.Telemetry.ProfilingServerAddress)
	})

	t.Run("loads values from environment variables with STOREFRONT prefix", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "9000")
		t.Setenv("STOREFRONT_DATABASE_DRIVER", "sqlite")
		t.Setenv("STOREFRONT_DATABASE_PATH", ":memory:")
		t.Setenv("STOREFRONT_CACHE_BACKEND", "redis")
		t.Setenv("STOREFRONT_CACHE_TTL", "30s")
		t.Setenv("STOREFRONT_JWT_EXPIRATION", "2h")
		t.Setenv("STOREFRONT_REMOTE_AUTH_SERVICE_URL", "http://auth.internal:8080")
		t.Setenv("STOREFRONT_REMOTE_DISCOUNT_SERVICE_URL", "http://discount.internal:8080")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.Path)
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "http://auth.internal:8080", cfg.Remote.Services()["auth"])
		assert.Equal(t, "http://discount.internal:8080", cfg.Remote.Services()["status"])
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("STOREFRONT_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		t.Setenv("STOREFRONT_CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})

	t.Run("rejects relative remote URL", func(t *testing.T) {
		t.Setenv("STOREFRONT_REMOTE_AUTH_SERVICE_URL", "auth-service")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote.auth_service_url")
	})

	t.Run("requires long jwt secret in production", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")
		t.Setenv("STOREFRONT_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestValidate_ConnectionPool(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 100

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidate_SamplingRatio(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Telemetry.SamplingRatio = 1.5

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampling_ratio")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "p@ss word",
		DBName:   "storefront",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/storefront?sslmode=disable", d.DSN())
}
