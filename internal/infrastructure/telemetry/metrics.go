package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MeterName is the instrumentation name of service metrics
const MeterName = "storefront-backend"

// MeterProvider owns the process-wide meter provider
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider installs an OTLP-exporting meter provider as the global
// provider. When telemetry is disabled the global no-op provider stays in place.
func NewMeterProvider(ctx context.Context, cfg Config, exportInterval time.Duration, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		return mp, nil
	}
	if exportInterval <= 0 {
		exportInterval = 60 * time.Second
	}

	exporterOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", exportInterval),
	)
	return mp, nil
}

// Shutdown flushes pending metrics and stops the provider
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// IsEnabled reports whether metrics are exported
func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Counter is a monotonically increasing metric
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a counter on meter
func NewCounter(meter metric.Meter, name, description string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Inc adds one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	if c == nil {
		return
	}
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// CacheMetrics counts remote attribute cache lookups
type CacheMetrics struct {
	hits   *Counter
	misses *Counter
	errors *Counter
}

// NewCacheMetrics registers the cache counters on meter; a nil meter uses the
// global provider
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(MeterName)
	}
	hits, err := NewCounter(meter, "cache.hits", "Remote attribute cache hits")
	if err != nil {
		return nil, err
	}
	misses, err := NewCounter(meter, "cache.misses", "Remote attribute cache misses")
	if err != nil {
		return nil, err
	}
	errs, err := NewCounter(meter, "cache.errors", "Remote attribute cache failures treated as misses")
	if err != nil {
		return nil, err
	}
	return &CacheMetrics{hits: hits, misses: misses, errors: errs}, nil
}

// Hit records a cache hit for attribute
func (m *CacheMetrics) Hit(ctx context.Context, attribute string) {
	if m != nil {
		m.hits.Inc(ctx, attrName(attribute))
	}
}

// Miss records a cache miss for attribute
func (m *CacheMetrics) Miss(ctx context.Context, attribute string) {
	if m != nil {
		m.misses.Inc(ctx, attrName(attribute))
	}
}

// Failure records a cache read or write failure for attribute
func (m *CacheMetrics) Failure(ctx context.Context, attribute string) {
	if m != nil {
		m.errors.Inc(ctx, attrName(attribute))
	}
}

func attrName(name string) attribute.KeyValue {
	return attribute.String("attribute", name)
}
