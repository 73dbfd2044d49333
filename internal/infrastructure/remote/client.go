// Package remote calls the services that own product attributes.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Service names known to the client
const (
	ServiceAuth     = "auth"
	ServiceDiscount = "discount"
	ServiceStatus   = "status"
)

const maxErrorBody = 512

// Config holds client configuration
type Config struct {
	// Services maps a service name to its base URL
	Services map[string]string
	Timeout  time.Duration
}

// Client invokes JSON endpoints on named services
type Client struct {
	services   map[string]string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client whose transport propagates trace context
func New(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	services := make(map[string]string, len(cfg.Services))
	for name, base := range cfg.Services {
		services[name] = strings.TrimRight(base, "/")
	}
	return &Client{
		services: services,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: log.Named("remote"),
	}
}

// StatusError is returned when a service answers with a non-2xx status
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s service returned %d: %s", e.Service, e.StatusCode, e.Body)
}

// envelope is the success wrapper every storefront service responds with
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Invoke performs GET path on service and decodes the data of the response envelope
func Invoke[T any](ctx context.Context, c *Client, service, path string) (T, error) {
	var zero T

	base, ok := c.services[service]
	if !ok || base == "" {
		return zero, fmt.Errorf("no base URL configured for service %q", service)
	}
	target, err := url.JoinPath(base, path)
	if err != nil {
		return zero, fmt.Errorf("build %s URL: %w", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("send request to %s: %w", service, err)
	}
	defer resp.Body.Close()

	logger.WithLogger(ctx, c.logger).Debug("Remote call",
		zap.String("service", service),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &StatusError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("decode %s response: %w", service, err)
	}
	if !out.Success {
		return zero, fmt.Errorf("%s service reported failure", service)
	}
	return out.Data, nil
}
