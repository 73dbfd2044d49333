package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig configures the shared middleware stack
type EngineConfig struct {
	Mode           string
	MaxBodyBytes   int64
	TrustedProxies []string
	CORS           middleware.CORSConfig
	Tracing        middleware.TracingConfig
}

// NewEngine creates a gin engine with the middleware every route shares, in
// order: request id, request logging, panic recovery, tracing, CORS and the
// body size limit
func NewEngine(cfg EngineConfig, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log, middleware.RequestIDKey),
		middleware.Recovery(log),
	)
	engine.Use(middleware.Tracing(cfg.Tracing)...)
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.NoRoute(middleware.NoRoute())
	return engine, nil
}
