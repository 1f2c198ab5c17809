package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-manager/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-manager/internal/platform/config"
	"github.com/jsamuelsen/quote-manager/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// APIPrefix is the mount point of the quote API.
const APIPrefix = "/api/v1"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is stored in every request context.
	Logger *slog.Logger

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// HealthHandler serves the /-/ probes. Optional.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves the quote API. Optional.
	QuoteHandler *handlers.QuoteHandler

	// DisplayHandler serves the rendered page state. Optional.
	DisplayHandler *handlers.DisplayHandler

	// Timeout is the request deadline of API routes. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - store the logger in the request context
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline on /api/v1 only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - /api/v1/ (public API): quote actions and the display state
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceName := "quote-manager"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.Use(
		middleware.Recovery(logger),
		middleware.ContextLogger(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	apiV1 := engine.Group(APIPrefix)
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.DisplayHandler != nil {
		cfg.DisplayHandler.RegisterDisplayRoutes(rg)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
	displayHandler *handlers.DisplayHandler,
) RouterConfig {
	return RouterConfig{
		Logger:         logger,
		AppConfig:      appCfg,
		HealthHandler:  healthHandler,
		QuoteHandler:   quoteHandler,
		DisplayHandler: displayHandler,
		Timeout:        DefaultRequestTimeout,
	}
}
