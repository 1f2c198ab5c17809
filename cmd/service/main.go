// Package main is the entry point of the quote manager service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-manager/internal/adapters/clients"
	"github.com/jsamuelsen/quote-manager/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-manager/internal/app"
	"github.com/jsamuelsen/quote-manager/internal/platform/config"
	"github.com/jsamuelsen/quote-manager/internal/platform/logging"
	"github.com/jsamuelsen/quote-manager/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load and validate configuration (fail fast)
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Telemetry (propagation only if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Storage tiers
	durable, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Storage.Path, Logger: logger})
	if err != nil {
		return fmt.Errorf("opening quote database: %w", err)
	}

	defer func() {
		if closeErr := durable.Close(); closeErr != nil {
			logger.Error("closing quote database", slog.Any("error", closeErr))
		}
	}()

	session := memory.New()

	// 5. Remote quote source behind the resilient client
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Remote.BaseURL,
		ServiceName: cfg.Services.Remote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating remote client: %w", err)
	}

	remote := acl.NewRemoteQuoteSource(acl.RemoteSourceConfig{
		Client:      httpClient,
		ServiceName: cfg.Services.Remote.Name,
		Logger:      logger,
	})

	// 6. Core
	page := display.New(&display.Config{Logger: logger})

	store := app.NewQuoteStore(durable, &app.StoreConfig{Logger: logger})
	filter := app.NewCategoryFilter(durable, &app.FilterConfig{Logger: logger})
	selector := app.NewSelector(store, filter, session, &app.SelectorConfig{Logger: logger})
	syncEngine := app.NewSyncEngine(store, filter, remote, page, &app.SyncConfig{
		Interval:     cfg.Sync.Interval,
		FetchTimeout: cfg.Sync.FetchTimeout,
		PushEnabled:  cfg.Sync.PushEnabled,
		Registerer:   prometheus.DefaultRegisterer,
		Logger:       logger,
	})

	manager := app.NewManager(app.ManagerConfig{
		Store:    store,
		Filter:   filter,
		Selector: selector,
		Display:  page,
		Sync:     syncEngine,
		Logger:   logger,
	})

	if err := manager.Init(ctx); err != nil {
		return fmt.Errorf("initializing quote manager: %w", err)
	}

	// 7. Health checks
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(durable); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}
	if err := healthRegistry.Register(remote); err != nil {
		return fmt.Errorf("registering remote health check: %w", err)
	}

	// 8. HTTP surface
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(
		logger,
		&cfg.App,
		handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		handlers.NewQuoteHandler(manager),
		handlers.NewDisplayHandler(page),
	))

	return serve(ctx, logger, server, syncEngine, cfg)
}

// serve runs the HTTP server and the sync loop until a signal arrives or
// the server fails, then shuts both down.
func serve(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	syncEngine *app.SyncEngine,
	cfg *config.Config,
) error {
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Sync.Enabled {
		if err := syncEngine.Start(gctx); err != nil {
			return fmt.Errorf("starting sync engine: %w", err)
		}
	} else {
		logger.Info("background sync disabled")
	}

	serverErr := server.Start()

	g.Go(func() error {
		select {
		case err, ok := <-serverErr:
			if ok && err != nil {
				return err
			}
			return nil
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-gctx.Done()

		if ctx.Err() != nil {
			logger.Info("received shutdown signal")
		}

		return shutdown(logger, server, syncEngine, cfg.Server.ShutdownTimeout)
	})

	return g.Wait()
}

func shutdown(logger *slog.Logger, server *http.Server, syncEngine *app.SyncEngine, timeout time.Duration) error {
	logger.Info("initiating graceful shutdown", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	serverErr := server.Shutdown(shutdownCtx)

	// In-flight pushes are drained after the last request has finished.
	syncEngine.Stop()

	if serverErr != nil {
		return serverErr
	}

	logger.Info("shutdown complete")

	return nil
}
