//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-manager/internal/adapters/clients"
	"github.com/jsamuelsen/quote-manager/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	httpadapter "github.com/jsamuelsen/quote-manager/internal/adapters/http"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-manager/internal/app"
	"github.com/jsamuelsen/quote-manager/internal/platform/config"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// service is the quote manager wired as in cmd/service, over an in-memory
// SQLite database and a fake remote.
type service struct {
	server  *httptest.Server
	remote  *fakeRemote
	durable *sqlite.Store
	sync    *app.SyncEngine
	manager *app.Manager
	page    *display.Page
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "remote-quotes",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startService(ctx context.Context) (*service, error) {
	logger := discardLogger()
	remote := newFakeRemote()

	durable, err := sqlite.Open(ctx, sqlite.Config{Path: sqlite.MemoryPath, Logger: logger})
	if err != nil {
		remote.Close()
		return nil, err
	}

	client, err := clients.New(testClientConfig(remote.URL()))
	if err != nil {
		remote.Close()
		_ = durable.Close()
		return nil, err
	}

	source := acl.NewRemoteQuoteSource(acl.RemoteSourceConfig{Client: client, Logger: logger})
	page := display.New(&display.Config{Logger: logger})

	store := app.NewQuoteStore(durable, &app.StoreConfig{Logger: logger})
	filter := app.NewCategoryFilter(durable, &app.FilterConfig{Logger: logger})
	selector := app.NewSelector(store, filter, memory.New(), &app.SelectorConfig{Logger: logger})
	syncEngine := app.NewSyncEngine(store, filter, source, page, &app.SyncConfig{
		Interval:     time.Hour,
		FetchTimeout: time.Second,
		PushEnabled:  true,
		Registerer:   prometheus.NewRegistry(),
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
		remote.Close()
		_ = durable.Close()
		return nil, err
	}

	registry := ports.NewHealthRegistry()
	_ = registry.Register(durable)
	_ = registry.Register(source)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.NewDefaultRouterConfig(
		logger,
		&config.AppConfig{Name: "quote-manager", Version: "test", Environment: "test"},
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")).
			WithGatherer(prometheus.NewRegistry()),
		handlers.NewQuoteHandler(manager),
		handlers.NewDisplayHandler(page),
	))

	return &service{
		server:  httptest.NewServer(engine),
		remote:  remote,
		durable: durable,
		sync:    syncEngine,
		manager: manager,
		page:    page,
	}, nil
}

// Close drains pushes before tearing down the remote and the database.
func (s *service) Close() {
	s.server.Close()
	s.sync.Stop()
	s.remote.Close()
	_ = s.durable.Close()
}
