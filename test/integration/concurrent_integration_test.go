//go:build integration

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/adapters/clients"
	"github.com/jsamuelsen/quote-manager/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-manager/internal/app"
	"github.com/jsamuelsen/quote-manager/internal/domain"
)

type core struct {
	manager *app.Manager
	sync    *app.SyncEngine
	durable *sqlite.Store
}

func newCore(t *testing.T, dbPath, remoteURL string) *core {
	t.Helper()

	ctx := context.Background()
	logger := discardLogger()

	durable, err := sqlite.Open(ctx, sqlite.Config{Path: dbPath, Logger: logger})
	require.NoError(t, err)

	client, err := clients.New(testClientConfig(remoteURL))
	require.NoError(t, err)

	page := display.New(&display.Config{Logger: logger})
	store := app.NewQuoteStore(durable, &app.StoreConfig{Logger: logger})
	filter := app.NewCategoryFilter(durable, &app.FilterConfig{Logger: logger})
	syncEngine := app.NewSyncEngine(store, filter,
		acl.NewRemoteQuoteSource(acl.RemoteSourceConfig{Client: client, Logger: logger}),
		page,
		&app.SyncConfig{
			Interval:     5 * time.Millisecond,
			FetchTimeout: time.Second,
			Registerer:   prometheus.NewRegistry(),
			Logger:       logger,
		})
	manager := app.NewManager(app.ManagerConfig{
		Store:    store,
		Filter:   filter,
		Selector: app.NewSelector(store, filter, memory.New(), &app.SelectorConfig{Logger: logger}),
		Display:  page,
		Sync:     syncEngine,
		Logger:   logger,
	})
	require.NoError(t, manager.Init(ctx))

	return &core{manager: manager, sync: syncEngine, durable: durable}
}

// TestConcurrent_AddsAndPullsPersistEverything races user adds against the
// background pull loop and a manual sync, then reopens the database.
func TestConcurrent_AddsAndPullsPersistEverything(t *testing.T) {
	remote := newFakeRemote()
	defer remote.Close()

	var served []domain.Quote
	for i := range 20 {
		served = append(served, domain.Quote{Text: fmt.Sprintf("remote %d", i), Category: "Remote"})
	}
	remote.Serve(served)

	dbPath := filepath.Join(t.TempDir(), "quotes.db")
	c := newCore(t, dbPath, remote.URL())

	ctx := context.Background()
	require.NoError(t, c.sync.Start(ctx))

	const numGoroutines = 10
	const addsPerGoroutine = 5

	var wg sync.WaitGroup
	for g := range numGoroutines {
		wg.Go(func() {
			for i := range addsPerGoroutine {
				_, err := c.manager.AddQuote(ctx, fmt.Sprintf("local %d-%d", g, i), "Local")
				assert.NoError(t, err)
			}
		})
	}
	wg.Go(func() {
		_, err := c.manager.SyncNow(ctx)
		assert.NoError(t, err)
	})
	wg.Wait()

	c.sync.Stop()

	final := c.manager.Quotes()
	assert.Len(t, final, len(app.SeedQuotes())+numGoroutines*addsPerGoroutine+len(served))

	for _, q := range served {
		assert.Contains(t, final, q)
	}

	require.NoError(t, c.durable.Close())

	reopened := newCore(t, dbPath, remote.URL())
	defer func() { _ = reopened.durable.Close() }()

	assert.Equal(t, final, reopened.manager.Quotes())
}

// TestConcurrent_RepeatedSyncsAreIdempotent fires many manual syncs at once.
func TestConcurrent_RepeatedSyncsAreIdempotent(t *testing.T) {
	remote := newFakeRemote()
	defer remote.Close()

	remote.Serve([]domain.Quote{
		{Text: "Stay positive.", Category: "Mindset"},
		{Text: "Stay positive.", Category: "Mindset"},
	})

	c := newCore(t, sqlite.MemoryPath, remote.URL())
	defer func() { _ = c.durable.Close() }()
	defer c.sync.Stop()

	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_, err := c.manager.SyncNow(ctx)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Len(t, c.manager.Quotes(), len(app.SeedQuotes())+1)
}
