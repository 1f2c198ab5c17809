package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	"github.com/jsamuelsen/quote-manager/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/mocks"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness wires the core over in-memory storage and a real display page.
type harness struct {
	durable  *memory.Store
	session  *memory.Store
	store    *QuoteStore
	filter   *CategoryFilter
	selector *Selector
	remote   *mocks.MockRemoteSource
	page     *display.Page
	sync     *SyncEngine
	registry *prometheus.Registry
	manager  *Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		durable:  memory.New(),
		session:  memory.New(),
		remote:   mocks.NewMockRemoteSource(t),
		page:     display.New(&display.Config{Logger: discardLogger()}),
		registry: prometheus.NewRegistry(),
	}

	h.store = NewQuoteStore(h.durable, &StoreConfig{Logger: discardLogger()})
	h.filter = NewCategoryFilter(h.durable, &FilterConfig{Logger: discardLogger()})
	h.selector = NewSelector(h.store, h.filter, h.session, &SelectorConfig{
		Logger: discardLogger(),
		Intn:   func(int) int { return 0 },
	})
	h.sync = NewSyncEngine(h.store, h.filter, h.remote, h.page, &SyncConfig{
		PushEnabled: true,
		Registerer:  h.registry,
		Logger:      discardLogger(),
	})
	h.manager = NewManager(ManagerConfig{
		Store:    h.store,
		Filter:   h.filter,
		Selector: h.selector,
		Display:  h.page,
		Sync:     h.sync,
		Logger:   discardLogger(),
	})

	_, err := h.store.Load(context.Background())
	require.NoError(t, err)

	return h
}

// stored decodes the durable quotes document.
func (h *harness) stored(t *testing.T) []domain.Quote {
	t.Helper()

	raw, err := h.durable.Get(context.Background(), ports.KeyQuotes)
	require.NoError(t, err)

	quotes, err := ImportDocument(raw)
	require.NoError(t, err)

	return quotes
}

func (h *harness) notifications() []string {
	var out []string
	for _, n := range h.page.Snapshot().Notifications {
		out = append(out, n.Message)
	}
	return out
}

func q(text, category string) domain.Quote {
	return domain.Quote{Text: text, Category: category}
}
