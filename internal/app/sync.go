package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/platform/logging"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

const tracerName = "github.com/jsamuelsen/quote-manager/internal/app"

// SyncedMessage is the notification shown after a pull adds quotes.
const SyncedMessage = "Quotes synced with server!"

// Default sync timings.
const (
	DefaultSyncInterval     = 15 * time.Second
	DefaultSyncFetchTimeout = 10 * time.Second
)

var (
	// ErrSyncRunning is returned by Start when the pull loop is already active.
	ErrSyncRunning = errors.New("sync engine already running")

	// ErrSyncStopped is returned by Start after Stop.
	ErrSyncStopped = errors.New("sync engine stopped")
)

// SyncResult summarises one pull cycle.
type SyncResult struct {
	Fetched int
	Added   []domain.Quote
}

// SyncEngine reconciles the local collection with the remote source.
// Merges are additive and local-wins: remote quotes are appended only when
// no identical quote exists locally, and nothing is ever removed.
type SyncEngine struct {
	store   *QuoteStore
	filter  *CategoryFilter
	remote  ports.RemoteSource
	display ports.DisplaySurface
	metrics *syncMetrics
	logger  *slog.Logger

	interval     time.Duration
	fetchTimeout time.Duration
	pushEnabled  bool

	// cycleMu keeps pull cycles from overlapping.
	cycleMu sync.Mutex

	lifeMu  sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// SyncConfig holds configuration for the sync engine.
type SyncConfig struct {
	// Interval between pull cycles. Defaults to DefaultSyncInterval.
	Interval time.Duration

	// FetchTimeout bounds each fetch and push. Defaults to DefaultSyncFetchTimeout.
	FetchTimeout time.Duration

	// PushEnabled sends locally added quotes to the remote.
	PushEnabled bool

	// Registerer receives the sync counters. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	Logger *slog.Logger
}

// NewSyncEngine creates an engine. Call Start to begin periodic pulls.
func NewSyncEngine(
	store *QuoteStore,
	filter *CategoryFilter,
	remote ports.RemoteSource,
	display ports.DisplaySurface,
	cfg *SyncConfig,
) *SyncEngine {
	if store == nil || filter == nil || remote == nil || display == nil {
		panic("app.NewSyncEngine: store, filter, remote and display are required")
	}

	if cfg == nil {
		cfg = &SyncConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	e := &SyncEngine{
		store:        store,
		filter:       filter,
		remote:       remote,
		display:      display,
		metrics:      newSyncMetrics(reg),
		logger:       logger.With(slog.String("component", "sync")),
		interval:     cfg.Interval,
		fetchTimeout: cfg.FetchTimeout,
		pushEnabled:  cfg.PushEnabled,
	}

	if e.interval <= 0 {
		e.interval = DefaultSyncInterval
	}
	if e.fetchTimeout <= 0 {
		e.fetchTimeout = DefaultSyncFetchTimeout
	}

	return e
}

// Start runs a pull cycle every interval until ctx is done or Stop is called.
func (e *SyncEngine) Start(ctx context.Context) error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.stopped {
		return ErrSyncStopped
	}
	if e.cancel != nil {
		return ErrSyncRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Go(func() { e.loop(loopCtx) })

	e.logger.InfoContext(ctx, "sync engine started", slog.Duration("interval", e.interval))

	return nil
}

// Stop ends the pull loop and waits for in-flight cycles and pushes.
// Pushes requested after Stop are dropped.
func (e *SyncEngine) Stop() {
	e.lifeMu.Lock()
	e.stopped = true
	if e.cancel != nil {
		e.cancel()
	}
	e.lifeMu.Unlock()

	e.wg.Wait()
}

func (e *SyncEngine) loop(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.cycleMu.TryLock() {
				e.metrics.pulls.WithLabelValues(resultSkipped).Inc()
				e.logger.DebugContext(ctx, "previous pull still running, skipping tick")
				continue
			}

			_, err := e.pull(ctx)
			e.cycleMu.Unlock()

			if err != nil && ctx.Err() == nil {
				e.logger.WarnContext(ctx, "pull cycle failed, keeping local quotes", slog.Any("error", err))
			}
		}
	}
}

// SyncNow runs one pull cycle immediately, waiting for any cycle in
// progress. A failed fetch is logged and counted, then reported as a
// cycle that fetched nothing; only local failures are returned.
func (e *SyncEngine) SyncNow(ctx context.Context) (SyncResult, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	return e.pull(ctx)
}

// pull must be called with cycleMu held.
func (e *SyncEngine) pull(ctx context.Context) (result SyncResult, err error) {
	cycleID := uuid.NewString()
	ctx = logging.WithSyncCycleID(logging.EnsureContext(ctx, e.logger), cycleID)
	logger := logging.FromContext(ctx)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "sync.pull")
	span.SetAttributes(attribute.String("sync.cycle_id", cycleID))
	defer func() {
		span.SetAttributes(
			attribute.Int("sync.fetched", result.Fetched),
			attribute.Int("sync.added", len(result.Added)),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	fetched, err := e.remote.Fetch(fetchCtx)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			e.metrics.pulls.WithLabelValues(resultSkipped).Inc()
			return SyncResult{}, ctx.Err()
		}

		e.metrics.pulls.WithLabelValues(resultError).Inc()
		span.RecordError(err)
		logger.WarnContext(ctx, "fetching remote quotes failed, keeping local quotes", slog.Any("error", err))

		return SyncResult{}, nil
	}

	result = SyncResult{Fetched: len(fetched)}

	// The caller may have gone away while the fetch was in flight.
	if ctx.Err() != nil {
		e.metrics.pulls.WithLabelValues(resultSkipped).Inc()
		return result, ctx.Err()
	}

	added, err := e.store.Apply(ctx, func(current domain.Collection) []domain.Quote {
		return newRemoteQuotes(current, fetched)
	})
	if err != nil {
		e.metrics.pulls.WithLabelValues(resultError).Inc()
		return result, fmt.Errorf("merging remote quotes: %w", err)
	}

	e.metrics.pulls.WithLabelValues(resultSuccess).Inc()
	result.Added = added

	if len(added) == 0 {
		logger.DebugContext(ctx, "pull cycle found nothing new", slog.Int("fetched", len(fetched)))
		return result, nil
	}

	e.metrics.merged.Add(float64(len(added)))

	renderCollection(ctx, e.display, e.filter, e.store.All(), SyncedMessage)

	logger.InfoContext(ctx, "merged remote quotes",
		slog.Int("fetched", len(fetched)),
		slog.Int("added", len(added)),
	)

	return result, nil
}

// newRemoteQuotes returns the fetched quotes with no identical quote in
// current, each at most once, in fetch order.
func newRemoteQuotes(current domain.Collection, fetched []domain.Quote) []domain.Quote {
	seen := make(map[domain.Quote]struct{}, len(current)+len(fetched))
	for _, q := range current {
		seen[q] = struct{}{}
	}

	var out []domain.Quote
	for _, candidate := range fetched {
		q, err := domain.NewQuote(candidate.Text, candidate.Category)
		if err != nil {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}

	return out
}

// Push sends quote to the remote in the background. Failures are logged
// and counted, never reported to the caller.
func (e *SyncEngine) Push(ctx context.Context, quote domain.Quote) {
	if !e.pushEnabled {
		return
	}

	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.stopped {
		e.logger.DebugContext(ctx, "sync engine stopped, dropping push")
		return
	}

	pushCtx := logging.EnsureContext(context.WithoutCancel(ctx), e.logger)

	e.wg.Go(func() {
		ctx, cancel := context.WithTimeout(pushCtx, e.fetchTimeout)
		defer cancel()

		if err := e.remote.Push(ctx, quote); err != nil {
			e.metrics.pushes.WithLabelValues(resultError).Inc()
			logging.FromContext(ctx).WarnContext(ctx, "pushing quote failed",
				slog.String("category", quote.Category),
				slog.Any("error", err),
			)
			return
		}

		e.metrics.pushes.WithLabelValues(resultSuccess).Inc()
	})
}
