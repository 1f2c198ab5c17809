package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-manager/internal/adapters/clients"
	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/platform/logging"
)

// QuotesPath is the remote collection endpoint for both pull and push.
const QuotesPath = "/quotes"

// RemoteSourceConfig configures a RemoteQuoteSource.
type RemoteSourceConfig struct {
	// Client talks to the remote service. Its BaseURL points at the service root.
	Client *clients.Client

	// ServiceName names the remote in errors and health results.
	// Defaults to the client's service name.
	ServiceName string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// RemoteQuoteSource implements ports.RemoteSource over the resilient HTTP client.
type RemoteQuoteSource struct {
	BaseAdapter
	logger *slog.Logger
}

// NewRemoteQuoteSource creates the adapter. Panics if Client is nil.
func NewRemoteQuoteSource(cfg RemoteSourceConfig) *RemoteQuoteSource {
	if cfg.Client == nil {
		panic("RemoteQuoteSource: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = cfg.Client.ServiceName()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RemoteQuoteSource{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		logger:      logger,
	}
}

// remoteQuote is the wire shape of a quote on the remote service.
type remoteQuote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func toDomain(ext *remoteQuote) domain.Quote {
	return domain.Quote{Text: ext.Text, Category: ext.Category}
}

// Fetch pulls the remote batch of candidate quotes.
// Candidates are returned untrimmed and unvalidated.
func (s *RemoteQuoteSource) Fetch(ctx context.Context) ([]domain.Quote, error) {
	logger := logging.FromContext(logging.EnsureContext(ctx, s.logger))
	logger.Log(ctx, logging.LevelTrace, "fetching remote quotes", slog.String("path", QuotesPath))

	body, err := s.Get(ctx, QuotesPath, "fetch quotes")
	if err != nil {
		return nil, err
	}

	batch, err := DecodeResponse[[]remoteQuote](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	quotes := TranslateSlice(*batch, toDomain)
	logger.DebugContext(ctx, "fetched remote quotes", slog.Int("count", len(quotes)))

	return quotes, nil
}

// Push sends one newly created quote. The response body is discarded.
func (s *RemoteQuoteSource) Push(ctx context.Context, quote domain.Quote) error {
	payload, err := json.Marshal(remoteQuote{Text: quote.Text, Category: quote.Category})
	if err != nil {
		return fmt.Errorf("encoding quote: %w", err)
	}

	body, err := s.Post(ctx, QuotesPath, payload, "push quote")
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxResponseBody))

	logging.FromContext(logging.EnsureContext(ctx, s.logger)).
		DebugContext(ctx, "pushed quote", slog.String("category", quote.Category))

	return nil
}

// Name implements ports.HealthChecker.
func (s *RemoteQuoteSource) Name() string {
	return s.ServiceName()
}

// Check reports the remote unhealthy while its circuit is open.
// It never calls the remote itself, so readiness probes add no load.
func (s *RemoteQuoteSource) Check(_ context.Context) error {
	if s.Client().CircuitState() != clients.StateOpen {
		return nil
	}

	return domain.NewUnavailableError(s.ServiceName(),
		fmt.Sprintf("circuit open, retry in %s", s.Client().CircuitRetryAfter().Round(time.Millisecond)))
}

// BestEffort implements ports.BestEffortChecker: local quotes keep
// working while the remote is down.
func (s *RemoteQuoteSource) BestEffort() bool {
	return true
}
