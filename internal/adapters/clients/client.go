package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-manager/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-manager/internal/platform/config"
	"github.com/jsamuelsen/quote-manager/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-manager/internal/adapters/clients"

	defaultTimeout = 30 * time.Second
)

// Result labels of the client metrics.
const (
	resultCircuitOpen = "circuit_open"
	resultCanceled    = "context_canceled"
	resultError       = "error"
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "http://quotes.internal:8081".
	BaseURL string

	// ServiceName names the remote in logs, spans and metrics. Required.
	ServiceName string

	// Timeout bounds a single attempt. Retries and backoff come on top.
	Timeout time.Duration

	Retry   config.RetryConfig
	Circuit config.CircuitBreakerConfig

	// Transport configures the connection pool. Zero fields fall back to
	// the config package defaults.
	Transport config.TransportConfig

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Client calls the remote quote service. Failed attempts are retried with
// jittered exponential backoff, repeated failures open a circuit breaker,
// and every call is traced, counted and tagged with the caller's request
// and correlation IDs.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	retry       config.RetryConfig
	logger      *slog.Logger
	cb          *breaker

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := newBreaker(cfg.Circuit, func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of calls to the remote quote service, retries included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Calls to the remote quote service by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		retry:           retry,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// newTransport builds the pooled transport, filling unset fields with defaults.
func newTransport(tc config.TransportConfig) *http.Transport {
	if tc.MaxIdleConns <= 0 {
		tc.MaxIdleConns = config.DefaultTransportMaxIdleConns
	}
	if tc.MaxIdleConnsPerHost <= 0 {
		tc.MaxIdleConnsPerHost = config.DefaultTransportMaxIdleConnsPerHost
	}
	if tc.IdleConnTimeout <= 0 {
		tc.IdleConnTimeout = config.DefaultTransportIdleConnTimeout
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        tc.MaxIdleConns,
		MaxIdleConnsPerHost: tc.MaxIdleConnsPerHost,
		IdleConnTimeout:     tc.IdleConnTimeout,
	}
}

// Get sends a GET to path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Post sends body to path as JSON. The body is resent on every retry.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Do sends req through the circuit breaker and the retry loop.
// 5xx responses and network errors are retried; any other response is
// returned to the caller, who owns its body. Bodies are rewound through
// req.GetBody, so a request without GetBody is sent at most once.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), resultCircuitOpen)
		logger.Warn("request blocked by circuit breaker",
			slog.Duration("retry_after", c.cb.RetryAfter()),
		)
		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)

	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if attempt > 0 {
			if err := c.backoff(ctx, req, attempt, logger); err != nil {
				c.cb.Done(false)
				span.SetStatus(codes.Error, err.Error())
				c.recordMetrics(ctx, req.Method, 0, time.Since(start), resultCanceled)
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		switch {
		case err != nil && !isRetryableError(err):
			lastErr = err
		case err != nil:
			lastErr = err
			logger.Debug("attempt failed", slog.Int("attempt", attempt+1), slog.Any("error", err))
			continue
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			logger.Debug("attempt failed", slog.Int("attempt", attempt+1), slog.Int("status", resp.StatusCode))
			_ = resp.Body.Close()
			continue
		default:
			c.cb.Done(true)
			c.finish(ctx, span, req.Method, resp.StatusCode, time.Since(start), logger)
			return resp, nil
		}

		break
	}

	duration := time.Since(start)
	c.cb.Done(false)
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	c.recordMetrics(ctx, req.Method, 0, duration, resultError)
	logger.Error("request failed", slog.Duration("duration", duration), slog.Any("error", lastErr))

	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

// backoff waits before attempt and rewinds the request body.
func (c *Client) backoff(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger) error {
	wait := c.calculateBackoff(attempt)
	logger.Debug("retrying request", slog.Int("attempt", attempt+1), slog.Duration("backoff", wait))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body: %w", err)
		}
		req.Body = body
	}

	return nil
}

func (c *Client) finish(ctx context.Context, span trace.Span, method string, status int, duration time.Duration, logger *slog.Logger) {
	span.SetAttributes(attribute.Int("http.status_code", status))
	if status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
	}

	c.recordMetrics(ctx, method, status, duration, strconv.Itoa(status/100)+"xx")

	logger.Debug("request completed", slog.Int("status", status), slog.Duration("duration", duration))
}

// ServiceName returns the downstream service name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// CircuitRetryAfter reports how long the open circuit keeps blocking requests.
func (c *Client) CircuitRetryAfter() time.Duration {
	return c.cb.RetryAfter()
}

// injectHeaders forwards request and correlation IDs and the trace context.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns InitialInterval * Multiplier^attempt, capped at
// MaxInterval, spread by ±JitterFactor.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(attempt))
	backoff = math.Min(backoff, float64(c.retry.MaxInterval))

	if c.retry.JitterFactor > 0 {
		spread := rand.Float64()*2 - 1 //nolint:gosec // jitter does not need crypto randomness
		backoff += backoff * c.retry.JitterFactor * spread
	}

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether a transport error is worth another
// attempt. Cancellation never is; timeouts and connection errors are.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
