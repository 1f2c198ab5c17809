package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-manager/internal/platform/config"
)

func defaultConfig() *Config {
	return &Config{
		ServiceName: "remote-quotes",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

// remoteClient starts handler as the remote quote service and returns a
// client pointed at it. tweak may adjust the config first.
func remoteClient(t *testing.T, handler http.HandlerFunc, tweak func(*Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	if tweak != nil {
		tweak(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	require.NoError(t, resp.Body.Close())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	cfg := defaultConfig()
	cfg.ServiceName = ""
	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name is required")
}

func TestNew_TransportSettings(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		client, err := New(defaultConfig())
		require.NoError(t, err)

		transport, ok := client.http.Transport.(*http.Transport)
		require.True(t, ok)
		assert.Equal(t, config.DefaultTransportMaxIdleConns, transport.MaxIdleConns)
		assert.Equal(t, config.DefaultTransportMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
		assert.Equal(t, config.DefaultTransportIdleConnTimeout, transport.IdleConnTimeout)
	})

	t.Run("configured values", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Transport = config.TransportConfig{
			MaxIdleConns:        7,
			MaxIdleConnsPerHost: 3,
			IdleConnTimeout:     5 * time.Second,
		}

		client, err := New(cfg)
		require.NoError(t, err)

		transport, ok := client.http.Transport.(*http.Transport)
		require.True(t, ok)
		assert.Equal(t, 7, transport.MaxIdleConns)
		assert.Equal(t, 3, transport.MaxIdleConnsPerHost)
		assert.Equal(t, 5*time.Second, transport.IdleConnTimeout)
	})
}

func TestClient_HeaderPropagation(t *testing.T) {
	var got http.Header

	client := remoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}, nil)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	resp, err := client.Get(ctx, "/quotes")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, "req-123", got.Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-456", got.Get(middleware.HeaderCorrelationID))
}

func TestClient_Retries(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int // per attempt; the last one repeats
		wantStatus   int
		wantAttempts int32
	}{
		{name: "recovers after 5xx", statuses: []int{502, 503, 200}, wantStatus: 200, wantAttempts: 3},
		{name: "4xx is final", statuses: []int{404}, wantStatus: 404, wantAttempts: 1},
		{name: "first try succeeds", statuses: []int{200}, wantStatus: 200, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32

			client := remoteClient(t, func(w http.ResponseWriter, _ *http.Request) {
				n := int(attempts.Add(1))
				w.WriteHeader(tt.statuses[min(n, len(tt.statuses))-1])
			}, nil)

			resp, err := client.Get(context.Background(), "/quotes")
			require.NoError(t, err)
			closeBody(t, resp)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantAttempts, attempts.Load())
		})
	}
}

func TestClient_PostBodyResentOnRetry(t *testing.T) {
	var attempts atomic.Int32
	bodies := make(chan string, 3)
	payload := `{"text":"Stay positive","category":"Motivation"}`

	client := remoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}, nil)

	resp, err := client.Post(context.Background(), "/quotes", []byte(payload))
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	close(bodies)
	require.Len(t, bodies, 2)
	for body := range bodies {
		assert.JSONEq(t, payload, body)
	}
}

func TestClient_MaxRetriesExceeded(t *testing.T) {
	var attempts atomic.Int32

	client := remoteClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, func(cfg *Config) { cfg.Retry.MaxAttempts = 2 })

	_, err := client.Get(context.Background(), "/quotes")

	require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Contains(t, err.Error(), "server error: 500")
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClient_OpenCircuitSkipsRemote(t *testing.T) {
	var calls atomic.Int32

	client := remoteClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(cfg *Config) {
		cfg.Retry.MaxAttempts = 1
		cfg.Circuit.MaxFailures = 2
	})

	for range 2 {
		_, err := client.Get(context.Background(), "/quotes")
		require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	}
	require.Equal(t, StateOpen, client.CircuitState())
	assert.Positive(t, client.CircuitRetryAfter())

	_, err := client.Get(context.Background(), "/quotes")

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	client := remoteClient(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}, nil)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/quotes")

	require.Error(t, err)
}

func TestClient_BuildURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "https://quotes.example.com/"

	client, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://quotes.example.com/quotes", client.buildURL("/quotes"))
	assert.Equal(t, "https://quotes.example.com/quotes", client.buildURL("quotes"))
}

type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"net error with timeout", testNetError{timeout: true}, true},
		{"net error without timeout", testNetError{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := defaultConfig()
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.MaxInterval = time.Second

	exact, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, exact.calculateBackoff(2))
	assert.Equal(t, time.Second, exact.calculateBackoff(8))

	cfg.Retry.JitterFactor = 0.5
	jittered, err := New(cfg)
	require.NoError(t, err)

	for range 50 {
		got := jittered.calculateBackoff(2)
		assert.GreaterOrEqual(t, got, 200*time.Millisecond)
		assert.LessOrEqual(t, got, 600*time.Millisecond)
	}
}
