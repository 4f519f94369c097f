package coingecko_common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	mock_coingecko_common "github.com/status-im/solscope/coingecko_common/mocks"
)

type recordingHandler struct {
	mu       sync.Mutex
	statuses []string
	retries  int
}

func (h *recordingHandler) OnRequest(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHandler) OnRetry() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retries++
}

func fastOpts(retries int) RetryOptions {
	opts := DefaultRetryOptions()
	opts.MaxRetries = retries
	opts.BaseBackoff = time.Millisecond
	opts.LogPrefix = "test"
	return opts
}

func TestHTTPClientWithRetries_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(nil)

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(fastOpts(3), handler, mockManager)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, _, err := client.ExecuteRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, []string{"success"}, handler.statuses)
	assert.Zero(t, handler.retries)
}

func TestHTTPClientWithRetries_RetriesRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`ok`))
		}
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(fastOpts(3), handler, nil)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	body, _, err := client.ExecuteRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, []string{"rate_limited", "error", "success"}, handler.statuses)
	assert.Equal(t, 2, handler.retries)
}

func TestHTTPClientWithRetries_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad category", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClientWithRetries(fastOpts(3), nil, nil)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	_, _, err := client.ExecuteRequest(req)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientWithRetries_AllAttemptsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClientWithRetries(fastOpts(2), nil, nil)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	_, _, err := client.ExecuteRequest(req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestHTTPClientWithRetries_RateLimiting_WithLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	limiter := rate.NewLimiter(rate.Every(300*time.Millisecond), 1)
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter).Times(2)

	client := NewHTTPClientWithRetries(fastOpts(1), nil, mockManager)

	start := time.Now()
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		_, _, err := client.ExecuteRequest(req)
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond, "second request waits for the limiter")
}

func TestHTTPClientWithRetries_ContextCancelledDuringLimiterWait(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	limiter.Allow()
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter)

	client := NewHTTPClientWithRetries(fastOpts(3), nil, mockManager)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1", nil)

	_, _, err := client.ExecuteRequest(req)

	assert.ErrorContains(t, err, "rate limiter wait failed")
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, calculateBackoffWithJitter(base, 0))

	for attempt := 1; attempt <= 3; attempt++ {
		expected := base * time.Duration(1<<(attempt-1))
		got := calculateBackoffWithJitter(base, attempt)
		assert.GreaterOrEqual(t, got, expected)
		assert.Less(t, got, expected+expected/2)
	}
}
