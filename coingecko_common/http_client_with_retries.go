package coingecko_common

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// StatusError is returned for a non-200 response that was not retried away.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       time.Second,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

func (c *HTTPClientWithRetries) report(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

// ExecuteRequest executes req with rate limiting and retries. It returns the body of
// the first 200 response and the duration of that attempt.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	ctx := req.Context()
	var lastErr error

	for attempt := 0; attempt < c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if c.StatusHandler != nil {
				c.StatusHandler.OnRetry()
			}
			backoff := calculateBackoffWithJitter(c.Opts.BaseBackoff, attempt)
			zap.L().Debug("retrying request",
				zap.String("caller", c.Opts.LogPrefix),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, 0, fmt.Errorf("%s: %w (last error: %v)", c.Opts.LogPrefix, err, lastErr)
			}
		}

		if c.LimiterManager != nil {
			if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					c.report("error")
					return nil, 0, fmt.Errorf("rate limiter wait failed: %w", err)
				}
			}
		}

		start := time.Now()
		resp, err := c.Client.Do(req)
		duration := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				c.report("timeout")
				return nil, duration, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed after %.2fs: %w", duration.Seconds(), err)
			c.report("error")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
			if isRetryableError(resp.StatusCode) {
				lastErr = statusErr
				if resp.StatusCode == http.StatusTooManyRequests {
					c.report("rate_limited")
				} else {
					c.report("error")
				}
				continue
			}
			c.report("error")
			return nil, duration, statusErr
		}
		if readErr != nil {
			lastErr = fmt.Errorf("error reading response: %w", readErr)
			c.report("error")
			continue
		}

		c.report("success")
		return body, duration, nil
	}

	return nil, 0, fmt.Errorf("all %d attempts failed, last error: %w", c.Opts.MaxRetries, lastErr)
}

// calculateBackoffWithJitter returns base * 2^(attempt-1) plus up to 50% jitter
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseBackoff <= 0 {
		return baseBackoff
	}

	backoff := baseBackoff * time.Duration(uint(1)<<uint(attempt-1))
	if half := int64(backoff / 2); half > 0 {
		backoff += time.Duration(rand.Int63n(half))
	}
	return backoff
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// isRetryableError determines if a given HTTP status code should trigger a retry
func isRetryableError(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
