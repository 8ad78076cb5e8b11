package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/platform/metrics"

	"github.com/sony/gobreaker/v2"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// retryable reports whether another attempt could plausibly succeed.
func (e *httpStatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

func (c *NPSClient) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do performs one attempt and returns the full body of a successful response.
func (c *NPSClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// isTransient classifies a single attempt's error. An open breaker counts as
// transient so that it backs off like an overloaded upstream would.
func isTransient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.retryable()
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// doWithRetry retries transient failures using exponential backoff while
// respecting context cancellation. It returns the number of attempts made.
func (c *NPSClient) doWithRetry(ctx context.Context, url string) ([]byte, int, error) {
	maxAttempts := c.maxRetries + 1
	backoff := c.initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, attempt - 1, err
		}

		req, err := c.newRequest(ctx, url)
		if err != nil {
			return nil, attempt, err
		}

		start := time.Now()
		body, err := c.breaker.Execute(func() ([]byte, error) { return c.do(req) })
		metrics.DirectoryDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
		if err == nil {
			metrics.DirectoryRequestsTotal.WithLabelValues("ok").Inc()
			return body, attempt, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.DirectoryRequestsTotal.WithLabelValues("canceled").Inc()
			return nil, attempt, ctxErr
		}

		if !isTransient(err) {
			metrics.DirectoryRequestsTotal.WithLabelValues("permanent").Inc()
			return nil, attempt, lastErr
		}
		metrics.DirectoryRequestsTotal.WithLabelValues("transient").Inc()

		if attempt == maxAttempts {
			break
		}

		logging.L().Warn().Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("directory request failed, retrying")
		metrics.DirectoryRetriesTotal.Inc()

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, attempt, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, maxAttempts, lastErr
}
