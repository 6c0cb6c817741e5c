package transport

import (
	"context"
	"time"

	"medirec-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

const (
	baseBackoff = 1 * time.Second
	maxBackoff  = 10 * time.Second
)

// Statuses that cannot change on retry: the caller's credentials or target
// are wrong, not the connection.
var terminalStatuses = map[int]bool{
	constvars.StatusUnauthorized: true,
	constvars.StatusForbidden:    true,
	constvars.StatusNotFound:     true,
}

// RetryingTransport re-sends failed requests with exponential backoff. A 2xx
// or terminal response returns immediately; everything else, including
// network errors, is retried up to maxRetries times. When every attempt
// fails the last response (or error) is returned so callers can map the
// final status themselves.
type RetryingTransport struct {
	inner      Sender
	maxRetries int
	logger     *zap.Logger
	sleepFn    func(ctx context.Context, d time.Duration) error
}

func NewRetryingTransport(inner Sender, maxRetries int, logger *zap.Logger) *RetryingTransport {
	// A misconfigured retry count must never produce a transport that sends
	// nothing and returns a nil response.
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryingTransport{
		inner:      inner,
		maxRetries: maxRetries,
		logger:     logger,
		sleepFn:    sleepContext,
	}
}

func (t *RetryingTransport) Send(ctx context.Context, request *Request) (*Response, error) {
	var lastResponse *Response
	var lastErr error

	for attempt := 1; attempt <= t.maxRetries; attempt++ {
		if attempt > 1 {
			if err := t.sleepFn(ctx, backoffFor(attempt-1)); err != nil {
				return nil, err
			}
		}

		response, err := t.inner.Send(ctx, request)
		if err != nil {
			lastResponse, lastErr = nil, err
			t.logger.Warn("transport.RetryingTransport.Send attempt failed",
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.String(constvars.LoggingBackendURLKey, request.URL),
				zap.Error(err),
			)
			continue
		}
		if isSuccess(response.StatusCode) || terminalStatuses[response.StatusCode] {
			return response, nil
		}
		lastResponse, lastErr = response, nil
		t.logger.Warn("transport.RetryingTransport.Send attempt rejected",
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.String(constvars.LoggingBackendURLKey, request.URL),
		)
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResponse, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// backoffFor doubles the delay per completed attempt, capped at maxBackoff.
func backoffFor(completedAttempts int) time.Duration {
	delay := baseBackoff << (completedAttempts - 1)
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
