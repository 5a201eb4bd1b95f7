package kaltura

import (
	"context"
	"errors"
	"net"
	"time"
)

// Retry backoff bounds for transient API failures.
const (
	InitialBackoff = 500 * time.Millisecond
	MaxBackoff     = 8 * time.Second
)

// sleepWithContext blocks for d, returning early if ctx is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff doubles from InitialBackoff per attempt, capped at MaxBackoff.
func backoff(attempt int) time.Duration {
	d := InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= MaxBackoff {
			return MaxBackoff
		}
	}
	return d
}

// isRetriable reports whether err is a transient transport or server
// condition. Platform exceptions are never retried.
func isRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.StatusCode == 429 || status.StatusCode == 502 || status.StatusCode == 503 || status.StatusCode == 504
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
