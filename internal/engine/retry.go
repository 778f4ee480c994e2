package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxTries    uint
	InitialWait time.Duration
	MaxWait     time.Duration
	MaxElapsed  time.Duration
}

// DefaultRetryConfig suits connecting to a data source at startup.
var DefaultRetryConfig = RetryConfig{
	MaxTries:    4,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     5 * time.Second,
	MaxElapsed:  30 * time.Second,
}

// Retry runs fn with exponential backoff until it succeeds, fails with a
// non-retryable error, or the retry budget is spent.
func Retry(ctx context.Context, rc RetryConfig, fn func() error) error {
	operation := func() (struct{}, error) {
		err := fn()
		if err != nil && !isRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = rc.InitialWait
	bo.MaxInterval = rc.MaxWait

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(rc.MaxTries),
		backoff.WithMaxElapsedTime(rc.MaxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			slog.Debug("retrying", slog.Duration("wait", wait), slog.Any("error", err))
		}),
	)
	return err
}

// isRetryable returns true for transient network errors worth retrying.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Connection errors (dial failures, connection refused, etc.)
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Timeout errors (net.Error includes OpError, so check after OpError)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
