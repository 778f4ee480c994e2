package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

var fastRetry = RetryConfig{
	MaxTries:    4,
	InitialWait: time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	MaxElapsed:  time.Second,
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"regular error", errors.New("password authentication failed"), false},
		{"canceled", context.Canceled, false},
		{"timeout", &net.DNSError{IsTimeout: true}, true},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetrySuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryTransientThenSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, func() error {
		calls++
		if calls < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryPermanentStopsEarly(t *testing.T) {
	calls := 0
	want := errors.New("bad credentials")
	err := Retry(context.Background(), fastRetry, func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, func() error {
		calls++
		return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != int(fastRetry.MaxTries) {
		t.Errorf("calls = %d, want %d", calls, fastRetry.MaxTries)
	}
}
