package service

import (
	"context"
	"time"
)

type attemptCounter interface {
	Get(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

// LoginThrottle limits failed sign-in attempts per key inside a rolling
// window that starts at the first failure.
type LoginThrottle struct {
	counter     attemptCounter
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle constructs a throttle over the given counter store.
func NewLoginThrottle(counter attemptCounter, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{counter: counter, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether another attempt may be made. A nil throttle allows
// everything.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	if t == nil {
		return true, nil
	}
	failures, err := t.counter.Get(ctx, key)
	if err != nil {
		return true, err
	}
	return failures < t.maxAttempts, nil
}

// Fail records a failed attempt.
func (t *LoginThrottle) Fail(ctx context.Context, key string) error {
	if t == nil {
		return nil
	}
	_, err := t.counter.Incr(ctx, key, t.window)
	return err
}

// Reset clears the failures recorded for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if t == nil {
		return nil
	}
	return t.counter.Reset(ctx, key)
}
