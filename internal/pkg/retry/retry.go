// Package retry wraps bounded, backoff-based retrying of storage calls.
// Only idempotent reads and the initial order create go through it; other
// mutations must never be blindly retried because a duplicate side effect
// (e.g. a double delivery) is worse than a surfaced transient failure.
package retry

import (
	"context"
	"errors"
	"time"

	"kitchenboard/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 100 * time.Millisecond
)

// Do runs op with bounded exponential backoff. Domain errors (validation,
// not-found, invalid state/transition) are never retried; only failures that
// classify as transient storage errors are. The last error is returned when
// the retry budget is exhausted.
func Do(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newExponentialBackOff(), defaultMaxRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// IsTransient reports whether err represents a storage failure that is safe
// to retry for idempotent operations.
func IsTransient(err error) bool {
	if errors.Is(err, errs.ErrStorageUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}

func newExponentialBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultInitialInterval
	return b
}
