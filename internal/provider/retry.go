package provider

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryInitialInterval is shortened by tests.
var retryInitialInterval = time.Second

// Retry runs op up to attempts times with exponential backoff. AuthError is
// permanent and returned after the first attempt; everything else is
// treated as retryable. Context cancellation stops the schedule.
func Retry(ctx context.Context, attempts int, op func(context.Context) (string, error)) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 0

	var result string
	err := backoff.Retry(func() error {
		out, err := op(ctx)
		if err != nil {
			var authErr *AuthError
			if errors.As(err, &authErr) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = out
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx))

	return result, err
}
