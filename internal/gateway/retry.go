package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v5"
)

// Retry runs fn with exponential backoff. Retry policy is owned by the
// caller, never by the session core: only idempotent reads should be
// wrapped. Authentication, permission, and other 4xx failures are
// permanent; transport errors and 5xx responses are retried.
func Retry[T any](ctx context.Context, maxTries uint, fn func() (T, error)) (T, error) {
	op := func() (T, error) {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		var se *StatusError
		if errors.As(err, &se) && se.Code < http.StatusInternalServerError {
			return out, backoff.Permanent(err)
		}
		return out, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxTries),
	)
}
