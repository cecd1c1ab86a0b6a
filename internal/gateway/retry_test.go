package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Run("returns the first success", func(t *testing.T) {
		calls := 0
		out, err := Retry(context.Background(), 3, func() (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries server failures", func(t *testing.T) {
		calls := 0
		out, err := Retry(context.Background(), 3, func() (string, error) {
			calls++
			if calls < 3 {
				return "", &StatusError{Code: http.StatusServiceUnavailable}
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 3, calls)
	})

	t.Run("retries transport failures", func(t *testing.T) {
		calls := 0
		_, err := Retry(context.Background(), 2, func() (int, error) {
			calls++
			return 0, errors.New("request failed: connection refused")
		})
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("client failures are permanent", func(t *testing.T) {
		calls := 0
		_, err := Retry(context.Background(), 3, func() (string, error) {
			calls++
			return "", &StatusError{Code: http.StatusUnauthorized}
		})
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, 1, calls, "4xx must never be retried")
	})
}
