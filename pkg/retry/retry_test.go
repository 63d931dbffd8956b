package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		var calls int

		err := Do(t.Context(), RetryConfig{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		var calls int
		cfg := RetryConfig{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Millisecond),
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		wantErr := errors.New("persistent")
		cfg := RetryConfig{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Millisecond),
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			return wantErr
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("ShouldRetryStops", func(t *testing.T) {
		var calls int
		fatal := errors.New("fatal")
		cfg := RetryConfig{
			MaxAttempts: 5,
			Backoff:     LinearBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			return fatal
		})

		require.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := Do(ctx, RetryConfig{}, func() error { return nil })

		assert.ErrorIs(t, err, context.Canceled)
	})
}
