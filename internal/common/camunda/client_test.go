package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"career-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_RecoversFromTransientError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		if calls < 2 {
			return fmt.Errorf("rpc error: code = Unavailable desc = connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "deploy", func(context.Context) error {
		calls++
		return fmt.Errorf("process not found")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeResourceNotFound, stdErr.Code)
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		return fmt.Errorf("context deadline exceeded")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
	assert.Contains(t, stdErr.Details, "after 3 attempts")
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Second}
	err := Retry(ctx, slow, "topology", func(context.Context) error {
		return fmt.Errorf("connection reset")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
