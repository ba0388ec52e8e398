package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/realsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoffSucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls == 1 {
			return storage.ErrUnavailable
		}
		return nil
	}, 2, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return storage.ErrUnavailable
	}, 2, time.Millisecond)

	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoffDoesNotRetryOtherErrors(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return permanent
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffInvalidAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoffRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return storage.ErrUnavailable
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
