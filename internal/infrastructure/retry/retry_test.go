package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps test runtime negligible.
func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, fastConfig(3))

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig(3))

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("still failing")
	err := Do(context.Background(), func() error {
		calls++
		return wantErr
	}, fastConfig(3))

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanent(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return NewPermanent(errors.New("bad request"))
	}, fastConfig(5).WithRetryIf(SkipPermanent))

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls, "permanent errors must not be retried")
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		return errors.New("never succeeds")
	}, fastConfig(3))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls, "cancelled context prevents the first attempt")
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), func() ([]string, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("transient")
		}
		return []string{"NRT", "LHR"}, nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, []string{"NRT", "LHR"}, got)
	assert.Equal(t, 2, calls)
}

func TestDiscoveryConfig_RetriesExactlyOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("upstream down")
	}, DiscoveryConfig.WithMaxAttempts(DiscoveryConfig.MaxAttempts))

	require.Error(t, err)
	assert.Equal(t, 2, calls, "discovery gets the initial attempt plus one retry")
}

func TestPermanent_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewPermanent(cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewPermanent(nil))
	assert.False(t, SkipPermanent(err))
	assert.True(t, SkipPermanent(cause))
}
