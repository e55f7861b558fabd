package pacing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAtLeastWaitsForFloor(t *testing.T) {
	t.Parallel()

	floor := 80 * time.Millisecond
	start := time.Now()

	got, err := AtLeast(context.Background(), floor, func(context.Context) (string, error) {
		return "names", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "names", got)
	assert.GreaterOrEqual(t, time.Since(start), floor)
}

func TestAtLeastSlowWorkIsNotPadded(t *testing.T) {
	t.Parallel()

	floor := 20 * time.Millisecond
	work := 100 * time.Millisecond
	start := time.Now()

	got, err := AtLeast(context.Background(), floor, func(context.Context) (int, error) {
		time.Sleep(work)
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, work)
	assert.Less(t, elapsed, work+floor+time.Second)
}

func TestAtLeastWaitsForFloorOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	floor := 80 * time.Millisecond
	start := time.Now()

	got, err := AtLeast(context.Background(), floor, func(context.Context) ([]string, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.GreaterOrEqual(t, time.Since(start), floor)
}

func TestAtLeastCancelledDuringFloorAfterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := AtLeast(ctx, time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestAtLeastCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := AtLeast(ctx, time.Minute, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAtLeastZeroFloor(t *testing.T) {
	t.Parallel()

	got, err := AtLeast(context.Background(), 0, func(context.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
