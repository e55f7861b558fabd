// Package pacing joins work with a minimum visible duration so that fast
// responses do not flash loading states past the player.
package pacing

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// AtLeast runs fn and returns its result no sooner than floor after the call,
// whether fn succeeds or fails. Cancelling ctx aborts the wait and is passed
// on to fn.
func AtLeast[T any](ctx context.Context, floor time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if floor <= 0 {
		return fn(ctx)
	}

	var g errgroup.Group

	var result T
	g.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})

	g.Go(func() error {
		timer := time.NewTimer(floor)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
