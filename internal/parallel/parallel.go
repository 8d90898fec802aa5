// Package parallel runs independent jobs concurrently and collects their
// results in input order.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the default number of jobs run at once.
const DefaultLimit = 10

// Result holds the outcome of one job.
type Result[T any] struct {
	Value T
	Err   error
}

// Map runs fn for every item with at most DefaultLimit jobs in flight.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	return MapWithLimit(ctx, items, DefaultLimit, fn)
}

// MapWithLimit is like Map with a custom limit. A non-positive limit means no limit.
//
// A failing job does not cancel the others; its error is kept in its Result.
// Jobs not yet started when ctx is done get ctx.Err() as their error.
func MapWithLimit[T, R any](
	ctx context.Context,
	items []T,
	limit int,
	fn func(ctx context.Context, item T) (R, error),
) []Result[R] {
	results := make([]Result[R], len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err

				return nil
			}

			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}
