package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExecuteBatch runs Execute for every spec with at most concurrency runs in
// flight (DefaultConcurrency when zero or negative). Results are returned in
// input order. The first failure cancels the remaining runs and is returned
// prefixed with the failing spec's name.
func (r *Runner) ExecuteBatch(ctx context.Context, specs []ChartSpec, opts Options, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	r.applyLogger(&opts)

	results := make([]*Result, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, spec := range specs {
		g.Go(func() error {
			res, err := r.Execute(ctx, spec, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", spec.label(i), err)
			}
			results[i] = res
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
