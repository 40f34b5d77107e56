package navigate

import (
	"context"

	"github.com/fwojciec/pageindex"
	"golang.org/x/sync/errgroup"
)

// BatchResult pairs a query with its outcome.
type BatchResult struct {
	Query  string                 `json:"query"`
	Result *pageindex.QueryResult `json:"result,omitempty"`
	Err    error                  `json:"-"`
}

// Batch navigates idx once per query with at most concurrency sessions in
// flight. Results are in input order. Per-query errors are reported in
// BatchResult.Err; the returned error is non-nil only when ctx ends the
// batch early.
func Batch(ctx context.Context, nav pageindex.Navigator, idx *pageindex.Index, queries []string, concurrency int) ([]BatchResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range queries {
		results[i].Query = q
		if gctx.Err() != nil {
			results[i].Err = gctx.Err()
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			res, err := nav.Navigate(gctx, idx, q)
			results[i].Result = res
			results[i].Err = err
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
