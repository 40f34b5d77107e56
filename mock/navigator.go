package mock

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of pageindex.Navigator.
type Navigator struct {
	NavigateFn func(ctx context.Context, idx *pageindex.Index, query string) (*pageindex.QueryResult, error)
}

func (n *Navigator) Navigate(ctx context.Context, idx *pageindex.Index, query string) (*pageindex.QueryResult, error) {
	return n.NavigateFn(ctx, idx, query)
}
