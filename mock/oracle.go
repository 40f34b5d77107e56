package mock

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Oracle = (*Oracle)(nil)

// Oracle is a mock implementation of pageindex.Oracle.
type Oracle struct {
	JudgeFn func(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error)
}

func (o *Oracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
	return o.JudgeFn(ctx, query, node, nav)
}
