package mock

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.QueryService = (*QueryService)(nil)

// QueryService is a mock implementation of pageindex.QueryService.
type QueryService struct {
	CreateQueryFn   func(ctx context.Context, rec *pageindex.QueryRecord) error
	FindQueryByIDFn func(ctx context.Context, id string) (*pageindex.QueryRecord, error)
	FindQueriesFn   func(ctx context.Context, filter pageindex.QueryFilter) ([]*pageindex.QueryRecord, error)
}

func (s *QueryService) CreateQuery(ctx context.Context, rec *pageindex.QueryRecord) error {
	return s.CreateQueryFn(ctx, rec)
}

func (s *QueryService) FindQueryByID(ctx context.Context, id string) (*pageindex.QueryRecord, error) {
	return s.FindQueryByIDFn(ctx, id)
}

func (s *QueryService) FindQueries(ctx context.Context, filter pageindex.QueryFilter) ([]*pageindex.QueryRecord, error) {
	return s.FindQueriesFn(ctx, filter)
}
