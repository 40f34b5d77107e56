package navigate

import (
	"context"

	"github.com/fwojciec/pageindex"
	"golang.org/x/time/rate"
)

var _ pageindex.Oracle = (*RateLimitedOracle)(nil)

// RateLimitedOracle throttles calls to another Oracle with a token bucket
// shared by every session using it, so concurrent queries stay within a
// provider's request quota.
type RateLimitedOracle struct {
	next    pageindex.Oracle
	limiter *rate.Limiter
}

// NewRateLimitedOracle allows rps calls per second with the given burst.
// A burst below 1 is raised to 1.
func NewRateLimitedOracle(next pageindex.Oracle, rps float64, burst int) *RateLimitedOracle {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedOracle{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Judge waits for a token, then delegates. Returns the context error if
// ctx is canceled while waiting.
func (o *RateLimitedOracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return pageindex.Decision{}, err
	}
	return o.next.Judge(ctx, query, node, nav)
}
