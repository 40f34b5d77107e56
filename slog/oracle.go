package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageindex"
)

// Ensure LoggingOracle implements pageindex.Oracle.
var _ pageindex.Oracle = (*LoggingOracle)(nil)

// LoggingOracle wraps an Oracle with debug logging of every judgment.
type LoggingOracle struct {
	next   pageindex.Oracle
	logger *slog.Logger
}

// NewLoggingOracle creates a new LoggingOracle.
func NewLoggingOracle(next pageindex.Oracle, logger *slog.Logger) *LoggingOracle {
	return &LoggingOracle{next: next, logger: logger}
}

// Judge delegates to the wrapped oracle and logs the decision.
func (o *LoggingOracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (d pageindex.Decision, err error) {
	defer func(begin time.Time) {
		o.logger.Debug("oracle judgment",
			"node", node.ID,
			"step", nav.Step,
			"action", string(d.Action),
			"target", d.Target,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Judge(ctx, query, node, nav)
}
