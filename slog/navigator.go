package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageindex"
)

// Ensure LoggingNavigator implements pageindex.Navigator.
var _ pageindex.Navigator = (*LoggingNavigator)(nil)

// LoggingNavigator wraps a Navigator with a summary log line per query.
type LoggingNavigator struct {
	next   pageindex.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next pageindex.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Navigate delegates to the wrapped navigator and logs the result flags.
func (n *LoggingNavigator) Navigate(ctx context.Context, idx *pageindex.Index, query string) (res *pageindex.QueryResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"query", query}
		if idx != nil {
			attrs = append(attrs, "document", idx.DocumentID)
		}
		if res != nil {
			attrs = append(attrs,
				"steps", res.Steps,
				"sources", len(res.Sources),
				"confidence", res.Confidence,
				"truncated", res.Truncated,
				"degraded", res.Degraded,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		n.logger.Info("navigation", attrs...)
	}(time.Now())
	return n.next.Navigate(ctx, idx, query)
}
