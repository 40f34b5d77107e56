package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageindex"
)

// Ensure LoggingSynthesizer implements pageindex.Synthesizer.
var _ pageindex.Synthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a Synthesizer with debug logging.
type LoggingSynthesizer struct {
	next   pageindex.Synthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next pageindex.Synthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the outcome.
func (s *LoggingSynthesizer) Synthesize(ctx context.Context, query string, fragments []pageindex.Fragment) (out *pageindex.Synthesis, err error) {
	defer func(begin time.Time) {
		confidence := 0.0
		if out != nil {
			confidence = out.Confidence
		}
		s.logger.Debug("synthesis",
			"fragments", len(fragments),
			"confidence", confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Synthesize(ctx, query, fragments)
}
