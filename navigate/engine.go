// Package navigate implements the navigation engine: the state machine that
// walks a document outline under the direction of an oracle and packages
// what it extracted into a query result.
package navigate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Navigator = (*Engine)(nil)

// Engine answers queries by navigating an index. It holds no per-query
// state, so one Engine can serve concurrent queries as long as its Oracle
// and Synthesizer are safe for concurrent use.
type Engine struct {
	Oracle      pageindex.Oracle
	Synthesizer pageindex.Synthesizer
	Config      Config

	// Logger receives warnings about truncated and degraded results.
	// Nil discards them.
	Logger *slog.Logger
}

// NewEngine returns an Engine with the default configuration.
func NewEngine(oracle pageindex.Oracle, synth pageindex.Synthesizer) *Engine {
	return &Engine{Oracle: oracle, Synthesizer: synth, Config: DefaultConfig()}
}

// Navigate answers query by walking idx. Oracle failures, invalid
// decisions and the step limit never produce an error; they are recorded
// in the trace and reflected in the result flags and confidence.
//
// Returns EINVALID for a nil index, an empty query, or a missing oracle.
// If ctx is canceled, Navigate stops before the next oracle call and
// returns the partial result together with the context error.
func (e *Engine) Navigate(ctx context.Context, idx *pageindex.Index, query string) (*pageindex.QueryResult, error) {
	if idx == nil {
		return nil, pageindex.Errorf(pageindex.EINVALID, "index required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, pageindex.Errorf(pageindex.EINVALID, "query required")
	}
	if e.Oracle == nil {
		return nil, pageindex.Errorf(pageindex.EINVALID, "oracle required")
	}

	config := e.Config.withDefaults()
	s := NewSession(idx, config)
	logger := e.logger().With("document", idx.DocumentID)

	failures := 0
	for !s.Done() {
		if s.Steps() >= config.StepLimit {
			s.Halt("step limit reached", true, false)
			logger.Warn("navigation truncated", "steps", s.Steps(), "node", s.Current().ID)
			break
		}
		if err := ctx.Err(); err != nil {
			return e.canceled(s, query, err), err
		}

		decision, err := e.Oracle.Judge(ctx, query, s.Descriptor(), s.Context())
		if err == nil {
			err = s.Apply(decision)
		}
		if err == nil {
			failures = 0
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return e.canceled(s, query, ctxErr), ctxErr
		}

		failures++
		s.Fail(err)
		logger.Warn("oracle attempt rejected",
			"node", s.Current().ID,
			"attempt", failures,
			"code", pageindex.ErrorCode(err),
			"error", err,
		)
		if failures > config.MaxRetries {
			s.Halt(fmt.Sprintf("oracle failed: %v", err), false, true)
			logger.Warn("navigation degraded", "failures", failures, "node", s.Current().ID)
			break
		}
		if err := wait(ctx, retryDelay(config.RetryDelay, failures)); err != nil {
			return e.canceled(s, query, err), err
		}
	}

	return e.finish(ctx, s, idx, query, config, logger), nil
}

func (e *Engine) finish(ctx context.Context, s *Session, idx *pageindex.Index, query string, config Config, logger *slog.Logger) *pageindex.QueryResult {
	res := e.result(s, idx, query)

	fragments := s.UniqueFragments()
	if len(fragments) == 0 {
		res.Answer = pageindex.NoAnswer
		res.Confidence = 0
		return res
	}

	synth := e.Synthesizer
	if synth == nil {
		synth = ExtractiveSynthesizer{}
	}

	out, err := synth.Synthesize(ctx, query, fragments)
	if err != nil || out == nil {
		logger.Warn("synthesis failed, returning extracted text", "error", err)
		res.Answer = pageindex.FormatFragments(fragments)
		res.Confidence = 0
		res.Degraded = true
		return res
	}

	res.Answer = out.Answer
	res.Confidence = pageindex.ClampConfidence(out.Confidence)
	if res.Truncated {
		res.Confidence *= config.TruncationPenalty
	}
	if res.Degraded {
		res.Confidence *= config.DegradedPenalty
	}
	return res
}

func (e *Engine) canceled(s *Session, query string, err error) *pageindex.QueryResult {
	s.Halt("navigation canceled: "+err.Error(), false, true)
	res := e.result(s, s.idx, query)
	res.Answer = pageindex.FormatFragments(s.UniqueFragments())
	if res.Answer == "" {
		res.Answer = pageindex.NoAnswer
	}
	res.Confidence = 0
	return res
}

func (e *Engine) result(s *Session, idx *pageindex.Index, query string) *pageindex.QueryResult {
	return &pageindex.QueryResult{
		Query:          query,
		DocumentID:     idx.DocumentID,
		Sources:        s.Sources(),
		NavigationPath: s.Path(),
		Steps:          s.Steps(),
		Trace:          s.Trace(),
		Truncated:      s.Truncated(),
		Degraded:       s.Degraded(),
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// retryDelay doubles base for each consecutive failure after the first.
func retryDelay(base time.Duration, failures int) time.Duration {
	if base <= 0 {
		return 0
	}
	return base << (failures - 1)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
