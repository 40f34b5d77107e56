package navigate

import "time"

// Defaults used by DefaultConfig.
const (
	DefaultStepLimit  = 15
	DefaultMaxRetries = 2
	DefaultPenalty    = 0.5
)

// Config controls a navigation session.
//
// The zero value allows no retries and no jumps; start from DefaultConfig
// and override fields instead.
type Config struct {
	// StepLimit caps the number of oracle decisions applied per query.
	StepLimit int

	// MaxRetries is how many consecutive failed oracle attempts are
	// retried at the same node before navigation is forced to complete.
	MaxRetries int

	// RetryDelay is the wait before the first retry; it doubles for each
	// further consecutive failure. Zero retries immediately.
	RetryDelay time.Duration

	// AllowCrossReferenceJumps lets backtrack target any resolvable
	// cross-reference seen from a visited node, not only ancestors.
	AllowCrossReferenceJumps bool

	// AllowVisitedJumps lets backtrack target any previously visited node,
	// including siblings visited in an abandoned branch.
	AllowVisitedJumps bool

	// PreviewLength is the number of content runes shown to the oracle.
	// Zero sends no content at all before an extract.
	PreviewLength int

	// TruncationPenalty multiplies the confidence of results stopped by
	// the step limit. DegradedPenalty does the same for results produced
	// after an oracle or synthesizer failure. Values outside (0,1] fall
	// back to DefaultPenalty.
	TruncationPenalty float64
	DegradedPenalty   float64
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		StepLimit:                DefaultStepLimit,
		MaxRetries:               DefaultMaxRetries,
		AllowCrossReferenceJumps: true,
		TruncationPenalty:        DefaultPenalty,
		DegradedPenalty:          DefaultPenalty,
	}
}

func (c Config) withDefaults() Config {
	if c.StepLimit <= 0 {
		c.StepLimit = DefaultStepLimit
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.PreviewLength < 0 {
		c.PreviewLength = 0
	}
	if c.TruncationPenalty <= 0 || c.TruncationPenalty > 1 {
		c.TruncationPenalty = DefaultPenalty
	}
	if c.DegradedPenalty <= 0 || c.DegradedPenalty > 1 {
		c.DegradedPenalty = DefaultPenalty
	}
	return c
}
