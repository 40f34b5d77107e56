package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pageindex"
)

// Ensure LoggingRegistry implements pageindex.IndexBuilderRegistry.
var _ pageindex.IndexBuilderRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an IndexBuilderRegistry with debug logging for
// index builds.
type LoggingRegistry struct {
	next   pageindex.IndexBuilderRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next pageindex.IndexBuilderRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(t pageindex.DocumentType) pageindex.IndexBuilder {
	return r.next.Get(t)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(t pageindex.DocumentType, b pageindex.IndexBuilder) {
	r.next.Register(t, b)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []pageindex.DocumentType {
	return r.next.List()
}

// Build delegates to the wrapped registry and logs the size of the tree.
func (r *LoggingRegistry) Build(t pageindex.DocumentType, data []byte) (idx *pageindex.Index, err error) {
	defer func(begin time.Time) {
		nodes := 0
		if idx != nil {
			nodes = idx.Len()
		}
		r.logger.Info("index build",
			"type", string(t),
			"bytes", len(data),
			"nodes", nodes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Build(t, data)
}
