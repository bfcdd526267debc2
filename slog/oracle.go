package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingOracle implements sitesearch.Oracle.
var _ sitesearch.Oracle = (*LoggingOracle)(nil)

// LoggingOracle wraps an Oracle with per-completion logging.
type LoggingOracle struct {
	next   sitesearch.Oracle
	logger *slog.Logger
}

// NewLoggingOracle creates a new LoggingOracle.
func NewLoggingOracle(next sitesearch.Oracle, logger *slog.Logger) *LoggingOracle {
	return &LoggingOracle{next: next, logger: logger}
}

// Complete delegates to the wrapped oracle and logs the operation.
func (o *LoggingOracle) Complete(ctx context.Context, prompt string) (response string, err error) {
	defer func(begin time.Time) {
		o.logger.Info("oracle completion",
			"promptBytes", len(prompt),
			"responseBytes", len(response),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Complete(ctx, prompt)
}
