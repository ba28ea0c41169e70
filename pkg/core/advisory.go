package core

import (
	"context"
	"log/slog"
)

// Advisory runs a side effect whose failure must never reach the primary path.
// A failure is logged at Warn and dropped; the returned bool reports success.
func Advisory(ctx context.Context, logger *slog.Logger, op string, fn func(context.Context) error) bool {
	if err := fn(ctx); err != nil {
		logger.WarnContext(ctx, "advisory operation failed", "op", op, "error", err)
		return false
	}
	return true
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
