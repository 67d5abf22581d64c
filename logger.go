package primesieve

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with primesieve-specific helpers.
// Field names are consistent across all helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithBound adds a bound field to the logger.
func (l *Logger) WithBound(n uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("bound", n),
	}
}

// LogRun logs a completed, failed or canceled run.
func (l *Logger) LogRun(ctx context.Context, bound uint64, res Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sieve failed",
			"bound", bound,
			"reached", res.Reached,
			"count", res.Count,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "sieve completed",
		"bound", bound,
		"count", res.Count,
		"elapsed", elapsed,
		"window_bytes", res.Stats.WindowBytes,
		"max_heap_len", res.Stats.MaxHeapLen,
	)
}

// LogProgress logs a checkpoint of a running scan. bound only feeds the
// percentage; call it on a WithBound logger to tag the record.
func (l *Logger) LogProgress(ctx context.Context, bound, x, count uint64, heapLen int) {
	var pct float64
	if bound > 0 {
		pct = float64(x) / float64(bound) * 100
	}
	l.InfoContext(ctx, "sieve progress",
		"x", x,
		"count", count,
		"heap_len", heapLen,
		"percent", pct,
	)
}

// LogExport logs a prime set export.
func (l *Logger) LogExport(ctx context.Context, name string, info ExportInfo, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"name", name,
			"bound", info.Bound,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "prime set exported",
		"name", name,
		"bound", info.Bound,
		"count", info.Count,
		"codec", info.Codec.String(),
		"raw_bytes", info.RawBytes,
		"stored_bytes", info.StoredBytes,
	)
}

// LogBatch logs a CountMany call.
func (l *Logger) LogBatch(ctx context.Context, bounds, failed int, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch completed with failures",
			"bounds", bounds,
			"failed", failed,
			"elapsed", elapsed,
		)
		return
	}
	l.InfoContext(ctx, "batch completed",
		"bounds", bounds,
		"elapsed", elapsed,
	)
}
