package tieredvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tieredvec-specific helpers.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogExpand logs a global expansion: per-block capacity doubled.
func (l *Logger) LogExpand(blockSize, blocks int) {
	l.Debug("vector expanded",
		"block_size", blockSize,
		"blocks", blocks,
	)
}

// LogCompress logs a global compression: per-block capacity halved.
func (l *Logger) LogCompress(blockSize, blocks int) {
	l.Debug("vector compressed",
		"block_size", blockSize,
		"blocks", blocks,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(count int) {
	l.Debug("vector cleared",
		"count", count,
	)
}
