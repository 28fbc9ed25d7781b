package docpack

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docpack-specific context.
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
// This is the default for the package: a codec library stays silent unless
// a logger is configured explicitly.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCodec adds the codec name field to the logger.
func (l *Logger) WithCodec(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("codec", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(count, bytes int, err error) {
	if err != nil {
		l.Error("encode failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("encode completed",
			"count", count,
			"bytes", bytes,
		)
	}
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(count int, err error) {
	if err != nil {
		l.Error("decode failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"count", count,
		)
	}
}
