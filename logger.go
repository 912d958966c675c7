package hlfs

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hlfs-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithDescriptor adds a descriptor field to the logger.
func (l *Logger) WithDescriptor(fd int) *Logger {
	return &Logger{
		Logger: l.Logger.With("fd", fd),
	}
}

// LogOpen logs an open attempt.
func (l *Logger) LogOpen(ctx context.Context, path string, fd int, err error) {
	if err != nil {
		l.DebugContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "file opened",
			"path", path,
			"fd", fd,
		)
	}
}

// LogClose logs a close operation.
func (l *Logger) LogClose(ctx context.Context, err error) {
	if err != nil {
		l.DebugContext(ctx, "close reported an error", "error", err)
	} else {
		l.DebugContext(ctx, "file closed")
	}
}

// LogCompletion logs the completion of an asynchronous transfer.
func (l *Logger) LogCompletion(ctx context.Context, op string, n int, err error) {
	if err != nil {
		l.DebugContext(ctx, "async transfer failed",
			"op", op,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "async transfer completed",
			"op", op,
			"bytes", n,
		)
	}
}
