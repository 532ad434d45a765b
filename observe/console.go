package observe

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// consoleLogger adapts a tint-backed slog.Logger to the Logger interface.
// Intended for local development; production deployments should prefer the
// JSON logger from NewLogger.
type consoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a colorized console logger with the given level.
func NewConsoleLogger(level string) Logger {
	return NewConsoleLoggerWithWriter(level, os.Stderr)
}

// NewConsoleLoggerWithWriter creates a console logger with a custom writer.
func NewConsoleLoggerWithWriter(level string, w io.Writer) Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slogLevel(ParseLogLevel(level)),
		TimeFormat: time.RFC3339,
	})
	return &consoleLogger{logger: slog.New(handler)}
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *consoleLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, msg, slogAttrs(fields)...)
}

func (l *consoleLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, msg, slogAttrs(fields)...)
}

func (l *consoleLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.logger.LogAttrs(ctx, slog.LevelError, msg, slogAttrs(fields)...)
}

func (l *consoleLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.logger.LogAttrs(ctx, slog.LevelDebug, msg, slogAttrs(fields)...)
}

func slogAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if isRedactedField(f.Key) {
			attrs = append(attrs, slog.String(f.Key, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}
