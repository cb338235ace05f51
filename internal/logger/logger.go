package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

// InitLogger configures the process-wide slog default from config.
func InitLogger(config Config) {
	InitLoggerWithWriter(config, os.Stdout)
}

// InitLoggerWithWriter configures the default logger writing to w.
// Used by tests to capture output.
func InitLoggerWithWriter(config Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs(config.BaseAttributes())
	slog.SetDefault(slog.New(handler))
}

// GenerateSessionID creates a new UUID used to tag one session's logs
// and timers.
func GenerateSessionID() string {
	return uuid.NewString()
}

// WithSessionID returns a new context containing the session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext extracts the session ID from the context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sessionIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the session_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := SessionIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeySessionID, id)
	}
	return slog.Default()
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// Info logs at info level on the default logger.
func Info(msg string, args ...any) { slog.Info(msg, args...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

// Error logs at error level on the default logger.
func Error(msg string, args ...any) { slog.Error(msg, args...) }
