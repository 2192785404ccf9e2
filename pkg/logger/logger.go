// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers log through the request-scoped logger so every line carries the
// request ID:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/orderdesk/delivery/config"
)

var (
	mu   sync.RWMutex
	L    *slog.Logger
	base slog.Handler
)

func init() {
	base = newHandler(os.Stdout, config.AppEnv())
	L = slog.New(base)
	slog.SetDefault(L)
}

func newHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "test", "testing":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Attach fans every subsequent log record out to h as well as the console.
// Loggers already handed out by WithCtx keep their old handler.
func Attach(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	L = slog.New(NewMultiHandler(base, h))
	slog.SetDefault(L)
}

// Base returns the current process logger.
func Base() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return L
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request logger stored by the Logger middleware, or the
// process logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return Base()
}

// InjectLogger stores log into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { Base().Debug(msg, args...) }

func Info(msg string, args ...any) { Base().Info(msg, args...) }

func Warn(msg string, args ...any) { Base().Warn(msg, args...) }

func Error(msg string, args ...any) { Base().Error(msg, args...) }
