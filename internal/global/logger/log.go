package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"campus-connect/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// multiHandler fans a record out to several slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(handlers...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return newMultiHandler(handlers...)
}

// Get returns the global logger. Release mode writes rotated JSON files,
// debug mode writes text to stdout; a Sentry handler is added when a DSN is
// configured.
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		opts := &slog.HandlerOptions{
			AddSource: cfg.Mode == config.ModeRelease,
			Level:     getLogLevel(cfg.Log.Level),
		}

		var baseHandler slog.Handler
		if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
			lumberjackLogger := &lumberjack.Logger{
				Filename:   cfg.Log.FilePath,
				MaxSize:    cfg.Log.MaxSize,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAge,
				Compress:   cfg.Log.Compress,
			}
			baseHandler = slog.NewJSONHandler(lumberjackLogger, opts)
		} else {
			baseHandler = slog.NewTextHandler(os.Stdout, opts)
		}

		var finalHandler slog.Handler = baseHandler

		if cfg.Sentry.Dsn != "" {
			sentryHandler := sentryslog.Option{
				// Error records become Sentry events, warnings become logs.
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
				AddSource:  cfg.Mode == config.ModeRelease,
			}.NewSentryHandler(context.Background())

			finalHandler = newMultiHandler(baseHandler, sentryHandler)
		}

		instance = slog.New(finalHandler).With(
			"app_name", "campus-connect",
			"env", string(cfg.Mode),
		)
	})
	return instance
}

// New returns a logger tagged with a module name.
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// WithContext returns a logger carrying the request's client IP fields so
// Sentry log reports include them.
func WithContext(base *slog.Logger, c interface {
	ClientIP() string
	GetHeader(string) string
}) *slog.Logger {
	ip := c.ClientIP()
	l := base.With("client_ip", ip)

	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		l = l.With("x_real_ip", realIP)
	}

	return l
}

func getLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
