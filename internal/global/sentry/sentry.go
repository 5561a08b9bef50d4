package sentry

import (
	"fmt"
	"time"

	"campus-connect/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError lets the reporter distinguish server faults from business
// errors by their code.
type CodedError interface {
	error
	GetCode() int32
}

// Init configures the Sentry SDK. A missing DSN disables reporting.
func Init() error {
	cfg := config.Get()

	if cfg.Sentry.Dsn == "" {
		return nil
	}

	// Error events always report at 100%; only performance traces sample.
	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}

	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "campus-connect@1.0.0",
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	return nil
}

// Middleware returns the Sentry gin middleware, or a no-op without a DSN.
func Middleware() gin.HandlerFunc {
	cfg := config.Get()

	if cfg.Sentry.Dsn == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		// Let panics propagate to the recovery middleware.
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException reports a server-side failure. Business errors (codes
// below 50000) are not reported.
func CaptureException(c *gin.Context, err error) {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" || err == nil {
		return
	}

	if coded, ok := err.(CodedError); ok && coded.GetCode() < 50000 {
		return
	}

	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// Flush drains pending events; call on shutdown.
func Flush(timeout time.Duration) {
	if config.Get().Sentry.Dsn != "" {
		sentry.Flush(timeout)
	}
}
