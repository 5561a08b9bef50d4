// Package tracing integrates Sentry performance tracing with the Redis and
// HTTP clients.
package tracing

import (
	"context"

	"campus-connect/config"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// IsEnabled reports whether Sentry tracing is configured.
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// GetSpanFromGinContext returns the current Sentry span, if any. The
// sentrygin middleware stores it in the request context.
func GetSpanFromGinContext(c *gin.Context) *sentry.Span {
	if c == nil || c.Request == nil || c.Request.Context() == nil {
		return nil
	}
	return sentry.SpanFromContext(c.Request.Context())
}

// ContextWithSpan converts a gin.Context into a context carrying the current
// Sentry span, suitable for store/Redis calls:
//
//	ctx := tracing.ContextWithSpan(c)
//	database.Store.GetEventsByCampus(ctx, campusID)
func ContextWithSpan(c *gin.Context) context.Context {
	if c == nil || c.Request == nil || c.Request.Context() == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// StartSpan opens a child span under the request transaction for custom
// business logic. Callers must Finish() it.
func StartSpan(c *gin.Context, operation, description string) *sentry.Span {
	parentSpan := GetSpanFromGinContext(c)
	if parentSpan == nil {
		return &sentry.Span{}
	}

	span := parentSpan.StartChild(operation)
	span.Description = description
	return span
}
