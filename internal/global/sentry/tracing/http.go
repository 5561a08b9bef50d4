package tracing

import (
	"context"
	"time"

	"campus-connect/config"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
)

type restySpanKey struct{}

// SetupRestyTracing attaches Sentry spans to every outbound resty request.
func SetupRestyTracing(client *resty.Client) {
	cfg := config.Get()
	slowThreshold := time.Duration(cfg.Sentry.Tracing.HTTPSlowThresholdMs) * time.Millisecond

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		parentSpan := sentry.SpanFromContext(req.Context())
		if parentSpan == nil {
			return nil
		}

		span := parentSpan.StartChild("http.client")
		span.Description = req.Method + " " + req.URL
		span.SetData("http.request.method", req.Method)
		span.SetData("server.address", req.URL)

		req.SetContext(context.WithValue(span.Context(), restySpanKey{}, span))
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		span, ok := resp.Request.Context().Value(restySpanKey{}).(*sentry.Span)
		if !ok || span == nil {
			return nil
		}

		if slowThreshold > 0 && resp.Time() < slowThreshold && resp.IsSuccess() {
			span.Sampled = sentry.SampledFalse
		}

		span.SetData("http.response.status_code", resp.StatusCode())
		span.Status = sentry.HTTPtoSpanStatus(resp.StatusCode())
		span.Finish()
		return nil
	})
}
