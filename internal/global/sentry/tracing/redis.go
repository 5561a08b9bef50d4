package tracing

import (
	"context"
	"net"
	"time"

	"campus-connect/config"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisSentryHook implements redis.Hook and records command spans.
type RedisSentryHook struct {
	// slowThreshold drops spans for commands faster than this; zero keeps
	// every span.
	slowThreshold time.Duration
}

func NewRedisSentryHook() *RedisSentryHook {
	cfg := config.Get()
	threshold := time.Duration(cfg.Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond
	return &RedisSentryHook{
		slowThreshold: threshold,
	}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		startTime := time.Now()

		parentSpan := sentry.SpanFromContext(ctx)

		var span *sentry.Span
		if parentSpan != nil {
			span = parentSpan.StartChild("db.redis")
			span.Description = cmd.Name()
			span.SetData("db.system", "redis")
			span.SetData("db.operation", cmd.Name())
			ctx = span.Context()
		}

		err := next(ctx, cmd)

		elapsed := time.Since(startTime)

		if span != nil {
			if h.slowThreshold > 0 && elapsed < h.slowThreshold {
				span.Sampled = sentry.SampledFalse
			}

			if err != nil && err != redis.Nil {
				span.Status = sentry.SpanStatusInternalError
				span.SetData("redis.error", err.Error())
			} else {
				span.Status = sentry.SpanStatusOK
			}

			span.Finish()
		}

		return err
	}
}

func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		parentSpan := sentry.SpanFromContext(ctx)

		var span *sentry.Span
		if parentSpan != nil {
			span = parentSpan.StartChild("db.redis.pipeline")
			span.SetData("db.system", "redis")
			span.SetData("redis.commands", len(cmds))
			ctx = span.Context()
		}

		err := next(ctx, cmds)

		if span != nil {
			if err != nil && err != redis.Nil {
				span.Status = sentry.SpanStatusInternalError
			} else {
				span.Status = sentry.SpanStatusOK
			}
			span.Finish()
		}

		return err
	}
}
