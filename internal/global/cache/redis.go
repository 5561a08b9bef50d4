// Package cache is a thin Redis layer for analytics responses. The service
// runs fine without Redis; every helper degrades to a no-op when disabled.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"campus-connect/config"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/global/sentry/tracing"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	log    *slog.Logger

	enabled bool
	ttl     time.Duration
)

func Init() {
	log = logger.New("Cache")
	cfg := config.Get()

	if cfg.Redis.Host == "" {
		log.Info("redis not configured, analytics caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, analytics caching disabled", "error", err)
		Client = nil
		return
	}

	ttl = time.Duration(cfg.Redis.CacheTTLSeconds) * time.Second
	enabled = true
	log.Info("redis cache ready", "addr", cfg.Redis.Host+":"+cfg.Redis.Port, "ttl", ttl.String())
}

func Enabled() bool {
	return enabled
}

// AnalyticsKey builds the cache key for one analytics query of a campus.
// Keeping the campus id in a fixed position lets invalidation match by
// prefix.
func AnalyticsKey(campusID uint, parts ...any) string {
	key := fmt.Sprintf("analytics:%d", campusID)
	for _, part := range parts {
		key += fmt.Sprintf(":%v", part)
	}
	return key
}

// GetJSON loads a cached value into dest; reports whether it was present.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if !enabled {
		return false
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		Client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under the configured TTL. Failures only log: the
// cache is an optimization, never a dependency.
func SetJSON(ctx context.Context, key string, value any) {
	if !enabled {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
}

// InvalidateCampus drops every cached analytics entry of a campus. Called on
// each event write so stale aggregates never outlive a mutation.
func InvalidateCampus(ctx context.Context, campusID uint) {
	if !enabled {
		return
	}
	pattern := fmt.Sprintf("analytics:%d:*", campusID)
	iter := Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := Client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn("cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn("cache scan failed", "pattern", pattern, "error", err)
	}
}
