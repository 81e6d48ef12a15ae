package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-jossydiva-api/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix  = "reports:"
	scanBatchSize    = 100
	defaultReportTTL = time.Minute
)

// ReportCache stores marshalled report payloads keyed by report kind
// and window. Sales are append-only, so invalidation happens only when
// a new sale or fulfillment lands.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache returns a redis-backed cache when REDIS_ADDR is set
// and reachable, otherwise a noop cache. TTL comes from
// REPORT_CACHE_TTL_SECONDS (default one minute).
func NewReportCache() ReportCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return &noopReportCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, report cache disabled")
		return &noopReportCache{}
	}

	ttl := defaultReportTTL
	if raw := os.Getenv("REPORT_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	logger.Log.Info().Str("addr", addr).Dur("ttl", ttl).Msg("report cache enabled")
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, reportKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, reportKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *noopReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *noopReportCache) Set(ctx context.Context, key string, payload []byte) error {
	return nil
}

func (c *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}
