package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fittrack/backend/internal/application/billing"
	"github.com/fittrack/backend/internal/infrastructure/config"
)

const summaryKeyPrefix = "fittrack:summary:"

// RedisSummaryCache caches monthly collection summaries in Redis so multiple
// instances share one cache.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithRedisTTL sets the entry lifetime
func WithRedisTTL(ttl time.Duration) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.ttl = ttl
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a Redis-backed summary cache and verifies the
// connection
func NewRedisSummaryCache(cfg config.RedisConfig, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := &RedisSummaryCache{
		client: client,
		ttl:    5 * time.Minute,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get retrieves a cached summary for the month
func (c *RedisSummaryCache) Get(ctx context.Context, month string) (*billing.MonthlySummaryResponse, bool) {
	data, err := c.client.Get(ctx, summaryKeyPrefix+month).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("summary cache read failed", zap.String("month", month), zap.Error(err))
		}
		return nil, false
	}

	var summary billing.MonthlySummaryResponse
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("summary cache entry corrupt", zap.String("month", month), zap.Error(err))
		return nil, false
	}
	return &summary, true
}

// Set stores a summary for the month
func (c *RedisSummaryCache) Set(ctx context.Context, month string, summary *billing.MonthlySummaryResponse) {
	if summary == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("summary cache marshal failed", zap.String("month", month), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+month, data, c.ttl).Err(); err != nil {
		c.logger.Warn("summary cache write failed", zap.String("month", month), zap.Error(err))
	}
}

// Invalidate drops cached summaries for the given months
func (c *RedisSummaryCache) Invalidate(ctx context.Context, months ...string) {
	if len(months) == 0 {
		return
	}
	keys := make([]string, len(months))
	for i, month := range months {
		keys[i] = summaryKeyPrefix + month
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

// Close closes the underlying Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

var _ billing.SummaryCache = (*RedisSummaryCache)(nil)
