package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fittrack/backend/internal/application/billing"
	"github.com/fittrack/backend/internal/infrastructure/config"
)

// SummaryCacheFactory creates summary caches based on configuration
type SummaryCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates a summary cache per the configured backend. With the
// redis backend, Redis is tried first and the in-memory cache is the fallback
// when allowed.
func (f *SummaryCacheFactory) CreateCache() (billing.SummaryCache, error) {
	if f.cacheConfig.Backend == "memory" {
		f.logger.Info("using in-memory summary cache")
		return f.createInMemory(), nil
	}

	redisCache, err := NewRedisSummaryCache(f.redisConfig,
		WithRedisTTL(f.cacheConfig.TTL),
		WithRedisLogger(f.logger),
	)
	if err == nil {
		f.logger.Info("using Redis summary cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory summary cache. "+
		"Cached summaries will not be shared across instances.",
		zap.Error(err),
	)
	return f.createInMemory(), nil
}

func (f *SummaryCacheFactory) createInMemory() billing.SummaryCache {
	return NewInMemorySummaryCache(
		WithInMemoryTTL(f.cacheConfig.TTL),
		WithInMemoryLogger(f.logger),
	)
}
