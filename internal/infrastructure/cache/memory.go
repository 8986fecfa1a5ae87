package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fittrack/backend/internal/application/billing"
)

// InMemorySummaryCache caches monthly collection summaries in process memory.
// Suitable for single-instance deployments and tests.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]*summaryEntry
	ttl     time.Duration
	logger  *zap.Logger
}

type summaryEntry struct {
	summary   *billing.MonthlySummaryResponse
	expiresAt time.Time
}

func (e *summaryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySummaryCacheOption is a functional option for configuring the cache
type InMemorySummaryCacheOption func(*InMemorySummaryCache)

// WithInMemoryTTL sets the entry lifetime
func WithInMemoryTTL(ttl time.Duration) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		c.logger = logger
	}
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache(opts ...InMemorySummaryCacheOption) *InMemorySummaryCache {
	c := &InMemorySummaryCache{
		entries: make(map[string]*summaryEntry),
		ttl:     5 * time.Minute,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a cached summary for the month
func (c *InMemorySummaryCache) Get(ctx context.Context, month string) (*billing.MonthlySummaryResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[month]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.isExpired() {
		c.mu.Lock()
		delete(c.entries, month)
		c.mu.Unlock()
		return nil, false
	}

	c.logger.Debug("summary cache hit", zap.String("month", month))
	return entry.summary, true
}

// Set stores a summary for the month
func (c *InMemorySummaryCache) Set(ctx context.Context, month string, summary *billing.MonthlySummaryResponse) {
	if summary == nil {
		return
	}
	c.mu.Lock()
	c.entries[month] = &summaryEntry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops cached summaries for the given months
func (c *InMemorySummaryCache) Invalidate(ctx context.Context, months ...string) {
	c.mu.Lock()
	for _, month := range months {
		delete(c.entries, month)
	}
	c.mu.Unlock()
}

var _ billing.SummaryCache = (*InMemorySummaryCache)(nil)
