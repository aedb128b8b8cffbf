package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/tms-go/internal/config"
)

// NewFromConfig builds the Cache selected by configuration: Redis when a URL
// is configured, otherwise in-memory. Resolution correctness never depends on
// the cache; a cold or absent cache only costs extra store reads.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (Cache, error) {
	ttl := time.Duration(cfg.CacheTTL) * time.Second

	if cfg.UseRedisCache() {
		c, err := NewRedisCache(cfg.RedisURL, cfg.CachePrefix, ttl)
		if err != nil {
			return nil, fmt.Errorf("creating redis cache: %w", err)
		}
		logger.Info("cache initialized", "backend", "redis", "ttl", ttl)
		return c, nil
	}

	logger.Info("cache initialized", "backend", "memory", "ttl", ttl)
	return NewMemoryCache(ttl), nil
}
