package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
)

const resultKeyPrefix = "emotionarc:result:"

// AnalysisCache caches EmotionResults by content hash with a TTL.
type AnalysisCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewAnalysisCache builds a cache with the given TTL.
func NewAnalysisCache(rdb goredis.Cmdable, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{rdb: rdb, ttl: ttl}
}

// GetResult implements domain.AnalysisCache. A cache error counts as a miss.
func (c *AnalysisCache) GetResult(ctx context.Context, key string) (*domain.EmotionResult, bool, error) {
	raw, err := c.rdb.Get(ctx, resultKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheMisses.Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheErrors.Inc()
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var result domain.EmotionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		metrics.CacheErrors.Inc()
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	metrics.CacheHits.Inc()
	return &result, true, nil
}

// SetResult implements domain.AnalysisCache.
func (c *AnalysisCache) SetResult(ctx context.Context, key string, result *domain.EmotionResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, resultKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		metrics.CacheErrors.Inc()
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
