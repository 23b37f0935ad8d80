package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const realTimeTTL = 5 * time.Second

// AnalyticsStorage 实时统计快照
type AnalyticsStorage struct {
	jsonStorage
}

func NewAnalyticsStorage(rds *redis.Client) *AnalyticsStorage {
	return &AnalyticsStorage{jsonStorage{redis: rds, ttl: realTimeTTL}}
}

func (a *AnalyticsStorage) Get(ctx context.Context, v any) bool {
	return a.get(ctx, keyPrefix+"analytics:realtime", v)
}

func (a *AnalyticsStorage) Set(ctx context.Context, v any) {
	a.set(ctx, keyPrefix+"analytics:realtime", v)
}
