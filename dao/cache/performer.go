package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const performerListTTL = 10 * time.Second

// PerformerStorage 主播列表缓存，按筛选条件区分
type PerformerStorage struct {
	jsonStorage
}

func NewPerformerStorage(rds *redis.Client) *PerformerStorage {
	return &PerformerStorage{jsonStorage{redis: rds, ttl: performerListTTL}}
}

func (p *PerformerStorage) Get(ctx context.Context, category string, live bool, search string, limit int, v any) bool {
	return p.get(ctx, p.name(category, live, search, limit), v)
}

func (p *PerformerStorage) Set(ctx context.Context, category string, live bool, search string, limit int, v any) {
	p.set(ctx, p.name(category, live, search, limit), v)
}

// Invalidate 开播、下播后清空列表缓存
func (p *PerformerStorage) Invalidate(ctx context.Context) {
	p.del(ctx, keyPrefix+"performers:*")
}

func (p *PerformerStorage) name(category string, live bool, search string, limit int) string {
	return fmt.Sprintf("%sperformers:%s:%t:%d:%s", keyPrefix,
		strings.ToUpper(category), live, limit, strings.ToLower(strings.TrimSpace(search)))
}
