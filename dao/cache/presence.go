package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 直播间观众集合的过期时间，防止异常下播后残留
const presenceExpire = 12 * time.Hour

// PresenceStorage 直播间观众集合
type PresenceStorage struct {
	redis *redis.Client
}

func NewPresenceStorage(rds *redis.Client) *PresenceStorage {
	return &PresenceStorage{rds}
}

func (p *PresenceStorage) Enabled() bool {
	return p.redis != nil
}

// Join 返回该观众是否是首次进入
func (p *PresenceStorage) Join(ctx context.Context, streamID uint64, viewer string) (bool, error) {
	if p.redis == nil {
		return true, nil
	}
	name := p.name(streamID)
	pipe := p.redis.TxPipeline()
	added := pipe.SAdd(ctx, name, viewer)
	pipe.Expire(ctx, name, presenceExpire)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return added.Val() > 0, nil
}

// Leave 返回该观众此前是否在直播间
func (p *PresenceStorage) Leave(ctx context.Context, streamID uint64, viewer string) (bool, error) {
	if p.redis == nil {
		return true, nil
	}
	n, err := p.redis.SRem(ctx, p.name(streamID), viewer).Result()
	return n > 0, err
}

func (p *PresenceStorage) Count(ctx context.Context, streamID uint64) (int64, error) {
	if p.redis == nil {
		return 0, nil
	}
	return p.redis.SCard(ctx, p.name(streamID)).Result()
}

func (p *PresenceStorage) Clear(ctx context.Context, streamID uint64) error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Del(ctx, p.name(streamID)).Err()
}

func (p *PresenceStorage) name(streamID uint64) string {
	return fmt.Sprintf("%sstream:%d:viewers", keyPrefix, streamID)
}
