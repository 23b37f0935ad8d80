package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// NonceStorage 钱包登录签名防重放
type NonceStorage struct {
	redis *redis.Client
}

func NewNonceStorage(rds *redis.Client) *NonceStorage {
	return &NonceStorage{rds}
}

// Claim 首次使用返回 true；未启用 redis 时不做校验
func (n *NonceStorage) Claim(ctx context.Context, signature string, ttl time.Duration) (bool, error) {
	if n.redis == nil {
		return true, nil
	}
	return n.redis.SetNX(ctx, n.name(signature), 1, ttl).Result()
}

func (n *NonceStorage) name(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return keyPrefix + "auth:sig:" + hex.EncodeToString(sum[:])
}
