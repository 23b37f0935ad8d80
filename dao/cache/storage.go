package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"HotCams/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "hotcams:"

// jsonStorage JSON 序列化的 KV 缓存，client 为 nil 时所有读取都视为未命中
type jsonStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func (s *jsonStorage) get(ctx context.Context, key string, v any) bool {
	if s.redis == nil {
		return false
	}
	b, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.L.Warn("cache get", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.L.Warn("cache decode", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *jsonStorage) set(ctx context.Context, key string, v any) {
	if s.redis == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.L.Warn("cache encode", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.redis.Set(ctx, key, b, s.ttl).Err(); err != nil {
		log.L.Warn("cache set", zap.String("key", key), zap.Error(err))
	}
}

func (s *jsonStorage) del(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
}
