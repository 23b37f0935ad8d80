package client

import (
	"HotCams/config"
	"HotCams/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 未配置 redis 时返回 nil，缓存层自动降级
func NewRedisClient(conf *config.Config) *redis.Client {
	if !conf.Redis.Enabled() {
		log.L.Info("redis disabled")
		return nil
	}
	addr := conf.Redis.Address
	if conf.Redis.Port != 0 {
		addr = fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.L.Warn("connect redis error, cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	log.L.Info("redis client success")
	return client
}
