//go:build wireinject
// +build wireinject

package main

import (
	"HotCams/config"
	"HotCams/dao"
	"HotCams/dao/cache"
	"HotCams/handler"
	"HotCams/pkg/client"
	"HotCams/pkg/database"
	"HotCams/pkg/mq"
	"HotCams/pkg/oss"
	"HotCams/pkg/server"
	"HotCams/pkg/socket"
	"HotCams/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		mq.NewPublisher,
		oss.NewStorage,
		socket.NewHub,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Performer), "*"),
		wire.Struct(new(handler.Analytics), "*"),
		wire.Struct(new(handler.Stream), "*"),
		wire.Struct(new(handler.Tip), "*"),
		wire.Struct(new(handler.Follow), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
