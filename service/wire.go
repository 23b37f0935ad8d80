//go:build wireinject

package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewProfileStore,
	NewStreamStore,
	NewMockStreamStore,
	NewTipVerifier,
	NewBackend,

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(PerformerService), "*"),
	wire.Bind(new(IPerformerService), new(*PerformerService)),

	wire.Struct(new(AnalyticsService), "*"),
	wire.Bind(new(IAnalyticsService), new(*AnalyticsService)),

	wire.Struct(new(StreamService), "*"),
	wire.Bind(new(IStreamService), new(*StreamService)),

	wire.Struct(new(TipService), "*"),
	wire.Bind(new(ITipService), new(*TipService)),

	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),

	wire.Struct(new(FollowService), "*"),
	wire.Bind(new(IFollowService), new(*FollowService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(MediaService), "*"),
	wire.Bind(new(IMediaService), new(*MediaService)),
)
