package service

import (
	"HotCams/config"
	"HotCams/dao"
	"HotCams/dao/cache"
	"HotCams/pkg/database"
	"HotCams/pkg/mq"
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	conf *config.Config
	db   *gorm.DB
	hub  *socket.Hub

	users      *dao.Users
	streamsDAO *dao.Streams
	tipsDAO    *dao.Tips

	userSvc      *UserService
	performerSvc *PerformerService
	analyticsSvc *AnalyticsService
	streamSvc    *StreamService
	tipSvc       *TipService
	chatSvc      *ChatService
	followSvc    *FollowService
	authSvc      *AuthService
}

func testConfig() *config.Config {
	conf, err := config.Parse([]byte("app:\n  mode: real\njwt:\n  secret: test-secret\n"))
	if err != nil {
		panic(err)
	}
	return conf
}

// newEnv rds 为 nil 时缓存全部关闭
func newEnv(t *testing.T, rds *redis.Client) *testEnv {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	conf := testConfig()
	hub := socket.NewHub()
	users := dao.NewUsers(db)
	performers := dao.NewPerformers(db)
	streams := dao.NewStreams(db)
	tips := dao.NewTips(db)
	follows := dao.NewFollows(db)
	analytics := dao.NewAnalyticsDAO(db)
	mock := NewMockStreamStore()

	profiles := NewProfileStore(db, users, follows)
	store := NewStreamStore(db, mock, users, performers, streams, tips, follows, analytics)
	performerCache := cache.NewPerformerStorage(rds)

	e := &testEnv{
		conf:       conf,
		db:         db,
		hub:        hub,
		users:      users,
		streamsDAO: streams,
		tipsDAO:    tips,
	}
	e.userSvc = &UserService{Store: profiles}
	e.performerSvc = &PerformerService{Store: store, Fallback: mock, Cache: performerCache}
	e.analyticsSvc = &AnalyticsService{Conf: conf, Store: store, Fallback: mock, Cache: cache.NewAnalyticsStorage(rds)}
	e.streamSvc = &StreamService{
		UsersDAO:       users,
		StreamsDAO:     streams,
		PerformersDAO:  performers,
		Presence:       cache.NewPresenceStorage(rds),
		PerformerCache: performerCache,
		Hub:            hub,
		Publisher:      mq.NopPublisher{},
	}
	e.tipSvc = &TipService{
		StreamsDAO: streams,
		TipsDAO:    tips,
		Verifier:   NewTipVerifier(conf, hub, mq.NopPublisher{}),
		Hub:        hub,
		Publisher:  mq.NopPublisher{},
	}
	e.chatSvc = &ChatService{
		Conf:       conf,
		UsersDAO:   users,
		StreamsDAO: streams,
		TipsDAO:    tips,
		ChatDAO:    dao.NewChatMessages(db),
		Hub:        hub,
	}
	e.followSvc = &FollowService{FollowDAO: follows, UserDAO: users}
	e.authSvc = &AuthService{Conf: conf, Store: profiles, Nonces: cache.NewNonceStorage(rds)}
	return e
}

// 测试用地址，格式合法
const (
	ethAddr1 = "0x52908400098527886e0f7030069857d2e4169ee7"
	ethAddr2 = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
	ethAddr3 = "0xde709f2102306220921060314715629080e2fb77"
	solAddr1 = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

func adultDOB() string {
	return time.Now().UTC().AddDate(-25, 0, 0).Format(time.DateOnly)
}

func viewerReq(username, eth string) *types.CreateUserRequest {
	return &types.CreateUserRequest{
		Username:    username,
		DateOfBirth: adultDOB(),
		Role:        "VIEWER",
		EthAddress:  eth,
	}
}

func performerReq(username, eth, category string) *types.CreateUserRequest {
	return &types.CreateUserRequest{
		Username:    username,
		DateOfBirth: adultDOB(),
		Role:        "PERFORMER",
		EthAddress:  eth,
		Location:    "Lisbon",
		PerformerProfile: &types.PerformerProfileRequest{
			StageName: username + " live",
			Gender:    "FEMALE",
			Category:  category,
			Tags:      []string{"music", "chat"},
		},
	}
}

func mustCreate(t *testing.T, e *testEnv, req *types.CreateUserRequest) uint64 {
	t.Helper()
	u, err := e.userSvc.Create(context.Background(), req)
	require.NoError(t, err)
	return u.ID
}
