package service

import (
	"HotCams/dao"
	"HotCams/pkg/log"

	"gorm.io/gorm"
)

// NewProfileStore 没有可用数据库时使用内存存储
func NewProfileStore(db *gorm.DB, users *dao.Users, follows *dao.Follows) ProfileStore {
	if db == nil {
		log.L.Info("profile store: memory")
		return NewMemoryProfileStore()
	}
	return &DBProfileStore{Users: users, Follows: follows}
}

// NewStreamStore 没有可用数据库时返回固定的 mock 数据
func NewStreamStore(
	db *gorm.DB,
	mock *MockStreamStore,
	users *dao.Users,
	performers *dao.Performers,
	streams *dao.Streams,
	tips *dao.Tips,
	follows *dao.Follows,
	analytics *dao.AnalyticsDAO,
) StreamStore {
	if db == nil {
		log.L.Info("stream store: mock")
		return mock
	}
	return &DBStreamStore{
		Users:      users,
		Performers: performers,
		Streams:    streams,
		Tips:       tips,
		Follows:    follows,
		Analytics:  analytics,
	}
}
