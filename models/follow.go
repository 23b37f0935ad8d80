package models

import (
	"time"
)

type Follow struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FollowerID  uint64    `gorm:"column:follower_id;not null;uniqueIndex:uk_follow_pair" json:"followerId"`         // 关注人
	FollowingID uint64    `gorm:"column:following_id;not null;uniqueIndex:uk_follow_pair;index" json:"followingId"` // 被关注人
	Status      int       `gorm:"column:status;not null;default:1" json:"status"`                                   // 1:关注中 0:已取消
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (Follow) TableName() string {
	return "follows"
}

const (
	FollowStatusCanceled = 0
	FollowStatusActive   = 1
)
