package models

import (
	"time"

	"gorm.io/datatypes"
)

// GlobalScope 全站汇总行的 user_id
const GlobalScope uint64 = 0

// Analytics 每日汇总，(date, user_id) 唯一
type Analytics struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Date          datatypes.Date `gorm:"column:date;not null;uniqueIndex:uk_analytics_scope" json:"date"`
	UserID        uint64         `gorm:"column:user_id;not null;default:0;uniqueIndex:uk_analytics_scope" json:"userId,omitempty"`
	TotalViews    int64          `gorm:"column:total_views;not null;default:0" json:"views"`
	UniqueViewers int64          `gorm:"column:unique_viewers;not null;default:0" json:"uniqueViewers"`
	TotalTips     float64        `gorm:"column:total_tips;not null;default:0" json:"tips"`
	NewFollowers  int64          `gorm:"column:new_followers;not null;default:0" json:"newFollowers"`
	NewUsers      int64          `gorm:"column:new_users;not null;default:0" json:"newUsers"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"-"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"-"`
}

func (Analytics) TableName() string {
	return "analytics"
}

// Day 截断到 UTC 零点
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
