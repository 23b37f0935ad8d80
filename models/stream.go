package models

import (
	"time"

	"gorm.io/datatypes"
)

type Stream struct {
	ID             uint64                      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID         uint64                      `gorm:"column:user_id;not null;index:idx_user_live" json:"userId"`
	Title          string                      `gorm:"column:title;type:varchar(128);not null" json:"title"`
	Description    string                      `gorm:"column:description;type:text" json:"description,omitempty"`
	Category       Category                    `gorm:"column:category;type:varchar(32)" json:"category"`
	Tags           datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	IsLive         bool                        `gorm:"column:is_live;not null;default:false;index:idx_user_live" json:"isLive"`
	CurrentViewers int64                       `gorm:"column:current_viewers;not null;default:0" json:"currentViewers"`
	TotalViews     int64                       `gorm:"column:total_views;not null;default:0" json:"totalViews"`
	TotalTips      float64                     `gorm:"column:total_tips;not null;default:0" json:"totalTips"`
	TipGoal        float64                     `gorm:"column:tip_goal;not null;default:0" json:"tipGoal"`
	StreamKey      string                      `gorm:"column:stream_key;type:varchar(64);uniqueIndex" json:"-"`
	PlaybackID     string                      `gorm:"column:playback_id;type:varchar(64);index" json:"playbackId"`
	RtmpURL        string                      `gorm:"column:rtmp_url;type:varchar(256)" json:"-"`
	StartedAt      *time.Time                  `gorm:"column:started_at" json:"startedAt,omitempty"`
	EndedAt        *time.Time                  `gorm:"column:ended_at" json:"endedAt,omitempty"`
	CreatedAt      time.Time                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Stream) TableName() string {
	return "streams"
}
