package models

import "time"

type ChatMessage struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"userId"`
	StreamID  uint64    `gorm:"column:stream_id;not null;index:idx_stream_created" json:"streamId"`
	Message   string    `gorm:"column:message;type:varchar(500);not null" json:"message"`
	IsVip     bool      `gorm:"column:is_vip;not null;default:false" json:"isVip"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_stream_created" json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
