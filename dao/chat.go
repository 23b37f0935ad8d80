package dao

import (
	"HotCams/models"
	"context"

	"gorm.io/gorm"
)

type ChatMessages struct {
	Repo[models.ChatMessage]
}

func NewChatMessages(db *gorm.DB) *ChatMessages {
	return &ChatMessages{
		Repo: NewRepo[models.ChatMessage](db),
	}
}

// ListRecent 最近 limit 条，按时间正序返回
func (c *ChatMessages) ListRecent(ctx context.Context, streamID uint64, limit int) ([]*models.ChatMessage, error) {
	var msgs []*models.ChatMessage
	err := c.Db.WithContext(ctx).
		Where("stream_id = ?", streamID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
