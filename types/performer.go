package types

import (
	"HotCams/models"
	"time"
)

const (
	DefaultPerformerLimit = 50
	MaxPerformerLimit     = 100
)

type PerformerQuery struct {
	Category string `form:"category"`
	Live     string `form:"live"`
	Search   string `form:"search"`
	Limit    string `form:"limit"`
}

type StreamSummary struct {
	ID             uint64          `json:"id"`
	Title          string          `json:"title"`
	Category       models.Category `json:"category"`
	IsLive         bool            `json:"isLive"`
	CurrentViewers int64           `json:"currentViewers"`
	TotalViews     int64           `json:"totalViews"`
	TotalTips      float64         `json:"totalTips"`
	TipGoal        float64         `json:"tipGoal"`
	PlaybackID     string          `json:"playbackId"`
	StartedAt      *time.Time      `json:"startedAt,omitempty"`
}

// PerformerSummary 主播列表项
type PerformerSummary struct {
	ID               uint64                   `json:"id"`
	Username         string                   `json:"username"`
	DisplayName      string                   `json:"displayName"`
	WalletAddress    string                   `json:"walletAddress"`
	Role             models.Role              `json:"role"`
	IsOnline         bool                     `json:"isOnline"`
	IsVerified       bool                     `json:"isVerified"`
	PerformerProfile *models.PerformerProfile `json:"performerProfile"`
	Stream           *StreamSummary           `json:"stream"`
	FollowerCount    int64                    `json:"followerCount"`
}

func NewStreamSummary(s *models.Stream) *StreamSummary {
	if s == nil {
		return nil
	}
	return &StreamSummary{
		ID:             s.ID,
		Title:          s.Title,
		Category:       s.Category,
		IsLive:         s.IsLive,
		CurrentViewers: s.CurrentViewers,
		TotalViews:     s.TotalViews,
		TotalTips:      s.TotalTips,
		TipGoal:        s.TipGoal,
		PlaybackID:     s.PlaybackID,
		StartedAt:      s.StartedAt,
	}
}
