package types

import "HotCams/models"

type StartStreamRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	TipGoal     float64  `json:"tipGoal" binding:"gte=0"`
}

// StartStreamResponse 推流信息只返回给主播本人
type StartStreamResponse struct {
	*models.Stream
	StreamKey string `json:"streamKey"`
	RtmpURL   string `json:"rtmpUrl"`
}

type ViewerResponse struct {
	StreamID       uint64 `json:"streamId"`
	CurrentViewers int64  `json:"currentViewers"`
}

type RecordTipRequest struct {
	StreamID uint64  `json:"streamId" binding:"required"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" binding:"required"`
	Chain    string  `json:"chain"`
	TxHash   string  `json:"txHash"`
	Message  string  `json:"message" binding:"max=255"`
}

type SendChatRequest struct {
	Message string `json:"message"`
}

type FollowResponse struct {
	Following      bool  `json:"following"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}
