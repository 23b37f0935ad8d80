package service

import (
	"HotCams/config"
	"HotCams/dao"
	"HotCams/models"
	"HotCams/pkg/snowflake"
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxChatLength  = 500
	chatListLimit  = 50
	defaultVipTips = 0.05
)

type IChatService interface {
	Send(ctx context.Context, userID, streamID uint64, text string) (*ChatView, error)
	List(ctx context.Context, streamID uint64) ([]*models.ChatMessage, error)
}

type ChatService struct {
	Conf       *config.Config
	UsersDAO   *dao.Users
	StreamsDAO *dao.Streams
	TipsDAO    *dao.Tips
	ChatDAO    *dao.ChatMessages
	Hub        *socket.Hub
}

var _ IChatService = (*ChatService)(nil)

// ChatView 广播给直播间的聊天消息
type ChatView struct {
	*models.ChatMessage
	Username string `json:"username"`
}

func (s *ChatService) vipThreshold() float64 {
	if s.Conf == nil || s.Conf.Analytics == nil || s.Conf.Analytics.VipTipThreshold <= 0 {
		return defaultVipTips
	}
	return s.Conf.Analytics.VipTipThreshold
}

func (s *ChatService) Send(ctx context.Context, userID, streamID uint64, text string) (*ChatView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.ErrMessageRequired
	}
	if utf8.RuneCountInString(text) > MaxChatLength {
		return nil, types.ErrMessageTooLong
	}
	stream, err := s.StreamsDAO.FindByID(ctx, streamID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrStreamNotFound
		}
		return nil, err
	}
	if !stream.IsLive {
		return nil, types.ErrStreamNotLive
	}
	user, err := s.UsersDAO.FindByID(ctx, userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, err
	}
	tipped, err := s.TipsDAO.SumByUserOnStream(ctx, userID, streamID)
	if err != nil {
		return nil, fmt.Errorf("sum tips: %w", err)
	}

	msg := &models.ChatMessage{
		ID:       snowflake.GenUint64(),
		UserID:   userID,
		StreamID: streamID,
		Message:  text,
		IsVip:    tipped >= s.vipThreshold(),
	}
	if err := s.ChatDAO.Create(ctx, msg); err != nil {
		return nil, err
	}
	view := &ChatView{ChatMessage: msg, Username: user.Username}
	s.Hub.Publish(socket.Event{Type: socket.EventChat, StreamID: streamID, Data: view})
	return view, nil
}

func (s *ChatService) List(ctx context.Context, streamID uint64) ([]*models.ChatMessage, error) {
	if exist, err := s.StreamsDAO.IsExist(ctx, "id = ?", streamID); err != nil {
		return nil, err
	} else if !exist {
		return nil, types.ErrStreamNotFound
	}
	return s.ChatDAO.ListRecent(ctx, streamID, chatListLimit)
}
