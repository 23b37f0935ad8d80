package service

import (
	"HotCams/dao"
	"HotCams/dao/cache"
	"HotCams/models"
	"HotCams/pkg/hashid"
	"HotCams/pkg/log"
	"HotCams/pkg/mq"
	"HotCams/pkg/snowflake"
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	RtmpIngestURL   = "rtmp://rtmp.livepeer.com/live"
	streamKeyPrefix = "sk_"
	liveListLimit   = 100
)

type IStreamService interface {
	Start(ctx context.Context, userID uint64, req *types.StartStreamRequest) (*types.StartStreamResponse, error)
	Stop(ctx context.Context, userID, streamID uint64) (*models.Stream, error)
	Get(ctx context.Context, streamID uint64) (*models.Stream, error)
	ListLive(ctx context.Context) ([]*models.Stream, error)
	Join(ctx context.Context, streamID uint64, viewer string) (*types.ViewerResponse, error)
	Leave(ctx context.Context, streamID uint64, viewer string) (*types.ViewerResponse, error)
}

type StreamService struct {
	UsersDAO       *dao.Users
	StreamsDAO     *dao.Streams
	PerformersDAO  *dao.Performers
	Presence       *cache.PresenceStorage
	PerformerCache *cache.PerformerStorage
	Hub            *socket.Hub
	Publisher      mq.Publisher
}

var _ IStreamService = (*StreamService)(nil)

func NewStreamKey() string {
	return streamKeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Start 开播；已有在播直播间时先结束旧的
func (s *StreamService) Start(ctx context.Context, userID uint64, req *types.StartStreamRequest) (*types.StartStreamResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, types.ErrTitleRequired
	}
	user, err := s.UsersDAO.FindWithProfile(ctx, userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != models.RolePerformer || user.PerformerProfile == nil {
		return nil, types.ErrNotPerformer
	}
	if !user.CanStream {
		return nil, types.ErrCannotStream
	}

	category := user.PerformerProfile.Category
	if req.Category != "" {
		c, ok := models.ParseCategory(req.Category)
		if !ok {
			return nil, types.ErrInvalidCategory
		}
		category = c
	}

	if prev, err := s.StreamsDAO.FindLiveByUser(ctx, userID); err == nil {
		if _, err := s.end(ctx, prev); err != nil {
			return nil, fmt.Errorf("end previous stream: %w", err)
		}
	} else if !dao.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	stream := &models.Stream{
		ID:          snowflake.GenUint64(),
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Category:    category,
		Tags:        datatypes.JSONSlice[string](nonNil(req.Tags)),
		IsLive:      true,
		TipGoal:     req.TipGoal,
		StreamKey:   NewStreamKey(),
		RtmpURL:     RtmpIngestURL,
		StartedAt:   &now,
	}
	if stream.TipGoal == 0 {
		stream.TipGoal = user.PerformerProfile.TipGoal
	}
	if stream.PlaybackID, err = hashid.Encode(stream.ID); err != nil {
		return nil, fmt.Errorf("encode playback id: %w", err)
	}
	if err := s.StreamsDAO.Create(ctx, stream); err != nil {
		return nil, err
	}
	if err := s.UsersDAO.SetOnline(ctx, userID, true); err != nil {
		log.L.Warn("set online failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
	s.PerformerCache.Invalidate(ctx)
	s.publish(ctx, mq.TagStreamLive, stream)

	return &types.StartStreamResponse{Stream: stream, StreamKey: stream.StreamKey, RtmpURL: stream.RtmpURL}, nil
}

// Stop 仅主播本人可下播，重复调用不报错
func (s *StreamService) Stop(ctx context.Context, userID, streamID uint64) (*models.Stream, error) {
	stream, err := s.Get(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if stream.UserID != userID {
		return nil, types.ErrForbidden
	}
	if _, err := s.end(ctx, stream); err != nil {
		return nil, err
	}
	return s.Get(ctx, streamID)
}

func (s *StreamService) end(ctx context.Context, stream *models.Stream) (bool, error) {
	changed, err := s.StreamsDAO.End(ctx, stream.ID, time.Now().UTC())
	if err != nil || !changed {
		return changed, err
	}
	s.Hub.Publish(socket.Event{Type: socket.EventStreamEnded, StreamID: stream.ID})
	s.Hub.CloseStream(stream.ID)
	if err := s.Presence.Clear(ctx, stream.ID); err != nil {
		log.L.Warn("clear presence failed", zap.Uint64("stream_id", stream.ID), zap.Error(err))
	}
	if err := s.UsersDAO.SetOnline(ctx, stream.UserID, false); err != nil {
		log.L.Warn("set offline failed", zap.Uint64("user_id", stream.UserID), zap.Error(err))
	}
	s.PerformerCache.Invalidate(ctx)
	s.publish(ctx, mq.TagStreamEnded, stream)
	return true, nil
}

func (s *StreamService) publish(ctx context.Context, tag string, stream *models.Stream) {
	if err := s.Publisher.Publish(ctx, tag, fmt.Sprint(stream.ID), stream); err != nil {
		log.L.Warn("publish stream event failed", zap.String("tag", tag), zap.Error(err))
	}
}

func (s *StreamService) Get(ctx context.Context, streamID uint64) (*models.Stream, error) {
	stream, err := s.StreamsDAO.FindByID(ctx, streamID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrStreamNotFound
		}
		return nil, err
	}
	return stream, nil
}

func (s *StreamService) ListLive(ctx context.Context) ([]*models.Stream, error) {
	return s.StreamsDAO.ListLive(ctx, liveListLimit)
}

func (s *StreamService) liveStream(ctx context.Context, streamID uint64) (*models.Stream, error) {
	stream, err := s.Get(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if !stream.IsLive {
		return nil, types.ErrStreamNotLive
	}
	return stream, nil
}

// Join 同一观众重复进入只计一次
func (s *StreamService) Join(ctx context.Context, streamID uint64, viewer string) (*types.ViewerResponse, error) {
	stream, err := s.liveStream(ctx, streamID)
	if err != nil {
		return nil, err
	}
	first, err := s.Presence.Join(ctx, streamID, viewer)
	if err != nil {
		log.L.Warn("presence join failed", zap.Error(err))
		first = true
	}
	if first {
		if err := s.StreamsDAO.AdjustViewers(ctx, streamID, 1); err != nil {
			return nil, err
		}
		if err := s.PerformersDAO.AddViews(ctx, stream.UserID, 1); err != nil {
			log.L.Warn("add performer views failed", zap.Error(err))
		}
	}
	return s.viewers(ctx, streamID)
}

func (s *StreamService) Leave(ctx context.Context, streamID uint64, viewer string) (*types.ViewerResponse, error) {
	if _, err := s.liveStream(ctx, streamID); err != nil {
		if errors.Is(err, types.ErrStreamNotLive) {
			return &types.ViewerResponse{StreamID: streamID}, nil
		}
		return nil, err
	}
	present, err := s.Presence.Leave(ctx, streamID, viewer)
	if err != nil {
		log.L.Warn("presence leave failed", zap.Error(err))
		present = true
	}
	if present {
		if err := s.StreamsDAO.AdjustViewers(ctx, streamID, -1); err != nil {
			return nil, err
		}
	}
	return s.viewers(ctx, streamID)
}

func (s *StreamService) viewers(ctx context.Context, streamID uint64) (*types.ViewerResponse, error) {
	stream, err := s.Get(ctx, streamID)
	if err != nil {
		return nil, err
	}
	resp := &types.ViewerResponse{StreamID: streamID, CurrentViewers: stream.CurrentViewers}
	s.Hub.Publish(socket.Event{Type: socket.EventViewers, StreamID: streamID, Data: resp})
	return resp, nil
}
