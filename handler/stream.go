package handler

import (
	"HotCams/config"
	"HotCams/middleware"
	"HotCams/pkg/context"
	"HotCams/pkg/log"
	"HotCams/pkg/response"
	"HotCams/pkg/socket"
	"HotCams/service"
	"HotCams/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 每个用户每分钟可发送的聊天条数
const chatPerMinute = 30

type Stream struct {
	Config        *config.Config
	Backend       *service.Backend
	StreamService service.IStreamService
	TipService    service.ITipService
	ChatService   service.IChatService
	Hub           *socket.Hub
}

func (s *Stream) RegisterRouter(r gin.IRouter) {
	auth := authorize(s.Config)
	chatLimit := middleware.RateLimit(middleware.NewRateLimiter(chatPerMinute, 5))

	g := r.Group("/streams", middleware.RequireDatabase(s.Backend.Database))
	g.POST("", auth, context.Wrap(s.Start))
	g.GET("", context.Wrap(s.ListLive))
	g.GET("/:id", context.Wrap(s.Get))
	g.POST("/:id/stop", auth, context.Wrap(s.Stop))
	g.POST("/:id/join", context.Wrap(s.Join))
	g.POST("/:id/leave", context.Wrap(s.Leave))
	g.GET("/:id/tips", context.Wrap(s.ListTips))
	g.GET("/:id/chat", context.Wrap(s.ListChat))
	g.POST("/:id/chat", auth, chatLimit, context.Wrap(s.SendChat))
	g.GET("/:id/ws", context.Wrap(s.Subscribe))
}

// Start 开播，返回推流地址与 stream key
func (s *Stream) Start(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	var req types.StartStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	resp, err := s.StreamService.Start(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, resp)
	return nil
}

func (s *Stream) Stop(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	stream, err := s.StreamService.Stop(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, stream)
	return nil
}

// ListLive 目前只支持查询在播列表
func (s *Stream) ListLive(c *gin.Context) error {
	if live := c.Query("live"); live != "" {
		if ok, err := strconv.ParseBool(live); err != nil || !ok {
			return types.ErrInvalidQuery
		}
	}
	streams, err := s.StreamService.ListLive(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, streams)
	return nil
}

func (s *Stream) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	stream, err := s.StreamService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, stream)
	return nil
}

// viewerKey 客户端提供 X-Viewer-ID 时按其去重，否则按 IP
func viewerKey(c *gin.Context) string {
	if id := c.GetHeader("X-Viewer-ID"); id != "" {
		return "v:" + id
	}
	return "ip:" + c.ClientIP()
}

func (s *Stream) Join(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := s.StreamService.Join(c.Request.Context(), id, viewerKey(c))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (s *Stream) Leave(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := s.StreamService.Leave(c.Request.Context(), id, viewerKey(c))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (s *Stream) ListTips(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tips, err := s.TipService.ListByStream(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, tips)
	return nil
}

func (s *Stream) ListChat(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	msgs, err := s.ChatService.List(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, msgs)
	return nil
}

func (s *Stream) SendChat(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	msg, err := s.ChatService.Send(c.Request.Context(), uid, id, req.Message)
	if err != nil {
		return err
	}
	response.Created(c, msg)
	return nil
}

// Subscribe 直播间事件推送：chat、tip、viewers、stream.ended
func (s *Stream) Subscribe(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	// 先订阅再查状态：此后下播一定会经 CloseStream 关掉这个订阅
	sub := s.Hub.Subscribe(id)
	defer s.Hub.Unsubscribe(sub)

	stream, err := s.StreamService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	if !stream.IsLive {
		return types.ErrStreamNotLive
	}

	conn, err := socket.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已写回错误响应
		log.L.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}

	if err := socket.Serve(c.Request.Context(), conn, sub); err != nil {
		log.L.Debug("websocket closed", zap.Uint64("stream_id", id), zap.Error(err))
	}
	return nil
}
