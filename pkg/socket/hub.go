package socket

import (
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"

	"HotCams/pkg/log"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

const (
	EventChat        = "chat"
	EventTip         = "tip"
	EventViewers     = "viewers"
	EventStreamEnded = "stream.ended"
	EventTipVerified = "tip.verified"
	EventTipRejected = "tip.rejected"
)

// 每个订阅者的发送缓冲，写满后丢弃新消息
const sendBuffer = 64

type Event struct {
	Type     string `json:"type"`
	StreamID uint64 `json:"streamId,string"`
	Data     any    `json:"data,omitempty"`
}

// Subscriber 单个直播间订阅者
type Subscriber struct {
	ID       string
	StreamID uint64
	C        chan []byte

	once    sync.Once
	dropped atomic.Int64
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.C) })
}

// Dropped 因缓冲写满被丢弃的消息数
func (s *Subscriber) Dropped() int64 {
	return s.dropped.Load()
}

type room struct {
	subs cmap.ConcurrentMap[string, *Subscriber]
}

// Hub 直播间事件广播，stream id -> 订阅者集合
type Hub struct {
	rooms cmap.ConcurrentMap[string, *room]
}

func NewHub() *Hub {
	return &Hub{rooms: cmap.New[*room]()}
}

func roomKey(streamID uint64) string {
	return strconv.FormatUint(streamID, 10)
}

func (h *Hub) Subscribe(streamID uint64) *Subscriber {
	sub := &Subscriber{
		ID:       uuid.NewString(),
		StreamID: streamID,
		C:        make(chan []byte, sendBuffer),
	}
	// 建房间与加入在同一把分片锁内完成，Unsubscribe 的空房间回收不会插进来
	h.rooms.Upsert(roomKey(streamID), nil, func(exist bool, r *room, _ *room) *room {
		if !exist {
			r = &room{subs: cmap.New[*Subscriber]()}
		}
		r.subs.Set(sub.ID, sub)
		return r
	})
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	key := roomKey(sub.StreamID)
	if r, ok := h.rooms.Get(key); ok {
		r.subs.Remove(sub.ID)
		h.rooms.RemoveCb(key, func(_ string, v *room, exists bool) bool {
			return exists && v.subs.Count() == 0
		})
	}
	sub.close()
}

// Publish 非阻塞投递，返回送达的订阅者数量
func (h *Hub) Publish(ev Event) int {
	r, ok := h.rooms.Get(roomKey(ev.StreamID))
	if !ok {
		return 0
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.L.Warn("marshal event", zap.String("type", ev.Type), zap.Error(err))
		return 0
	}

	delivered := 0
	for item := range r.subs.IterBuffered() {
		if h.send(item.Val, body) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) send(sub *Subscriber, body []byte) (ok bool) {
	// 订阅者可能在遍历期间被关闭
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case sub.C <- body:
		return true
	default:
		sub.dropped.Add(1)
		return false
	}
}

// Count 当前直播间的连接数
func (h *Hub) Count(streamID uint64) int {
	r, ok := h.rooms.Get(roomKey(streamID))
	if !ok {
		return 0
	}
	return r.subs.Count()
}

// CloseStream 下播时断开该直播间的全部订阅
func (h *Hub) CloseStream(streamID uint64) {
	key := roomKey(streamID)
	r, ok := h.rooms.Pop(key)
	if !ok {
		return
	}
	for item := range r.subs.IterBuffered() {
		item.Val.close()
	}
}
