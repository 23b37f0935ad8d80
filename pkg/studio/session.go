package studio

import (
	"HotCams/pkg/apiclient"
	"HotCams/pkg/log"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	DefaultTick     = time.Second
	DefaultRtmpURL  = "rtmp://rtmp.livepeer.com/live"
	maxChatLines    = 20
	chatProbability = 0.3
	vipProbability  = 0.2
)

var (
	ErrTitleRequired = errors.New("please enter a stream title")
	ErrNotLive       = errors.New("stream is not live")
)

var chatSamples = []string{
	"Hey! 👋",
	"You look amazing today!",
	"Can you dance for us?",
	"Love your outfit! 💕",
	"Tip sent! 💰",
	"Hello from Germany! 🇩🇪",
	"Can you say hi to me?",
}

// Broadcaster 在服务端登记直播间，*apiclient.Client 满足
type Broadcaster interface {
	StartStream(ctx context.Context, req *types.StartStreamRequest) (*types.StartStreamResponse, error)
	StopStream(ctx context.Context, streamID uint64) error
}

var _ Broadcaster = (*apiclient.Client)(nil)

type LiveInfo struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	TipGoal     float64
}

// LiveStream 推流凭据；未接入服务端时为本地生成的占位值
type LiveStream struct {
	ID         uint64
	StreamKey  string
	RtmpURL    string
	PlaybackID string
	StartedAt  time.Time
}

type ChatLine struct {
	User    string
	Message string
	At      time.Time
	IsVip   bool
}

type Metrics struct {
	Duration time.Duration
	Viewers  int64
	Tips     float64
	Chat     []ChatLine
}

type Session struct {
	devices     MediaDevices
	broadcaster Broadcaster
	tick        time.Duration
	now         func() time.Time

	mu      sync.Mutex
	rnd     *rand.Rand
	tracks  []Track
	live    *LiveStream
	metrics Metrics
	cancel  context.CancelFunc
	tasks   *conc.WaitGroup
}

type Option func(*Session)

func WithBroadcaster(b Broadcaster) Option {
	return func(s *Session) { s.broadcaster = b }
}

func WithTick(d time.Duration) Option {
	return func(s *Session) { s.tick = d }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

func NewSession(devices MediaDevices, opts ...Option) *Session {
	s := &Session{
		devices: devices,
		tick:    DefaultTick,
		now:     time.Now,
		rnd:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open 采集设备；失败时已拿到的 track 全部释放
func (s *Session) Open(ctx context.Context, c Constraints) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(ctx, c)
}

func (s *Session) openLocked(ctx context.Context, c Constraints) error {
	if len(s.tracks) > 0 {
		return nil
	}
	tracks, err := s.devices.GetUserMedia(ctx, c)
	if err != nil {
		for _, t := range tracks {
			t.Stop()
		}
		return err
	}
	s.tracks = tracks
	return nil
}

// GoLive 登记直播间并启动模拟任务
func (s *Session) GoLive(ctx context.Context, info LiveInfo) (*LiveStream, error) {
	if info.Title == "" {
		return nil, ErrTitleRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		live := *s.live
		return &live, nil
	}
	opened := len(s.tracks) == 0
	if err := s.openLocked(ctx, DefaultConstraints); err != nil {
		return nil, err
	}

	live, err := s.register(ctx, info)
	if err != nil {
		// 本次打开的设备随失败一起释放
		if opened {
			for _, t := range s.tracks {
				t.Stop()
			}
			s.tracks = nil
		}
		return nil, err
	}
	s.live = live
	s.metrics = Metrics{Viewers: 10 + s.rnd.Int64N(50)}

	taskCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.tasks = &conc.WaitGroup{}
	s.tasks.Go(func() { s.every(taskCtx, s.tickClock) })
	s.tasks.Go(func() { s.every(taskCtx, s.tickAudience) })
	s.tasks.Go(func() { s.every(taskCtx, s.tickChat) })

	out := *live
	return &out, nil
}

func (s *Session) register(ctx context.Context, info LiveInfo) (*LiveStream, error) {
	if s.broadcaster == nil {
		return &LiveStream{
			StreamKey:  "sk_" + strconv.FormatUint(s.rnd.Uint64N(1<<46), 36),
			RtmpURL:    DefaultRtmpURL,
			PlaybackID: strconv.FormatUint(s.rnd.Uint64(), 36),
			StartedAt:  s.now(),
		}, nil
	}
	resp, err := s.broadcaster.StartStream(ctx, &types.StartStreamRequest{
		Title:       info.Title,
		Description: info.Description,
		Category:    info.Category,
		Tags:        info.Tags,
		TipGoal:     info.TipGoal,
	})
	if err != nil {
		return nil, fmt.Errorf("start stream: %w", err)
	}
	live := &LiveStream{StreamKey: resp.StreamKey, RtmpURL: resp.RtmpURL, StartedAt: s.now()}
	if resp.Stream != nil {
		live.ID = resp.Stream.ID
		live.PlaybackID = resp.Stream.PlaybackID
	}
	return live, nil
}

func (s *Session) every(ctx context.Context, fn func()) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if ctx.Err() == nil {
				fn()
			}
			s.mu.Unlock()
		}
	}
}

func (s *Session) tickClock() {
	s.metrics.Duration += s.tick
}

// tickAudience 观众数随机游走，不低于 0
func (s *Session) tickAudience() {
	s.metrics.Viewers = max(0, s.metrics.Viewers+s.rnd.Int64N(3)-1)
	s.metrics.Tips += s.rnd.Float64() * 0.01
}

func (s *Session) tickChat() {
	if s.rnd.Float64() >= chatProbability {
		return
	}
	line := ChatLine{
		User:    fmt.Sprintf("user%d", s.rnd.IntN(1000)),
		Message: chatSamples[s.rnd.IntN(len(chatSamples))],
		At:      s.now(),
		IsVip:   s.rnd.Float64() < vipProbability,
	}
	chat := append(s.metrics.Chat, line)
	if len(chat) > maxChatLines {
		chat = chat[len(chat)-maxChatLines:]
	}
	s.metrics.Chat = chat
}

func (s *Session) setEnabled(kind TrackKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var on, found bool
	for _, t := range s.tracks {
		if t.Kind() != kind {
			continue
		}
		if !found {
			on = !t.Enabled()
			found = true
		}
		t.SetEnabled(on)
	}
	return on
}

// ToggleMic 返回切换后的状态
func (s *Session) ToggleMic() bool {
	return s.setEnabled(KindAudio)
}

func (s *Session) ToggleCamera() bool {
	return s.setEnabled(KindVideo)
}

// Stop 可重复调用：停止模拟任务、释放全部 track、通知服务端下播
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, tasks, live, tracks := s.cancel, s.tasks, s.live, s.tracks
	s.cancel, s.tasks, s.live, s.tracks = nil, nil, nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if tasks != nil {
		tasks.Wait()
	}
	for _, t := range tracks {
		t.Stop()
	}
	if live == nil || live.ID == 0 || s.broadcaster == nil {
		return nil
	}
	if err := s.broadcaster.StopStream(ctx, live.ID); err != nil {
		log.L.Warn("stop stream failed", zap.Uint64("stream_id", live.ID), zap.Error(err))
		return fmt.Errorf("stop stream: %w", err)
	}
	return nil
}

func (s *Session) Live() (*LiveStream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return nil, ErrNotLive
	}
	live := *s.live
	return &live, nil
}

// Metrics 当前模拟数据的副本
func (s *Session) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.metrics
	m.Chat = append([]ChatLine(nil), s.metrics.Chat...)
	return m
}

func (s *Session) Tracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Track(nil), s.tracks...)
}
