// Package studio 主播端开播会话：采集设备、登记直播间、本地模拟观看数据
package studio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

type TrackKind string

const (
	KindAudio TrackKind = "audio"
	KindVideo TrackKind = "video"
)

// Track 采集到的一路音频或视频
type Track interface {
	Kind() TrackKind
	Enabled() bool
	SetEnabled(bool)
	Stop()
	Stopped() bool
}

type Constraints struct {
	Audio     bool
	Video     bool
	Width     int
	Height    int
	FrameRate int
}

var DefaultConstraints = Constraints{Audio: true, Video: true, Width: 1280, Height: 720, FrameRate: 30}

// MediaDevices 出错时可能同时返回已拿到的部分 track，调用方负责释放
type MediaDevices interface {
	GetUserMedia(ctx context.Context, c Constraints) ([]Track, error)
}

// 设备错误分类，与浏览器 NotAllowed / NotFound / NotReadable / Overconstrained 对应
var (
	ErrPermissionDenied        = errors.New("permission denied")
	ErrDeviceNotFound          = errors.New("device not found")
	ErrDeviceBusy              = errors.New("device busy")
	ErrConstraintUnsatisfiable = errors.New("constraint unsatisfiable")
)

// Explain 设备错误的用户提示
func Explain(err error) string {
	const prefix = "Unable to access camera. "
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return prefix + "Please allow camera access in your browser settings and try again."
	case errors.Is(err, ErrDeviceNotFound):
		return prefix + "No camera found. Please connect a camera and try again."
	case errors.Is(err, ErrDeviceBusy):
		return prefix + "Camera is already in use by another application."
	case errors.Is(err, ErrConstraintUnsatisfiable):
		return prefix + "Camera does not support the required settings."
	}
	if msg := err.Error(); msg != "" {
		return prefix + msg
	}
	return prefix + "Unknown error occurred."
}

type syntheticTrack struct {
	kind    TrackKind
	enabled atomic.Bool
	stopped atomic.Bool
}

func newSyntheticTrack(kind TrackKind) *syntheticTrack {
	t := &syntheticTrack{kind: kind}
	t.enabled.Store(true)
	return t
}

func (t *syntheticTrack) Kind() TrackKind   { return t.kind }
func (t *syntheticTrack) Enabled() bool     { return t.enabled.Load() }
func (t *syntheticTrack) SetEnabled(v bool) { t.enabled.Store(v) }
func (t *syntheticTrack) Stop()             { t.stopped.Store(true) }
func (t *syntheticTrack) Stopped() bool     { return t.stopped.Load() }

// Synthetic 无真实设备的实现，用于命令行工具与测试
type Synthetic struct {
	// Err 非空时 GetUserMedia 失败
	Err error
	// Partial 失败前先拿到音频 track
	Partial bool

	mu     sync.Mutex
	issued []Track
}

func (s *Synthetic) GetUserMedia(_ context.Context, c Constraints) ([]Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		if s.Partial && c.Audio {
			t := newSyntheticTrack(KindAudio)
			s.issued = append(s.issued, t)
			return []Track{t}, s.Err
		}
		return nil, s.Err
	}
	var tracks []Track
	if c.Audio {
		tracks = append(tracks, newSyntheticTrack(KindAudio))
	}
	if c.Video {
		tracks = append(tracks, newSyntheticTrack(KindVideo))
	}
	if len(tracks) == 0 {
		return nil, ErrConstraintUnsatisfiable
	}
	s.issued = append(s.issued, tracks...)
	return tracks, nil
}

// Issued 发出过的全部 track
func (s *Synthetic) Issued() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Track(nil), s.issued...)
}
