package service

import (
	"HotCams/pkg/log"
	"HotCams/pkg/oss"
	"HotCams/types"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const (
	MediaPhoto = "photo"
	MediaVideo = "video"

	MaxPhotoSize int64 = 10 << 20
	MaxVideoSize int64 = 200 << 20
)

var mediaTypes = map[string]struct {
	kind string
	ext  string
}{
	"image/jpeg": {MediaPhoto, ".jpg"},
	"image/png":  {MediaPhoto, ".png"},
	"image/webp": {MediaPhoto, ".webp"},
	"video/mp4":  {MediaVideo, ".mp4"},
	"video/webm": {MediaVideo, ".webm"},
}

type IMediaService interface {
	Upload(ctx context.Context, userID uint64, kind string, size int64, body io.Reader) (*types.MediaResponse, error)
}

type MediaService struct {
	Storage oss.Storage
	Users   IUserService
}

var _ IMediaService = (*MediaService)(nil)

// MediaKey media/<uid%100>/<uid>/<8 位随机串><ext>
func MediaKey(userID uint64, ext string) string {
	return fmt.Sprintf("media/%02d/%d/%s%s", userID%100, userID, uuid.NewString()[:8], ext)
}

// Upload 按内容识别类型，图片额外解析尺寸确认不是伪造的文件头
func (s *MediaService) Upload(ctx context.Context, userID uint64, kind string, size int64, body io.Reader) (*types.MediaResponse, error) {
	if body == nil || size == 0 {
		return nil, types.ErrMediaRequired
	}
	br := bufio.NewReaderSize(body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read media: %w", err)
	}
	if len(head) == 0 {
		return nil, types.ErrMediaRequired
	}
	mime := http.DetectContentType(head)
	mt, ok := mediaTypes[mime]
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !ok || (kind != "" && kind != mt.kind) {
		return nil, types.ErrMediaUnsupported
	}
	limit := MaxPhotoSize
	if mt.kind == MediaVideo {
		limit = MaxVideoSize
	}
	if size > limit {
		return nil, types.ErrMediaTooLarge
	}

	var reader io.Reader = io.LimitReader(br, limit+1)
	if mt.kind == MediaPhoto {
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read media: %w", err)
		}
		if int64(len(data)) > limit {
			return nil, types.ErrMediaTooLarge
		}
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, types.ErrMediaUnsupported
		}
		reader = bytes.NewReader(data)
	}

	key := MediaKey(userID, mt.ext)
	url, err := s.Storage.Put(ctx, key, reader, mime)
	if err != nil {
		return nil, fmt.Errorf("put media: %w", err)
	}
	if _, err := s.Users.AttachMedia(ctx, userID, mt.kind == MediaVideo, url); err != nil {
		if derr := s.Storage.Delete(ctx, key); derr != nil {
			log.L.Warn("delete orphan media failed", zap.String("key", key), zap.Error(derr))
		}
		return nil, err
	}
	return &types.MediaResponse{URL: url, Kind: mt.kind}, nil
}
