package oss

import (
	"HotCams/config"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// Storage 媒体文件存储
type Storage interface {
	// Put 上传对象并返回对外访问地址
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type AliyunStorage struct {
	Client     *oss.Client
	BucketName string
	CdnURL     string
}

var _ Storage = (*AliyunStorage)(nil)

func NewAliyunStorage(cfg *config.OssConfig) *AliyunStorage {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	cdn := cfg.CdnURL
	if cdn == "" {
		cdn = fmt.Sprintf("https://%s.%s", cfg.Bucket, cfg.Endpoint)
	}
	return &AliyunStorage{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		CdnURL:     strings.TrimRight(cdn, "/"),
	}
}

func (s *AliyunStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.BucketName),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.CdnURL + "/" + key, nil
}

func (s *AliyunStorage) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	})
	return err
}

// LocalStorage 未配置 OSS 时写本地目录，由 gin 静态路由对外提供
type LocalStorage struct {
	Dir     string
	BaseURL string
}

var _ Storage = (*LocalStorage)(nil)

const LocalRoute = "/media"

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return s.BaseURL + LocalRoute + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.Dir, clean), nil
}

// NewStorage OSS 已配置时使用阿里云，否则落本地目录
func NewStorage(conf *config.Config) Storage {
	if conf.Oss.Enabled() {
		return NewAliyunStorage(conf.Oss)
	}
	return NewLocalStorage(filepath.Join(os.TempDir(), "hotcams-media"), conf.App.PublicBaseURL)
}
