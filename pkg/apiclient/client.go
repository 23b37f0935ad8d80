// Package apiclient 调用 HotCams REST 接口的客户端，供会话、开播工具与打赏弹窗使用
package apiclient

import (
	"HotCams/models"
	"HotCams/types"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

var ErrNotFound = errors.New("not found")

// APIError 非 2xx 响应，Message 取自响应体的 error 字段
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken 之后的请求带 Bearer token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do 发送请求并返回响应体；非 2xx 转为 *APIError，404 同时满足 errors.Is(err, ErrNotFound)
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, http.Header, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(respBody, "error").String()
		if msg == "" {
			msg = resp.Status
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: msg}
		if resp.StatusCode == http.StatusNotFound {
			return nil, nil, errors.Join(ErrNotFound, apiErr)
		}
		return nil, nil, apiErr
	}
	return respBody, resp.Header, nil
}

func decode[T any](data []byte) (*T, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json response")
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &out, nil
}

// GetUser 按钱包地址查询用户，未注册返回 ErrNotFound
func (c *Client) GetUser(ctx context.Context, address string) (*types.UserResponse, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/user?address="+url.QueryEscape(address), nil)
	if err != nil {
		return nil, err
	}
	return decode[types.UserResponse](data)
}

// CreateUser 创建资料，响应头中的 token 会被保存
func (c *Client) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.Users, error) {
	data, header, err := c.do(ctx, http.MethodPost, "/api/user", req)
	if err != nil {
		return nil, err
	}
	if token := header.Get("X-Access-Token"); token != "" {
		c.SetToken(token)
	}
	return decode[models.Users](data)
}

// WalletLogin 已注册返回 token 并保存；未注册时 Status 为 signup_needed
func (c *Client) WalletLogin(ctx context.Context, req *types.WalletLoginRequest) (*types.WalletLoginResponse, error) {
	data, _, err := c.do(ctx, http.MethodPost, "/api/auth/wallet", req)
	if err != nil {
		return nil, err
	}
	resp, err := decode[types.WalletLoginResponse](data)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return resp, nil
}

type PerformerFilter struct {
	Category string
	Live     *bool
	Search   string
	Limit    int
}

func (f PerformerFilter) query() string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Live != nil {
		q.Set("live", strconv.FormatBool(*f.Live))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListPerformers(ctx context.Context, filter PerformerFilter) ([]*types.PerformerSummary, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/performers"+filter.query(), nil)
	if err != nil {
		return nil, err
	}
	list, err := decode[[]*types.PerformerSummary](data)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *Client) Analytics(ctx context.Context) (*types.AnalyticsResponse, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/analytics", nil)
	if err != nil {
		return nil, err
	}
	return decode[types.AnalyticsResponse](data)
}

func (c *Client) StartStream(ctx context.Context, req *types.StartStreamRequest) (*types.StartStreamResponse, error) {
	data, _, err := c.do(ctx, http.MethodPost, "/api/streams", req)
	if err != nil {
		return nil, err
	}
	return decode[types.StartStreamResponse](data)
}

func (c *Client) StopStream(ctx context.Context, streamID uint64) error {
	_, _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/streams/%d/stop", streamID), nil)
	return err
}

// RecordTip 上报已提交的链上交易，返回服务端记录的 id
func (c *Client) RecordTip(ctx context.Context, req *types.RecordTipRequest) (uint64, error) {
	data, _, err := c.do(ctx, http.MethodPost, "/api/tips", req)
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(data, "id").Uint(), nil
}
