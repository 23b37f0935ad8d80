package session

import (
	"HotCams/models"
	"HotCams/pkg/apiclient"
	"HotCams/pkg/log"
	"HotCams/pkg/onboarding"
	"HotCams/types"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrNoWallet = errors.New("no wallet connected")

// Client 会话依赖的接口子集，*apiclient.Client 满足
type Client interface {
	GetUser(ctx context.Context, address string) (*types.UserResponse, error)
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.Users, error)
}

var _ Client = (*apiclient.Client)(nil)

type tokenHolder interface {
	SetToken(token string)
}

// Store 唯一的写入方：所有状态变化经 Dispatch 串行执行，读取方用 Snapshot 或 Subscribe
type Store struct {
	client Client
	now    func() time.Time

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	subs   map[int]chan State
	nextID int

	wg sync.WaitGroup
}

type Option func(*Store)

// WithClock 测试注入时钟，用于建档时的年龄校验
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(client Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		now:    time.Now,
		subs:   make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(a)
}

func (s *Store) dispatchLocked(a Action) State {
	next := Reduce(s.state, a)
	s.state = next
	for _, ch := range s.subs {
		// 只保留最新快照
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
	return next
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe 返回的 channel 只缓存最新一次状态
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Connect 切换钱包并在后台查询资料，上一轮未完成的查询被取消
func (s *Store) Connect(ctx context.Context, address string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLookupLocked()
	st := s.dispatchLocked(WalletConnected{Address: address})
	if st.Status != Checking {
		return st
	}

	lookupCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	go func(gen uint64) {
		defer s.wg.Done()
		defer cancel()
		s.lookup(lookupCtx, address, gen)
	}(st.Generation)
	return st
}

func (s *Store) lookup(ctx context.Context, address string, gen uint64) {
	resp, err := s.client.GetUser(ctx, address)
	var a Action
	switch {
	case err == nil:
		var user *models.Users
		if resp != nil {
			user = resp.Users
		}
		a = LookupSucceeded{Address: address, Generation: gen, User: user}
	case errors.Is(err, apiclient.ErrNotFound):
		a = LookupNotFound{Address: address, Generation: gen}
	default:
		a = LookupFailed{Address: address, Generation: gen, Err: err}
	}

	// 被新一轮查询或断开取代时代数已变，结果在这里丢弃；调用方自身超时则照常报错
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.current(address, gen) {
		log.L.Debug("discard stale profile lookup", zap.String("address", address), zap.Uint64("generation", gen))
		return
	}
	s.dispatchLocked(a)
}

func (s *Store) stopLookupLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Refresh 重新查询当前钱包
func (s *Store) Refresh(ctx context.Context) (State, error) {
	address := s.Snapshot().Address
	if address == "" {
		return s.Snapshot(), ErrNoWallet
	}
	return s.Connect(ctx, address), nil
}

func (s *Store) Disconnect() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLookupLocked()
	return s.dispatchLocked(WalletDisconnected{})
}

// Logout 断开钱包并清除 token
func (s *Store) Logout() State {
	if th, ok := s.client.(tokenHolder); ok {
		th.SetToken("")
	}
	return s.Disconnect()
}

// CreateProfile 先本地校验，通过后才发起请求
func (s *Store) CreateProfile(ctx context.Context, form *onboarding.Form) (*models.Users, error) {
	st := s.Snapshot()
	if st.Address == "" {
		return nil, onboarding.ErrWalletRequired
	}
	if form.WalletAddress == "" {
		form.WalletAddress = st.Address
	}
	if err := form.Validate(s.now()); err != nil {
		return nil, err
	}
	user, err := s.client.CreateUser(ctx, form.Request())
	if err != nil {
		return nil, err
	}
	s.Dispatch(ProfileCreated{Address: form.WalletAddress, User: user})
	return user, nil
}

// Wait 等待后台查询结束
func (s *Store) Wait() {
	s.wg.Wait()
}
