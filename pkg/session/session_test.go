package session

import (
	"HotCams/models"
	"HotCams/pkg/apiclient"
	"HotCams/pkg/onboarding"
	"HotCams/types"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0x52908400098527886e0f7030069857d2e4169ee7"
	addrB = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
)

// fakeClient 每个地址的查询结果由 gate 放行；gate 为 nil 时立即返回
type fakeClient struct {
	mu       sync.Mutex
	users    map[string]*models.Users
	fail     error
	block    bool // 阻塞到 ctx 结束
	gates    map[string]chan struct{}
	created  []*types.CreateUserRequest
	canceled map[string]bool
}

func newFake() *fakeClient {
	return &fakeClient{
		users:    map[string]*models.Users{},
		gates:    map[string]chan struct{}{},
		canceled: map[string]bool{},
	}
}

func (f *fakeClient) GetUser(ctx context.Context, address string) (*types.UserResponse, error) {
	f.mu.Lock()
	gate := f.gates[address]
	block := f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if gate != nil {
		<-gate
		if ctx.Err() != nil {
			f.mu.Lock()
			f.canceled[address] = true
			f.mu.Unlock()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	u, ok := f.users[address]
	if !ok {
		return nil, errors.Join(apiclient.ErrNotFound, &apiclient.APIError{Status: 404, Message: "User not found"})
	}
	return &types.UserResponse{Users: u}, nil
}

func (f *fakeClient) CreateUser(_ context.Context, req *types.CreateUserRequest) (*models.Users, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	u := &models.Users{ID: 1, Username: req.Username, Role: models.Role(req.Role)}
	f.users[req.EthAddress] = u
	return u, nil
}

func TestReduceTransitions(t *testing.T) {
	s := Reduce(State{}, WalletConnected{Address: addrA})
	assert.Equal(t, Checking, s.Status)
	assert.EqualValues(t, 1, s.Generation)

	// 过期结果不生效
	assert.Equal(t, s, Reduce(s, LookupSucceeded{Address: addrA, Generation: 0}))
	assert.Equal(t, s, Reduce(s, LookupNotFound{Address: addrB, Generation: 1}))

	ready := Reduce(s, LookupSucceeded{Address: addrA, Generation: 1, User: &models.Users{ID: 9}})
	assert.Equal(t, Ready, ready.Status)
	assert.EqualValues(t, 9, ready.User.ID)

	off := Reduce(ready, WalletDisconnected{})
	assert.Equal(t, Disconnected, off.Status)
	assert.Nil(t, off.User)
	assert.Empty(t, off.Address)

	boom := errors.New("boom")
	failed := Reduce(s, LookupFailed{Address: addrA, Generation: 1, Err: boom})
	assert.Equal(t, Disconnected, failed.Status)
	assert.ErrorIs(t, failed.Err, boom)
}

func TestConnectReadyAndNeedsProfile(t *testing.T) {
	fc := newFake()
	fc.users[addrA] = &models.Users{ID: 1, Username: "alice"}
	store := NewStore(fc)

	store.Connect(context.Background(), addrA)
	store.Wait()
	st := store.Snapshot()
	assert.Equal(t, Ready, st.Status)
	assert.Equal(t, "alice", st.User.Username)

	store.Connect(context.Background(), addrB)
	store.Wait()
	assert.Equal(t, NeedsProfile, store.Snapshot().Status)

	store.Disconnect()
	assert.Equal(t, Disconnected, store.Snapshot().Status)
}

func TestStaleLookupDiscarded(t *testing.T) {
	fc := newFake()
	fc.users[addrA] = &models.Users{ID: 1, Username: "alice"}
	fc.users[addrB] = &models.Users{ID: 2, Username: "bob"}
	gate := make(chan struct{})
	fc.gates[addrA] = gate
	store := NewStore(fc)

	store.Connect(context.Background(), addrA)
	store.Connect(context.Background(), addrB)

	// 等 B 的结果落地后再放行 A
	require.Eventually(t, func() bool { return store.Snapshot().Status == Ready }, time.Second, 5*time.Millisecond)
	close(gate)
	store.Wait()

	st := store.Snapshot()
	assert.Equal(t, addrB, st.Address)
	assert.Equal(t, "bob", st.User.Username)
	fc.mu.Lock()
	assert.True(t, fc.canceled[addrA])
	fc.mu.Unlock()
}

func TestLookupFailureSurfacesError(t *testing.T) {
	fc := newFake()
	fc.fail = errors.New("network down")
	store := NewStore(fc)
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.Connect(context.Background(), addrA)
	store.Wait()
	st := <-ch
	assert.Equal(t, Disconnected, st.Status)
	assert.EqualError(t, st.Err, "network down")
}

func TestLookupTimeoutSurfacesError(t *testing.T) {
	fc := newFake()
	fc.block = true
	store := NewStore(fc)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	store.Connect(ctx, addrA)
	store.Wait()

	st := store.Snapshot()
	assert.Equal(t, Disconnected, st.Status)
	assert.ErrorIs(t, st.Err, context.DeadlineExceeded)
}

func TestCreateProfileValidatesFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fc := newFake()
	store := NewStore(fc, WithClock(func() time.Time { return now }))

	_, err := store.CreateProfile(context.Background(), &onboarding.Form{Username: "x"})
	assert.ErrorIs(t, err, onboarding.ErrWalletRequired)

	store.Connect(context.Background(), addrA)
	store.Wait()
	require.Equal(t, NeedsProfile, store.Snapshot().Status)

	_, err = store.CreateProfile(context.Background(), &onboarding.Form{
		Username:    "kid",
		DateOfBirth: "2010-01-01",
		Role:        models.RoleViewer,
	})
	assert.ErrorIs(t, err, onboarding.ErrUnderage)
	assert.Empty(t, fc.created)

	user, err := store.CreateProfile(context.Background(), &onboarding.Form{
		Username:    "alice",
		DateOfBirth: "1990-01-01",
		Role:        models.RoleViewer,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	require.Len(t, fc.created, 1)
	assert.Equal(t, addrA, fc.created[0].EthAddress)
	assert.Equal(t, Ready, store.Snapshot().Status)
}
