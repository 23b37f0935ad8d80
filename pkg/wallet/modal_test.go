package wallet

import (
	"HotCams/pkg/chain"
	"HotCams/types"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	performerEth = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
	performerSol = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

type fakeSigner struct {
	addr string
	err  error

	mu    sync.Mutex
	sent  []*Transfer
	calls int
}

func (f *fakeSigner) Address() string { return f.addr }

func (f *fakeSigner) SendTransfer(_ context.Context, t *Transfer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, t)
	return "0xhash", nil
}

type fakeConfirmer struct {
	pending int
	status  chain.Status
	checks  atomic.Int32
}

func (f *fakeConfirmer) Check(context.Context, string) (chain.Status, error) {
	n := int(f.checks.Add(1))
	if n <= f.pending {
		return chain.StatusPending, nil
	}
	return f.status, nil
}

type fakeRecorder struct {
	mu   sync.Mutex
	reqs []*types.RecordTipRequest
}

func (f *fakeRecorder) RecordTip(_ context.Context, req *types.RecordTipRequest) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return 1, nil
}

func recipient() Recipient {
	return Recipient{StreamID: 9, Name: "rose", EthAddress: performerEth, SolAddress: performerSol}
}

func TestAvailableAssets(t *testing.T) {
	evm, sol := &fakeSigner{}, &fakeSigner{}
	assert.Empty(t, AvailableAssets(Wallets{}))
	assert.Equal(t, []Asset{ETH, USDC}, AvailableAssets(Wallets{EVM: evm}))
	assert.Equal(t, []Asset{SOL, USDC}, AvailableAssets(Wallets{Solana: sol}))
	assert.Equal(t, []Asset{ETH, SOL, USDC}, AvailableAssets(Wallets{EVM: evm, Solana: sol}))
}

func TestZeroAmountRejectedBeforeTransfer(t *testing.T) {
	evm := &fakeSigner{addr: "0x52908400098527886e0f7030069857d2e4169ee7"}
	m := NewModal(Wallets{EVM: evm}, recipient(), Options{})

	for _, amount := range []string{"0", "", "-1", "0.000"} {
		m.SetAmount(amount)
		_, err := m.Send(context.Background())
		assert.ErrorIs(t, err, chain.ErrInvalidAmount, amount)
	}
	assert.Zero(t, evm.calls)
	assert.Equal(t, Idle, m.State())
}

func TestSendValidation(t *testing.T) {
	m := NewModal(Wallets{}, recipient(), Options{})
	m.SetPreset(0)
	_, err := m.Send(context.Background())
	assert.ErrorIs(t, err, ErrNoWallet)

	evm := &fakeSigner{}
	m = NewModal(Wallets{EVM: evm}, Recipient{SolAddress: performerSol}, Options{})
	m.SetPreset(1)
	_, err = m.Send(context.Background())
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	assert.Zero(t, evm.calls)
}

func TestEVMSuccessRecordsAndAutoCloses(t *testing.T) {
	evm := &fakeSigner{addr: "0x52908400098527886e0f7030069857d2e4169ee7"}
	rec := &fakeRecorder{}
	var closed atomic.Bool
	m := NewModal(Wallets{EVM: evm}, recipient(), Options{
		Recorder:   rec,
		CloseDelay: 10 * time.Millisecond,
		OnClose:    func() { closed.Store(true) },
	})
	m.SetPreset(1)
	m.SetMessage("gg")

	hash, err := m.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xhash", hash)
	require.Len(t, evm.sent, 1)
	assert.Equal(t, "50000000000000000", evm.sent[0].Amount.String())
	assert.Equal(t, chain.ChecksumAddress(performerEth), evm.sent[0].To)

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, 0.05, rec.reqs[0].Amount)
	assert.Equal(t, "ETH", rec.reqs[0].Currency)
	assert.Equal(t, "gg", rec.reqs[0].Message)
	assert.EqualValues(t, 9, rec.reqs[0].StreamID)

	require.Eventually(t, closed.Load, time.Second, 2*time.Millisecond)
	assert.Equal(t, Closed, m.State())
}

func TestFailureKeepsModalOpen(t *testing.T) {
	evm := &fakeSigner{addr: "0x52908400098527886e0f7030069857d2e4169ee7", err: errors.New("user rejected")}
	m := NewModal(Wallets{EVM: evm}, recipient(), Options{CloseDelay: time.Hour})
	m.SetAmount("0.1")

	_, err := m.Send(context.Background())
	require.Error(t, err)
	assert.Equal(t, Failed, m.State())
	assert.Equal(t, MsgFailed, m.Error())

	evm.mu.Lock()
	evm.err = nil
	evm.mu.Unlock()
	_, err = m.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Succeeded, m.State())
	assert.Empty(t, m.Error())
	m.Close()
}

func TestSolanaWaitsForConfirmation(t *testing.T) {
	sol := &fakeSigner{addr: "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV"}
	conf := &fakeConfirmer{pending: 2, status: chain.StatusConfirmed}
	m := NewModal(Wallets{Solana: sol}, recipient(), Options{
		SolanaConfirmer: conf,
		PollInterval:    time.Millisecond,
		CloseDelay:      time.Hour,
	})
	m.SetAsset(SOL)
	m.SetAmount("0.5")

	_, err := m.Send(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, conf.checks.Load())
	assert.Equal(t, "500000000", sol.sent[0].Amount.String())
	assert.Equal(t, Succeeded, m.State())
	m.Close()

	failing := &fakeConfirmer{status: chain.StatusFailed}
	m = NewModal(Wallets{Solana: sol}, recipient(), Options{SolanaConfirmer: failing, PollInterval: time.Millisecond})
	m.SetAmount("0.5")
	_, err = m.Send(context.Background())
	assert.ErrorIs(t, err, chain.ErrTxFailed)
	assert.Equal(t, Failed, m.State())
}

func TestSolanaWithoutConfirmerNeverSucceeds(t *testing.T) {
	sol := &fakeSigner{addr: "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV"}
	m := NewModal(Wallets{Solana: sol}, recipient(), Options{CloseDelay: time.Hour})
	m.SetAsset(SOL)
	m.SetAmount("0.5")

	_, err := m.Send(context.Background())
	assert.ErrorIs(t, err, ErrNoConfirmer)
	assert.Equal(t, Idle, m.State())
	assert.Zero(t, sol.calls)

	m.SetAsset(USDC)
	_, err = m.Send(context.Background())
	assert.ErrorIs(t, err, ErrNoConfirmer)
	assert.Zero(t, sol.calls)
}

func TestUSDCPrefersEVM(t *testing.T) {
	evm := &fakeSigner{addr: "0x52908400098527886e0f7030069857d2e4169ee7"}
	sol := &fakeSigner{addr: "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV"}
	m := NewModal(Wallets{EVM: evm, Solana: sol}, recipient(), Options{CloseDelay: time.Hour})
	m.SetAsset(USDC)
	m.SetAmount("5")

	_, err := m.Send(context.Background())
	require.NoError(t, err)
	require.Len(t, evm.sent, 1)
	assert.Equal(t, chain.Ethereum, evm.sent[0].Chain)
	assert.Equal(t, "5000000", evm.sent[0].Amount.String())
	assert.Zero(t, sol.calls)
	m.Close()
}

func TestCloseCancelsAutoClose(t *testing.T) {
	evm := &fakeSigner{addr: "0x52908400098527886e0f7030069857d2e4169ee7"}
	var closed atomic.Bool
	m := NewModal(Wallets{EVM: evm}, recipient(), Options{
		CloseDelay: 20 * time.Millisecond,
		OnClose:    func() { closed.Store(true) },
	})
	m.SetAmount("0.01")
	_, err := m.Send(context.Background())
	require.NoError(t, err)
	m.Close()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, closed.Load())
}
